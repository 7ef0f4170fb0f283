package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-openapi/runtime/middleware/header"
	"github.com/pkg/errors"

	"github.com/jake-scott/switchbot-cli/internal/pkg/logging"
	"github.com/jake-scott/switchbot-cli/internal/pkg/switchbot"
)

type errorResponse struct {
	Error string `json:"error"`
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Header.Get("Content-Type") != "" {
		value, _ := header.ParseValueAndParams(r.Header, "Content-Type")
		if value != "application/json" {
			return fmt.Errorf("expected JSON request, got %s", value)
		}
	}

	// 100kb max body
	reader := http.MaxBytesReader(w, r.Body, 100*1024)
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body must only contain a single JSON object")
	}

	return nil
}

func sendJSONResponse(w http.ResponseWriter, r *http.Request, status int, d interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	if err := enc.Encode(d); err != nil {
		logging.Logger(r.Context()).WithError(err).Error("sending json response")
	}
}

func sendError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	sendJSONResponse(w, r, status, errorResponse{Error: msg})
}

// map adapter errors onto bridge status codes
func statusFromError(err error) int {
	var (
		validationErr *switchbot.ValidationError
		apiErr        *switchbot.APIError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, switchbot.ErrDeviceNotFound):
		return http.StatusNotFound
	case errors.As(err, &apiErr):
		return http.StatusUnprocessableEntity
	}

	return http.StatusBadGateway
}

func sendAPIErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= 500 {
		logging.Logger(r.Context()).WithError(err).Error("querying SwitchBot API")
	} else {
		logging.Logger(r.Context()).WithError(err).Info("rejected request")
	}

	sendError(w, r, status, err.Error())
}
