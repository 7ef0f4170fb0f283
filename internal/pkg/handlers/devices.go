package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jake-scott/switchbot-cli/internal/pkg/control"
	"github.com/jake-scott/switchbot-cli/internal/pkg/switchbot"
)

type deviceListResponse struct {
	Devices []switchbot.Device `json:"devices"`
}

// commandRequest mirrors the exec subcommand arguments
type commandRequest struct {
	Command   string   `json:"command"`
	Values    []string `json:"values,omitempty"`
	Customize bool     `json:"customize,omitempty"`
}

type commandResponse struct {
	DeviceID string `json:"deviceId"`
	Command  string `json:"command"`
	Status   string `json:"status"`
}

type DeviceHandler struct {
	svc *control.Service
}

func NewDeviceHandler(svc *control.Service) DeviceHandler {
	return DeviceHandler{svc: svc}
}

// Register attaches the device routes to r
func (h *DeviceHandler) Register(r *mux.Router) {
	r.HandleFunc("/devices", h.HandleList).Methods(http.MethodGet)
	r.HandleFunc("/devices/{id}", h.HandleGet).Methods(http.MethodGet)
	r.HandleFunc("/devices/{id}/commands", h.HandleCommand).Methods(http.MethodPost)
}

func (h *DeviceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	devices, err := h.svc.FetchDevices(r.Context())
	if err != nil {
		sendAPIErrorResponse(w, r, err)
		return
	}

	sendJSONResponse(w, r, http.StatusOK, deviceListResponse{Devices: devices})
}

func (h *DeviceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	device, err := h.svc.Device(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendAPIErrorResponse(w, r, err)
		return
	}

	sendJSONResponse(w, r, http.StatusOK, device)
}

func (h *DeviceHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		sendError(w, r, http.StatusBadRequest, "unable to parse JSON: "+err.Error())
		return
	}

	if req.Command == "" {
		sendError(w, r, http.StatusBadRequest, "command is required")
		return
	}

	command, err := control.BuildCommand(req.Command, req.Values, req.Customize)
	if err != nil {
		sendAPIErrorResponse(w, r, err)
		return
	}

	device := mux.Vars(r)["id"]
	if err := h.svc.Execute(r.Context(), device, command); err != nil {
		sendAPIErrorResponse(w, r, err)
		return
	}

	sendJSONResponse(w, r, http.StatusOK, commandResponse{
		DeviceID: device,
		Command:  command.String(),
		Status:   "ok",
	})
}
