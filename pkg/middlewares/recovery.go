package middlewares

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jake-scott/switchbot-cli/internal/pkg/logging"
)

// same shape as the bridge's error bodies, plus the id to grep the log for
type panicResponse struct {
	Error string `json:"error"`
	TxnID string `json:"txnId,omitempty"`
}

// RecoveryMw turns a panicking bridge handler into a logged, counted 500.
// It must run inside LoggingMw for the response to carry the txn id.
type RecoveryMw struct {
	next http.Handler
}

func NewRecoveryMw() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return &RecoveryMw{next: next}
	}
}

func (mw *RecoveryMw) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if p == http.ErrAbortHandler {
			panic(p)
		}

		bridgePanics.Inc()

		txnID, _ := logging.TxnID(r.Context())
		logging.Logger(r.Context()).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"stack":  string(debug.Stack()),
		}).Errorf("bridge handler panicked: %v", p)

		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusInternalServerError)
		if err := json.NewEncoder(rw).Encode(panicResponse{
			Error: fmt.Sprintf("internal error handling %s %s", r.Method, r.URL.Path),
			TxnID: txnID,
		}); err != nil {
			logging.Logger(r.Context()).WithError(err).Error("sending panic response")
		}
	}()

	mw.next.ServeHTTP(rw, r)
}
