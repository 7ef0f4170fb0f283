package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	dto "github.com/prometheus/client_model/go"

	"github.com/jake-scott/switchbot-cli/internal/pkg/logging"
)

func newTestRouter(h http.HandlerFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(NewLoggingMw(true))
	r.Use(NewRecoveryMw())
	r.Use(NewCorrelationMw("X-Correlation-ID"))
	r.Use(NewMetricsMw())
	r.Handle("/devices/{id}", h)
	return r
}

func TestLoggingMw_TxnID(t *testing.T) {
	var seen string
	r := newTestRouter(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = logging.TxnID(r.Context())
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/devices/A1", nil))

	if seen == "" || rec.Header().Get("X-Txn-ID") != seen {
		t.Errorf("txn id: context %q, header %q", seen, rec.Header().Get("X-Txn-ID"))
	}
}

func panicCount(t *testing.T) float64 {
	var m dto.Metric
	if err := bridgePanics.Write(&m); err != nil {
		t.Fatal(err)
	}
	return m.GetCounter().GetValue()
}

func TestRecoveryMw(t *testing.T) {
	r := newTestRouter(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	before := panicCount(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/devices/A1", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d", rec.Code)
	}

	var body panicResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body, err)
	}
	if body.TxnID == "" || body.TxnID != rec.Header().Get("X-Txn-ID") {
		t.Errorf("txn id: body %q, header %q", body.TxnID, rec.Header().Get("X-Txn-ID"))
	}
	if body.Error != "internal error handling GET /devices/A1" {
		t.Errorf("error: got %q", body.Error)
	}

	if got := panicCount(t) - before; got != 1 {
		t.Errorf("panics counted: got %v", got)
	}
}

func TestCorrelationMw(t *testing.T) {
	r := newTestRouter(func(w http.ResponseWriter, r *http.Request) {})

	tests := map[string]string{
		"abc-123":      "abc-123",
		"no spaces ok": badCorrelationID,
	}

	for in, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/devices/A1", nil)
		req.Header.Set("X-Correlation-ID", in)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Correlation-ID"); got != want {
			t.Errorf("%q: got %q, want %q", in, got, want)
		}
	}
}

func TestCorsMw(t *testing.T) {
	r := mux.NewRouter()
	r.Use(NewCorsMw([]string{"http://dashboard.local"}))
	r.HandleFunc("/devices", func(w http.ResponseWriter, r *http.Request) {}).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/devices", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://dashboard.local" {
		t.Errorf("allowed origin: got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/devices", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}

func TestRedact(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "secret-token")
	h.Set("Accept", "application/json")

	got := redact(h)
	if got.Get("Authorization") != "<redacted>" || got.Get("Accept") != "application/json" {
		t.Errorf("got %+v", got)
	}
	if h.Get("Authorization") != "secret-token" {
		t.Error("caller header modified")
	}
}
