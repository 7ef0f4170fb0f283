package middlewares

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

var bridgeRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "switchbot_bridge_requests_total",
		Help: "HTTP bridge requests by route, method and status.",
	},
	[]string{"route", "method", "status"},
)

var bridgePanics = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "switchbot_bridge_panics_total",
		Help: "Bridge handler panics turned into 500 responses.",
	},
)

func init() { prometheus.MustRegister(bridgeRequests, bridgePanics) }

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

type MetricsMw struct {
	next http.Handler
}

func NewMetricsMw() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return &MetricsMw{next: next}
	}
}

func (mw *MetricsMw) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rec := &statusRecorder{ResponseWriter: rw, status: http.StatusOK}
	mw.next.ServeHTTP(rec, r)

	// label by route template so device ids don't explode the cardinality
	route := "unmatched"
	if cr := mux.CurrentRoute(r); cr != nil {
		if tmpl, err := cr.GetPathTemplate(); err == nil {
			route = tmpl
		}
	}

	bridgeRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
}
