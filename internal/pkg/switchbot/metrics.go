package switchbot

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	endpointDevices  = "devices"
	endpointCommands = "commands"
)

var (
	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "switchbot_api_requests_total",
			Help: "SwitchBot API calls by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	apiLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "switchbot_api_request_duration_seconds",
			Help:    "SwitchBot API round trip time by endpoint.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func init() { prometheus.MustRegister(apiRequests, apiLatency) }

func observe(endpoint string, start time.Time, err error) {
	apiLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	apiRequests.WithLabelValues(endpoint, outcome(err)).Inc()
}

func outcome(err error) string {
	var (
		signErr      *SigningError
		transportErr *TransportError
		decodeErr    *DeserializationError
		apiErr       *APIError
	)

	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &signErr):
		return "signing"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &apiErr):
		return "api"
	}

	return "other"
}
