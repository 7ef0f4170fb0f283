package middlewares

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type CorsMw struct {
	h http.Handler
}

// NewCorsMw lets browser dashboards on allowedOrigins call the bridge
func NewCorsMw(allowedOrigins []string) mux.MiddlewareFunc {
	opts := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-Correlation-ID"},
		ExposedHeaders: []string{"X-Txn-ID", "X-Correlation-ID"},
	}

	return func(next http.Handler) http.Handler {
		return NewCors(opts, next)
	}
}

// Called once for each middleware chain
//
func NewCors(opts cors.Options, next http.Handler) *CorsMw {
	c := cors.New(opts)

	return &CorsMw{
		h: c.Handler(next),
	}
}

// This should be the first Middleware in the chain
//
func (mw *CorsMw) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	mw.h.ServeHTTP(rw, r)
}
