package middlewares

import (
	"net/http"
	"regexp"

	"github.com/gorilla/mux"

	"github.com/jake-scott/switchbot-cli/internal/pkg/logging"
)

var correlationIDRegexp = regexp.MustCompile(`^[\w-]{3,64}$`)

const badCorrelationID = "<Bad_Correlation_Id>"

type CorrelationMw struct {
	headerName string
	next       http.Handler
}

func NewCorrelationMw(headerName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return NewCorrelation(headerName, next)
	}
}

func NewCorrelation(headerName string, next http.Handler) *CorrelationMw {
	return &CorrelationMw{headerName: http.CanonicalHeaderKey(headerName), next: next}
}

// Echo a caller supplied correlation ID back and tie it to the request log
func (mw *CorrelationMw) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if id, ok := mw.validateID(r); ok {
		rw.Header().Set(mw.headerName, id)
		logging.Logger(r.Context()).WithField("correlation", id).Debug("correlated request")
	}

	mw.next.ServeHTTP(rw, r)
}

func (mw *CorrelationMw) validateID(r *http.Request) (string, bool) {
	ids, ok := r.Header[mw.headerName]
	if !ok || len(ids) == 0 {
		return "", false
	}

	if correlationIDRegexp.MatchString(ids[0]) {
		return ids[0], true
	}

	return badCorrelationID, true
}
