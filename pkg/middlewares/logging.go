package middlewares

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jake-scott/switchbot-cli/internal/pkg/logging"
)

// headers never written to the log
var redactedHeaders = []string{"Authorization", "Sign", "Nonce", "Cookie"}

type responseWriterEx struct {
	http.ResponseWriter

	statusCode int
	size       int
	logData    bool
	ctx        context.Context
}

func newResponseWriterEx(ctx context.Context, logData bool, rw http.ResponseWriter) responseWriterEx {
	return responseWriterEx{
		ResponseWriter: rw,
		statusCode:     http.StatusOK,
		logData:        logData,
		ctx:            ctx,
	}
}

func (rw *responseWriterEx) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriterEx) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size

	if err == nil && rw.logData {
		logging.Logger(rw.ctx).Debugf("wrote %d bytes: %s", size, b[:size])
	}
	return size, err
}

// Wrapper around an io.ReadCloser that logs every read as a string
type loggingReader struct {
	io.ReadCloser
	ctx context.Context
}

func (lr loggingReader) Read(b []byte) (size int, err error) {
	size, err = lr.ReadCloser.Read(b)
	if size > 0 {
		logging.Logger(lr.ctx).Debugf("read %d bytes: %s", size, b[:size])
	}

	return size, err
}

func redact(h http.Header) http.Header {
	c := h.Clone()
	for _, name := range redactedHeaders {
		if c.Get(name) != "" {
			c.Set(name, "<redacted>")
		}
	}
	return c
}

type LoggingMw struct {
	logRequests bool
	next        http.Handler
}

func NewLoggingMw(reqLogging bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return NewLogging(reqLogging, next)
	}
}

func NewLogging(reqLogging bool, next http.Handler) *LoggingMw {
	return &LoggingMw{next: next, logRequests: reqLogging}
}

func (mw *LoggingMw) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	txnID := uuid.New().String()
	startTime := time.Now()

	// Set the output header now before something writes any response body
	rw.Header().Set("X-Txn-ID", txnID)

	// downstream API calls log under the same transaction ID
	r = r.WithContext(logging.WithTxnID(r.Context(), txnID))

	if mw.logRequests {
		logging.Logger(r.Context()).Debugf("request headers: %+v", redact(r.Header))
		r.Body = loggingReader{ReadCloser: r.Body, ctx: r.Context()}
	}

	rwex := newResponseWriterEx(r.Context(), mw.logRequests, rw)
	mw.next.ServeHTTP(&rwex, r)

	entry := logging.Logger(r.Context()).WithFields(
		logrus.Fields{
			"entrytype": "audit",
			"status":    rwex.statusCode,
			"method":    r.Method,
			"remote":    r.RemoteAddr,
			"duration":  time.Since(startTime),
			"path":      r.URL.String(),
			"size":      rwex.size,
		},
	)

	switch {
	case rwex.statusCode >= 500:
		entry.Error(http.StatusText(rwex.statusCode))
	case rwex.statusCode >= 400:
		entry.Warn(http.StatusText(rwex.statusCode))
	default:
		entry.Info(http.StatusText(rwex.statusCode))
	}
}
