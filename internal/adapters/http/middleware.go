package httpadapter

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

type requestIDContextKey struct{}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(requestIDContextKey{}).(string)
	return requestID
}

// withRequestID accepts a caller-supplied id or mints one, stores it in the
// request context and echoes it back on the response.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}

		r = r.WithContext(context.WithValue(r.Context(), requestIDContextKey{}, requestID))
		w.Header().Set(requestIDHeader, requestID)

		next.ServeHTTP(w, r)
	})
}

// withAccessLog emits one structured line per request, at a level matching
// the response status. Certification-specific fields ride along: the
// requested report format and the size of uploaded bodies.
func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		trap := &responseTrap{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(trap, r)

		remoteAddr := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			remoteAddr = host
		}

		attrs := []any{
			"request_id", requestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", trap.status,
			"duration_ms", float64(time.Since(start).Microseconds()) / 1000.0,
			"bytes", trap.written,
			"remote_addr", remoteAddr,
			"user_agent", r.UserAgent(),
		}
		if format := r.URL.Query().Get("format"); format != "" {
			attrs = append(attrs, "report_format", format)
		}
		if r.Method == http.MethodPost && r.ContentLength > 0 {
			attrs = append(attrs, "request_bytes", r.ContentLength)
		}

		switch {
		case trap.status >= 500:
			slog.Error("http_request", attrs...)
		case trap.status >= 400:
			slog.Warn("http_request", attrs...)
		default:
			slog.Info("http_request", attrs...)
		}
	})
}

// responseTrap records the status and byte count that went over the wire.
// Flush is forwarded for streamed report downloads; the handlers never
// hijack or push, so those passthroughs are intentionally absent.
type responseTrap struct {
	http.ResponseWriter
	status  int
	written int
}

func (t *responseTrap) WriteHeader(statusCode int) {
	t.status = statusCode
	t.ResponseWriter.WriteHeader(statusCode)
}

func (t *responseTrap) Write(b []byte) (int, error) {
	n, err := t.ResponseWriter.Write(b)
	t.written += n
	return n, err
}

func (t *responseTrap) Flush() {
	if flusher, ok := t.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
