package middleware

import (
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/davidbz/ember/internal/observability"
)

const (
	traceparentHeader = "Traceparent"
	requestIDHeader   = "X-Request-Id"
	traceIDHeader     = "X-Trace-Id"
	zeroTraceID       = "00000000000000000000000000000000"
)

// Trace tags every request with trace, span and request ids. A valid inbound
// traceparent keeps the caller's trace id; the span is always new.
func Trace() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			traceID, ok := parentTraceID(r.Header.Get(traceparentHeader))
			if !ok {
				traceID = observability.GenerateTraceID()
			}
			ctx = observability.WithTraceID(ctx, traceID)
			ctx = observability.WithSpanID(ctx, observability.GenerateSpanID())

			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = observability.GenerateRequestID()
			}
			ctx = observability.WithRequestID(ctx, requestID)

			w.Header().Set(traceIDHeader, traceID)
			w.Header().Set(requestIDHeader, requestID)

			logger := observability.FromContext(ctx)
			logger.Info("request started",
				observability.String("method", r.Method),
				observability.String("path", r.URL.Path),
				observability.String("remote_addr", r.RemoteAddr),
			)

			next.ServeHTTP(w, r.WithContext(ctx))

			logger.Info("request finished", observability.Duration("elapsed", time.Since(start)))
		})
	}
}

// parentTraceID extracts the trace id from a version-00 traceparent header.
func parentTraceID(header string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(header), "-")
	if len(parts) != 4 || parts[0] != "00" {
		return "", false
	}

	traceID := strings.ToLower(parts[1])
	if len(traceID) != 32 || traceID == zeroTraceID {
		return "", false
	}
	if _, err := hex.DecodeString(traceID); err != nil {
		return "", false
	}

	return traceID, true
}
