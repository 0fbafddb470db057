package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Logging logs every request and runs it inside a Sentry transaction.
// Panics are recovered, captured and answered with 500.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		hub := sentry.GetHubFromContext(ctx)
		if hub == nil {
			hub = sentry.CurrentHub().Clone()
			ctx = sentry.SetHubOnContext(ctx, hub)
		}

		transaction := sentry.StartTransaction(
			ctx,
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			sentry.WithOpName("http.server"),
			sentry.ContinueFromRequest(r),
			sentry.WithTransactionSource(sentry.SourceURL),
		)
		defer transaction.Finish()
		r = r.WithContext(transaction.Context())
		ctx = r.Context()
		hub.Scope().SetRequest(r)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		requestID := GetRequestID(ctx)

		defer func() {
			if p := recover(); p != nil {
				transaction.Status = sentry.SpanStatusInternalError
				hub.RecoverWithContext(ctx, p)
				slog.ErrorContext(ctx, "panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", requestID,
					"panic", p,
				)
				if !rec.wroteHeader {
					rec.Header().Set("Content-Type", "application/json")
					rec.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(rec).Encode(map[string]any{
						"error": map[string]string{"code": "INTERNAL_ERROR", "message": "Internal server error"},
					})
				}
			}
		}()

		next.ServeHTTP(rec, r)

		transaction.Status = sentry.HTTPtoSpanStatus(rec.status)
		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestID,
		}

		switch {
		case rec.status >= 500:
			slog.ErrorContext(ctx, "request completed", attrs...)
		case rec.status >= 400:
			slog.WarnContext(ctx, "request completed", attrs...)
		default:
			slog.InfoContext(ctx, "request completed", attrs...)
		}
	})
}
