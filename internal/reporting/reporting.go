// Package reporting fans fetch-and-copy failures out to logs and Sentry.
package reporting

import (
	"context"

	"github.com/getsentry/sentry-go"

	"github.com/mtlprog/sqlgallery/internal/copier"
)

// Multi reports to every reporter in order.
type Multi []copier.Reporter

// Report forwards err to each reporter.
func (m Multi) Report(ctx context.Context, err *copier.Error) {
	for _, r := range m {
		if r != nil {
			r.Report(ctx, err)
		}
	}
}

// Sentry captures failures as Sentry events. It prefers the hub attached to
// the context (set by the HTTP middleware) over its own.
type Sentry struct {
	hub *sentry.Hub
}

// NewSentry creates a Sentry reporter. A nil hub uses sentry.CurrentHub.
func NewSentry(hub *sentry.Hub) *Sentry {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &Sentry{hub: hub}
}

// Report captures err with its kind, URL and status as tags.
func (s *Sentry) Report(ctx context.Context, err *copier.Error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = s.hub
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("copy.kind", string(err.Kind))
		scope.SetTag("copy.url", err.URL)
		if err.StatusCode != 0 {
			scope.SetExtra("copy.status", err.StatusCode)
		}
		scope.SetLevel(sentry.LevelWarning)
		hub.CaptureException(err)
	})
}

// New builds the reporter chain: logs always, Sentry when enabled.
func New(sentryEnabled bool) copier.Reporter {
	r := Multi{copier.LogReporter{}}
	if sentryEnabled {
		r = append(r, NewSentry(nil))
	}
	return r
}
