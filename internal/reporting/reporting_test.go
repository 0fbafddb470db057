package reporting_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/sqlgallery/internal/copier"
	"github.com/mtlprog/sqlgallery/internal/reporting"
)

func TestMulti_ForwardsToAll(t *testing.T) {
	var got []string
	rec := func(name string) copier.Reporter {
		return copier.ReporterFunc(func(_ context.Context, err *copier.Error) {
			got = append(got, name+":"+string(err.Kind))
		})
	}

	m := reporting.Multi{rec("a"), nil, rec("b")}
	m.Report(context.Background(), &copier.Error{Kind: copier.KindStatus, URL: "u", StatusCode: 404})

	assert.Equal(t, []string{"a:status", "b:status"}, got)
}

func TestSentry_CapturesTaggedEvent(t *testing.T) {
	var (
		mu     sync.Mutex
		events []*sentry.Event
	)
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn: "https://public@sentry.example.com/1",
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event)
			return nil
		},
	})
	require.NoError(t, err)

	hub := sentry.NewHub(client, sentry.NewScope())
	r := reporting.NewSentry(hub)

	r.Report(context.Background(), &copier.Error{
		Kind:       copier.KindStatus,
		URL:        "https://x/y.sql",
		StatusCode: 404,
		Err:        errors.New("unexpected status 404"),
	})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 1)
	assert.Equal(t, "status", events[0].Tags["copy.kind"])
	assert.Equal(t, "https://x/y.sql", events[0].Tags["copy.url"])
	assert.Equal(t, sentry.LevelWarning, events[0].Level)
}

func TestNew_WithoutSentry(t *testing.T) {
	r := reporting.New(false)
	m, ok := r.(reporting.Multi)
	require.True(t, ok)
	assert.Len(t, m, 1)
}
