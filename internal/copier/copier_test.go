package copier_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/sqlgallery/internal/clipboard"
	"github.com/mtlprog/sqlgallery/internal/copier"
	"github.com/mtlprog/sqlgallery/internal/domain"
)

type reports struct {
	mu   sync.Mutex
	errs []*copier.Error
}

func (r *reports) Report(_ context.Context, err *copier.Error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *reports) all() []*copier.Error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*copier.Error(nil), r.errs...)
}

func sqlServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /y.sql", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("SELECT 1;"))
	})
	mux.HandleFunc("GET /binary.sql", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
	})
	mux.HandleFunc("GET /ua", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.UserAgent()))
	})
	mux.HandleFunc("GET /slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCopy_WritesExactBody(t *testing.T) {
	srv := sqlServer(t)
	rep := &reports{}
	c := copier.New(copier.WithReporter(rep))
	var cb clipboard.Memory

	n, err := c.Copy(context.Background(), srv.URL+"/y.sql", &cb)
	require.NoError(t, err)

	assert.Equal(t, "SELECT 1;", cb.Text())
	assert.Equal(t, len("SELECT 1;"), n)
	assert.Equal(t, 1, cb.Writes())
	assert.Empty(t, rep.all())
}

func TestCopy_NotFoundLeavesClipboardAlone(t *testing.T) {
	srv := sqlServer(t)
	rep := &reports{}
	c := copier.New(copier.WithReporter(rep))
	var cb clipboard.Memory
	require.NoError(t, cb.WriteText(context.Background(), "previous"))

	_, err := c.Copy(context.Background(), srv.URL+"/missing.sql", &cb)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrCopyFailed)

	ce, ok := copier.AsError(err)
	require.True(t, ok)
	assert.Equal(t, copier.KindStatus, ce.Kind)
	assert.Equal(t, http.StatusNotFound, ce.StatusCode)

	assert.Equal(t, "previous", cb.Text())
	assert.Equal(t, 1, cb.Writes())

	got := rep.all()
	require.Len(t, got, 1)
	assert.Equal(t, copier.KindStatus, got[0].Kind)
}

func TestCopy_NetworkError(t *testing.T) {
	srv := sqlServer(t)
	url := srv.URL + "/y.sql"
	srv.Close()

	rep := &reports{}
	var cb clipboard.Memory
	_, err := copier.New(copier.WithReporter(rep)).Copy(context.Background(), url, &cb)

	ce, ok := copier.AsError(err)
	require.True(t, ok)
	assert.Equal(t, copier.KindNetwork, ce.Kind)
	assert.Zero(t, cb.Writes())
	assert.Len(t, rep.all(), 1)
}

func TestCopy_DecodeError(t *testing.T) {
	srv := sqlServer(t)
	rep := &reports{}
	var cb clipboard.Memory

	_, err := copier.New(copier.WithReporter(rep)).Copy(context.Background(), srv.URL+"/binary.sql", &cb)

	ce, ok := copier.AsError(err)
	require.True(t, ok)
	assert.Equal(t, copier.KindDecode, ce.Kind)
	assert.Zero(t, cb.Writes())
}

func TestCopy_ClipboardRejected(t *testing.T) {
	srv := sqlServer(t)
	rep := &reports{}
	var cb clipboard.Memory
	denied := errors.New("write permission denied")
	cb.Fail(denied)

	_, err := copier.New(copier.WithReporter(rep)).Copy(context.Background(), srv.URL+"/y.sql", &cb)

	ce, ok := copier.AsError(err)
	require.True(t, ok)
	assert.Equal(t, copier.KindClipboard, ce.Kind)
	require.ErrorIs(t, err, denied)

	got := rep.all()
	require.Len(t, got, 1)
	assert.Equal(t, copier.KindClipboard, got[0].Kind)
}

func TestCopy_CancelledIsNotReported(t *testing.T) {
	srv := sqlServer(t)
	rep := &reports{}
	var cb clipboard.Memory

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := copier.New(copier.WithReporter(rep)).Copy(ctx, srv.URL+"/slow", &cb)
	require.Error(t, err)
	assert.Empty(t, rep.all())
	assert.Zero(t, cb.Writes())
}

func TestCopy_Timeout(t *testing.T) {
	srv := sqlServer(t)
	rep := &reports{}
	var cb clipboard.Memory

	c := copier.New(copier.WithReporter(rep), copier.WithTimeout(50*time.Millisecond))
	_, err := c.Copy(context.Background(), srv.URL+"/slow", &cb)

	ce, ok := copier.AsError(err)
	require.True(t, ok)
	assert.Equal(t, copier.KindNetwork, ce.Kind)
	assert.Len(t, rep.all(), 1)
}

func TestCopy_RepeatedInvocationsLastWriteWins(t *testing.T) {
	srv := sqlServer(t)
	c := copier.New(copier.WithReporter(&reports{}))
	var cb clipboard.Memory

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Copy(context.Background(), srv.URL+"/y.sql", &cb)
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, cb.Writes())
	assert.Equal(t, "SELECT 1;", cb.Text())
}

func TestFetch_UserAgent(t *testing.T) {
	srv := sqlServer(t)

	body, err := copier.New().Fetch(context.Background(), srv.URL+"/ua")
	require.NoError(t, err)
	assert.Equal(t, copier.DefaultUserAgent, body)

	body, err = copier.New(copier.WithUserAgent("custom/2")).Fetch(context.Background(), srv.URL+"/ua")
	require.NoError(t, err)
	assert.Equal(t, "custom/2", body)
}

func TestKind_Outcome(t *testing.T) {
	assert.Equal(t, domain.CopyOutcomeNetwork, copier.KindNetwork.Outcome())
	assert.Equal(t, domain.CopyOutcomeStatus, copier.KindStatus.Outcome())
	assert.Equal(t, domain.CopyOutcomeDecode, copier.KindDecode.Outcome())
	assert.Equal(t, domain.CopyOutcomeClipboard, copier.KindClipboard.Outcome())
}

func TestReporterFunc(t *testing.T) {
	var got *copier.Error
	r := copier.ReporterFunc(func(_ context.Context, err *copier.Error) { got = err })

	want := &copier.Error{Kind: copier.KindDecode, URL: "u"}
	r.Report(context.Background(), want)
	assert.Same(t, want, got)
}
