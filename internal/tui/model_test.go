package tui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/sqlgallery/internal/clipboard"
	"github.com/mtlprog/sqlgallery/internal/copier"
	"github.com/mtlprog/sqlgallery/internal/domain"
	"github.com/mtlprog/sqlgallery/internal/repository"
	"github.com/mtlprog/sqlgallery/internal/service"
)

type fixture struct {
	model Model
	cb    *clipboard.Memory
	store *repository.MemoryCopyEventRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /y.sql", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("SELECT 1;"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cat, err := domain.NewCatalog("All", []domain.Category{
		{Name: "A", Cards: []domain.Card{
			{ID: "vacuum", Title: "Vacuum stats", Content: "Dead tuples per table.", RawContentURL: srv.URL + "/y.sql"},
		}},
		{Name: "B", Cards: []domain.Card{
			{ID: "index", Title: "Index usage", Content: "Unused indexes.", RawContentURL: srv.URL + "/y.sql"},
			{ID: "docs", Title: "Docs", Content: "Manual.", LinkURL: "https://www.postgresql.org/docs/"},
			{ID: "broken", Title: "Broken", Content: "Gone.", RawContentURL: srv.URL + "/missing.sql"},
		}},
	})
	require.NoError(t, err)

	store := repository.NewMemoryCopyEventRepository()
	silent := copier.ReporterFunc(func(context.Context, *copier.Error) {})
	svc := service.NewCopyService(cat, copier.New(copier.WithReporter(silent)), store)

	cb := &clipboard.Memory{}
	return fixture{model: New(context.Background(), cat, svc, cb), cb: cb, store: store}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return got, cmd
}

// press applies msg and runs at most one resulting command to completion.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	m, cmd := apply(t, m, msg)
	if cmd == nil {
		return m
	}
	if out := cmd(); out != nil {
		if _, ok := out.(copyResultMsg); ok {
			m, _ = apply(t, m, out)
		}
	}
	return m
}

func TestModel_StartsOnFirstTab(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "All", f.model.Active())
	assert.Len(t, f.model.cards(), 4)
	assert.Contains(t, f.model.View(), "Vacuum stats")
}

func TestModel_TabNavigation(t *testing.T) {
	f := newFixture(t)
	m := f.model

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "A", m.Active())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "B", m.Active())

	// Wraps around.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "All", m.Active())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "B", m.Active())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, "A", m.Active())
	assert.NotContains(t, m.View(), "Index usage")
}

func TestModel_CursorBounds(t *testing.T) {
	f := newFixture(t)
	m := f.model

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	for range 10 {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 3, m.cursor)

	// Switching tabs resets the cursor.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.cursor)
}

func TestModel_CopySuccess(t *testing.T) {
	f := newFixture(t)

	m := press(t, f.model, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "SELECT 1;", f.cb.Text())
	assert.Contains(t, m.Status(), "Copied Vacuum stats (9 bytes)")
	assert.Equal(t, 0, m.pending)

	events, err := f.store.Recent(context.Background(), repository.StatsFilters{}, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, service.SourceTUI, events[0].Source)
}

func TestModel_CopyIsAsync(t *testing.T) {
	f := newFixture(t)

	m, cmd := apply(t, f.model, runeKey("c"))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.pending)
	assert.Equal(t, "Copying Vacuum stats…", m.Status())
	assert.Empty(t, f.cb.Text())

	// The UI keeps handling keys while the copy is in flight.
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "A", m.Active())

	m, _ = apply(t, m, cmd())
	assert.Equal(t, "SELECT 1;", f.cb.Text())
	assert.Contains(t, m.Status(), "Copied Vacuum stats")
}

func TestModel_ShowsCopiesInFlight(t *testing.T) {
	f := newFixture(t)

	m, first := apply(t, f.model, runeKey("c"))
	m, second := apply(t, m, runeKey("c"))
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Contains(t, m.View(), "(2 copies in flight)")

	m, _ = apply(t, m, first())
	assert.Contains(t, m.View(), "(1 copy in flight)")

	m, _ = apply(t, m, second())
	assert.NotContains(t, m.View(), "in flight")
}

func TestModel_CopyFailureShowsStatus(t *testing.T) {
	f := newFixture(t)
	m := f.model

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, "B", m.Active())
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.statusErr)
	assert.Contains(t, m.Status(), "Copy of Broken failed")
	assert.Empty(t, f.cb.Text())
}

func TestModel_CopyClipboardFailure(t *testing.T) {
	f := newFixture(t)
	f.cb.Fail(errors.New("no display"))

	m := press(t, f.model, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.statusErr)
	assert.Contains(t, m.Status(), "no display")
}

func TestModel_LinkOnlyCard(t *testing.T) {
	f := newFixture(t)
	m := f.model

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})

	m, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.Status(), "https://www.postgresql.org/docs/")
	assert.Equal(t, 0, f.cb.Writes())
}

func TestModel_Search(t *testing.T) {
	f := newFixture(t)
	m := f.model

	m, _ = apply(t, m, runeKey("/"))
	require.True(t, m.searching)

	// Keys bound in browse mode are typed into the query.
	for _, r := range "index" {
		m, _ = apply(t, m, runeKey(string(r)))
	}
	assert.Equal(t, "All", m.Active())
	require.Len(t, m.cards(), 1)
	assert.Equal(t, "index", m.cards()[0].ID)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	require.Len(t, m.cards(), 1)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "SELECT 1;", f.cb.Text())

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.cards(), 4)
}

func TestModel_QuitCancelsCopies(t *testing.T) {
	f := newFixture(t)

	m, cmd := apply(t, f.model, runeKey("c"))
	require.NotNil(t, cmd)

	_, quit := apply(t, m, runeKey("q"))
	require.NotNil(t, quit)
	assert.Equal(t, tea.Quit(), quit())

	// The abandoned copy does not reach the clipboard.
	out := cmd()
	res, ok := out.(copyResultMsg)
	require.True(t, ok)
	require.Error(t, res.err)
	assert.Empty(t, f.cb.Text())
}
