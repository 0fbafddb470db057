package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/mtlprog/sqlgallery/internal/gallery"
)

// pageData is the template payload of the gallery page.
type pageData struct {
	Title        string
	TransitionMS int64
	View         gallery.View
}

// handleIndex renders the gallery. Every load starts a fresh selection at
// the first tab unless ?tab= names another one. Panel visibility and the
// transition come from the selection. htmx requests receive only the
// visible panel.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sel := gallery.NewSelector(h.catalog, h.transition)
	if tab := r.URL.Query().Get("tab"); tab != "" {
		if err := sel.Select(tab); err != nil {
			h.renderNotFound(w, "No tab named "+tab+".")
			return
		}
	}

	view, err := h.renderer.Render(h.catalog, sel.Active())
	if err != nil {
		slog.ErrorContext(ctx, "failed to render gallery", "tab", sel.Active(), "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	for i := range view.Panels {
		view.Panels[i].Visible = sel.Visible(view.Panels[i].Name)
	}

	if r.Header.Get("HX-Request") == "true" {
		for _, p := range view.Panels {
			if p.Visible {
				h.execute(w, r, "panel", p)
				return
			}
		}
	}

	h.execute(w, r, "page", pageData{
		Title:        h.title,
		TransitionMS: sel.Transition().Milliseconds(),
		View:         view,
	})
}

func (h *Handler) renderNotFound(w http.ResponseWriter, message string) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "not_found", message); err != nil {
		http.Error(w, message, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(buf.Bytes())
}

// execute renders into a buffer first so template failures still produce a clean 500.
func (h *Handler) execute(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "failed to execute template", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.DebugContext(r.Context(), "failed to write page", "error", err)
	}
}
