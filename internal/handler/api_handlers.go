package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/mtlprog/sqlgallery/internal/catalog"
	"github.com/mtlprog/sqlgallery/internal/copier"
	"github.com/mtlprog/sqlgallery/internal/domain"
	"github.com/mtlprog/sqlgallery/internal/handler/dto"
	"github.com/mtlprog/sqlgallery/internal/repository"
	"github.com/mtlprog/sqlgallery/internal/service"
)

const (
	defaultSearchLimit = 20
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// handleListCategories returns the tabs in display order.
// @Summary List categories
// @Description List every category tab, the aggregate tab first
// @Tags gallery
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Router /categories [get]
func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	names := h.catalog.Names()
	resp := dto.CategoriesResponse{
		Default:    h.catalog.First(),
		Categories: make([]dto.CategoryResponse, 0, len(names)),
	}
	for _, name := range names {
		cards, err := h.catalog.Cards(name)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		resp.Categories = append(resp.Categories, dto.CategoryResponse{
			Name:      name,
			Count:     len(cards),
			Aggregate: name == h.catalog.Aggregate(),
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleListCards returns the rendered cards of one category.
// @Summary List cards
// @Description List the rendered cards of a category in catalog order
// @Tags gallery
// @Produce json
// @Param name path string true "Category name"
// @Success 200 {object} dto.CardsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{name}/cards [get]
func (h *Handler) handleListCards(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	view, err := h.renderer.Render(h.catalog, name)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToCardsResponse(name, view.Cards))
}

// handleGetCard returns a single rendered card.
// @Summary Get card
// @Description Get a rendered card by ID
// @Tags gallery
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} dto.CardResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /cards/{id} [get]
func (h *Handler) handleGetCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.catalog.Card(r.PathValue("id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	views, err := h.renderer.Cards([]domain.Card{card})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToCardResponse(views[0]))
}

// responseClipboard delivers copied text as the HTTP response body. The
// browser writes it to the user's clipboard.
type responseClipboard struct {
	w       http.ResponseWriter
	written bool
}

func (c *responseClipboard) WriteText(_ context.Context, text string) error {
	h := c.w.Header()
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	h.Set("Content-Length", strconv.Itoa(len(text)))
	c.w.WriteHeader(http.StatusOK)
	c.written = true

	_, err := c.w.Write([]byte(text))
	return err
}

// handleCopyRaw fetches a card's raw content and returns it verbatim.
// @Summary Copy raw content
// @Description Fetch the raw SQL behind a card and return it as plain text
// @Tags gallery
// @Produce plain
// @Param id path string true "Card ID"
// @Success 200 {string} string "Raw script text"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /cards/{id}/raw [get]
func (h *Handler) handleCopyRaw(w http.ResponseWriter, r *http.Request) {
	cb := &responseClipboard{w: w}

	_, err := h.copyService.CopyCard(r.Context(), r.PathValue("id"), service.SourceWeb, cb)
	if err != nil {
		// Headers are already out once the body write has started.
		if ce, ok := copier.AsError(err); ok && ce.Kind == copier.KindClipboard && cb.written {
			return
		}
		respondDomainError(w, err)
	}
}

// handleSearch finds cards by title or description.
// @Summary Search cards
// @Description Fuzzy search over card titles and descriptions
// @Tags gallery
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum results (default 20)"
// @Success 200 {object} dto.SearchResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /search [get]
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	q := query.Get("q")
	if q == "" {
		respondDomainError(w, domain.ErrEmptyQuery)
		return
	}

	limit := defaultSearchLimit
	if l := query.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "limit must be a positive integer")
			return
		}
		limit = n
	}

	matches := catalog.Search(h.catalog, q, limit)
	resp := dto.SearchResponse{Query: q, Results: make([]dto.SearchResult, 0, len(matches))}
	for _, m := range matches {
		views, err := h.renderer.Cards([]domain.Card{m.Card})
		if err != nil {
			respondDomainError(w, err)
			return
		}
		resp.Results = append(resp.Results, dto.ToSearchResult(m, views[0]))
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleGetStats returns copy statistics.
// @Summary Get copy statistics
// @Description Aggregated copy counts per card and outcome, plus the latest events. Both honour the since and card_id filters
// @Tags stats
// @Produce json
// @Param since query string false "RFC3339 lower bound"
// @Param card_id query string false "Filter by card ID"
// @Param limit query int false "Number of recent events (default 20, max 100)"
// @Success 200 {object} dto.StatsResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /stats [get]
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var filters repository.StatsFilters
	if s := query.Get("since"); s != "" {
		since, err := time.Parse(time.RFC3339, s)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "since must be an RFC3339 timestamp")
			return
		}
		filters.Since = since
	}
	filters.CardID = query.Get("card_id")

	limit := defaultRecentLimit
	if l := query.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 || n > maxRecentLimit {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	stats, err := h.copyService.Stats(ctx, filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch copy stats")
		return
	}

	recent, err := h.copyService.Recent(ctx, filters, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch recent copies")
		return
	}

	respondJSON(w, http.StatusOK, dto.ToStatsResponse(stats, recent))
}
