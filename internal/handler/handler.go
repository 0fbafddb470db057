package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/mtlprog/sqlgallery/docs" // Import generated docs
	"github.com/mtlprog/sqlgallery/internal/domain"
	"github.com/mtlprog/sqlgallery/internal/gallery"
	"github.com/mtlprog/sqlgallery/internal/handler/dto"
	"github.com/mtlprog/sqlgallery/internal/middleware"
	"github.com/mtlprog/sqlgallery/internal/render"
	"github.com/mtlprog/sqlgallery/internal/service"
	"github.com/mtlprog/sqlgallery/internal/static"
	httpSwagger "github.com/swaggo/http-swagger"
)

// DefaultTitle is the page title when none is configured.
const DefaultTitle = "SQL Gallery"

// Options tunes the HTTP surface.
type Options struct {
	Title      string
	Transition time.Duration
	RateLimit  middleware.RateLimitConfig
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	catalog     *domain.Catalog
	renderer    *gallery.Renderer
	copyService *service.CopyService
	templates   *template.Template
	limiter     *middleware.RateLimiter
	title       string
	transition  time.Duration
}

// New creates a new Handler instance with all dependencies.
func New(catalog *domain.Catalog, copyService *service.CopyService, opts Options) (*Handler, error) {
	tmpl, err := template.ParseFS(static.Templates(), "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Transition <= 0 {
		opts.Transition = gallery.DefaultTransition
	}

	return &Handler{
		catalog:     catalog,
		renderer:    gallery.NewRenderer(render.NewMarkdown()),
		copyService: copyService,
		templates:   tmpl,
		limiter:     middleware.NewRateLimiter(opts.RateLimit),
		title:       opts.Title,
		transition:  opts.Transition,
	}, nil
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Gallery page and its assets
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static.Assets())))

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// API v1 routes with rate limiting
	mux.Handle("GET /api/v1/categories", h.limiter.Limit(http.HandlerFunc(h.handleListCategories)))
	mux.Handle("GET /api/v1/categories/{name}/cards", h.limiter.Limit(http.HandlerFunc(h.handleListCards)))
	mux.Handle("GET /api/v1/cards/{id}", h.limiter.Limit(http.HandlerFunc(h.handleGetCard)))
	mux.Handle("GET /api/v1/cards/{id}/raw", h.limiter.Limit(http.HandlerFunc(h.handleCopyRaw)))
	mux.Handle("GET /api/v1/search", h.limiter.Limit(http.HandlerFunc(h.handleSearch)))
	mux.Handle("GET /api/v1/stats", h.limiter.Limit(http.HandlerFunc(h.handleGetStats)))
}

// Routes returns the complete handler tree with the middleware stack applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return middleware.Chain(mux, middleware.RequestID, middleware.Logging)
}

// handleHealthz returns 200 OK if the event store is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.copyService.Ping(ctx); err != nil {
		slog.Error("event store health check failed", "error", err)
		http.Error(w, "event store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Ping checks if the event store is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.copyService.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps err and writes it.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}
