package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mtlprog/sqlgallery/internal/copier"
	"github.com/mtlprog/sqlgallery/internal/domain"
	"github.com/mtlprog/sqlgallery/internal/repository"
)

// Copy event sources.
const (
	SourceWeb = "web"
	SourceTUI = "tui"
	SourceCLI = "cli"
)

// EventStore persists copy events. Implemented by the Postgres and
// in-memory repositories.
type EventStore interface {
	Record(ctx context.Context, event *domain.CopyEvent) error
	Stats(ctx context.Context, filters repository.StatsFilters) ([]domain.CopyStat, error)
	Recent(ctx context.Context, filters repository.StatsFilters, limit int) ([]*domain.CopyEvent, error)
	Ping(ctx context.Context) error
}

// CopyService runs fetch-and-copy for catalog cards and records the outcome.
type CopyService struct {
	catalog *domain.Catalog
	copier  *copier.Copier
	store   EventStore
}

// NewCopyService creates a new CopyService.
func NewCopyService(catalog *domain.Catalog, c *copier.Copier, store EventStore) *CopyService {
	return &CopyService{
		catalog: catalog,
		copier:  c,
		store:   store,
	}
}

// CopyCard fetches the raw content of a card and writes it to cb.
// The returned event is recorded even when the copy fails; a recording
// failure is logged and does not change the result.
func (s *CopyService) CopyCard(
	ctx context.Context,
	cardID string,
	source string,
	cb copier.Clipboard,
) (*domain.CopyEvent, error) {
	card, err := s.catalog.Card(cardID)
	if err != nil {
		return nil, err
	}
	if !card.HasRawContent() {
		return nil, fmt.Errorf("%w: %q", domain.ErrNoRawContent, cardID)
	}

	n, copyErr := s.copier.Copy(ctx, card.RawContentURL, cb)

	event := &domain.CopyEvent{
		CardID:  card.ID,
		URL:     card.RawContentURL,
		Source:  source,
		Outcome: domain.CopyOutcomeOK,
		Bytes:   n,
	}
	if copyErr != nil {
		event.Outcome = domain.CopyOutcomeNetwork
		if ce, ok := copier.AsError(copyErr); ok {
			event.Outcome = ce.Kind.Outcome()
		}
		event.Error = copyErr.Error()
	}

	// Record even if the caller has gone away.
	if err := s.store.Record(context.WithoutCancel(ctx), event); err != nil {
		slog.ErrorContext(ctx, "failed to record copy event",
			"card_id", card.ID,
			"outcome", event.Outcome,
			"error", err,
		)
	}

	if copyErr != nil {
		return event, copyErr
	}

	slog.InfoContext(ctx, "card copied",
		"card_id", card.ID,
		"source", source,
		"bytes", n,
	)

	return event, nil
}

// Stats returns aggregated copy statistics.
func (s *CopyService) Stats(ctx context.Context, filters repository.StatsFilters) ([]domain.CopyStat, error) {
	stats, err := s.store.Stats(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("get copy stats: %w", err)
	}
	return stats, nil
}

// Recent returns the latest copy events matching filters.
func (s *CopyService) Recent(ctx context.Context, filters repository.StatsFilters, limit int) ([]*domain.CopyEvent, error) {
	events, err := s.store.Recent(ctx, filters, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent copy events: %w", err)
	}
	return events, nil
}

// Ping checks that the event store is reachable.
func (s *CopyService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
