package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mtlprog/sqlgallery/internal/domain"
)

// MemoryCopyEventRepository keeps copy events in process memory. Used when no
// database is configured; contents are lost on restart.
type MemoryCopyEventRepository struct {
	mu     sync.RWMutex
	events []domain.CopyEvent
	now    func() time.Time
}

// NewMemoryCopyEventRepository creates an empty in-memory repository.
func NewMemoryCopyEventRepository() *MemoryCopyEventRepository {
	return &MemoryCopyEventRepository{now: time.Now}
}

// Record stores a copy event and fills its ID and CreatedAt.
func (r *MemoryCopyEventRepository) Record(_ context.Context, event *domain.CopyEvent) error {
	if !event.Outcome.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidOutcome, event.Outcome)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = uuid.NewString()
	event.CreatedAt = r.now().UTC()
	r.events = append(r.events, *event)
	return nil
}

// Stats aggregates copy events per card and outcome, ordered by card then outcome.
func (r *MemoryCopyEventRepository) Stats(_ context.Context, filters StatsFilters) ([]domain.CopyStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type key struct {
		card    string
		outcome domain.CopyOutcome
	}
	agg := make(map[key]*domain.CopyStat)
	for _, e := range r.events {
		if !filters.match(e) {
			continue
		}
		k := key{e.CardID, e.Outcome}
		s, ok := agg[k]
		if !ok {
			s = &domain.CopyStat{CardID: e.CardID, Outcome: e.Outcome}
			agg[k] = s
		}
		s.Count++
		if e.CreatedAt.After(s.LastAt) {
			s.LastAt = e.CreatedAt
		}
	}

	stats := make([]domain.CopyStat, 0, len(agg))
	for _, s := range agg {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].CardID != stats[j].CardID {
			return stats[i].CardID < stats[j].CardID
		}
		return stats[i].Outcome < stats[j].Outcome
	})
	return stats, nil
}

// Recent returns the latest events matching filters, newest first.
// A non-positive limit returns every match.
func (r *MemoryCopyEventRepository) Recent(_ context.Context, filters StatsFilters, limit int) ([]*domain.CopyEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.CopyEvent, 0)
	for i := len(r.events) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		e := r.events[i]
		if !filters.match(e) {
			continue
		}
		out = append(out, &e)
	}
	return out, nil
}

// Ping always succeeds.
func (r *MemoryCopyEventRepository) Ping(context.Context) error {
	return nil
}
