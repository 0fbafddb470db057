package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mtlprog/sqlgallery/internal/domain"
)

// psql builds statements with PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// StatsFilters holds filters for copy statistics and recent-event queries.
type StatsFilters struct {
	Since  time.Time // zero means no lower bound
	CardID string    // empty means every card
}

func (f StatsFilters) apply(b sq.SelectBuilder) sq.SelectBuilder {
	if !f.Since.IsZero() {
		b = b.Where(sq.GtOrEq{"created_at": f.Since})
	}
	if f.CardID != "" {
		b = b.Where(sq.Eq{"card_id": f.CardID})
	}
	return b
}

func (f StatsFilters) match(e domain.CopyEvent) bool {
	if !f.Since.IsZero() && e.CreatedAt.Before(f.Since) {
		return false
	}
	return f.CardID == "" || e.CardID == f.CardID
}

// CopyEventRepository handles database operations for copy events.
type CopyEventRepository struct {
	pool *pgxpool.Pool
}

// NewCopyEventRepository creates a new CopyEventRepository.
func NewCopyEventRepository(pool *pgxpool.Pool) *CopyEventRepository {
	return &CopyEventRepository{pool: pool}
}

// Record inserts a copy event and fills its ID and CreatedAt.
func (r *CopyEventRepository) Record(ctx context.Context, event *domain.CopyEvent) error {
	if !event.Outcome.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidOutcome, event.Outcome)
	}

	query, args, err := psql.
		Insert("copy_events").
		Columns("card_id", "url", "source", "outcome", "bytes", "error").
		Values(event.CardID, event.URL, event.Source, string(event.Outcome), event.Bytes, event.Error).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("create copy event: %w", err)
	}

	return nil
}

// Stats aggregates copy events per card and outcome, ordered by card then outcome.
func (r *CopyEventRepository) Stats(ctx context.Context, filters StatsFilters) ([]domain.CopyStat, error) {
	builder := psql.
		Select("card_id", "outcome", "COUNT(*)", "MAX(created_at)").
		From("copy_events").
		GroupBy("card_id", "outcome").
		OrderBy("card_id ASC", "outcome ASC")

	query, args, err := filters.apply(builder).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query copy stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.CopyStat
	for rows.Next() {
		var (
			stat    domain.CopyStat
			outcome string
		)
		if err := rows.Scan(&stat.CardID, &outcome, &stat.Count, &stat.LastAt); err != nil {
			return nil, fmt.Errorf("scan copy stat: %w", err)
		}
		stat.Outcome = domain.CopyOutcome(outcome)
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate copy stats rows: %w", err)
	}

	return stats, nil
}

// Recent returns the latest events matching filters, newest first.
// A non-positive limit returns every match.
func (r *CopyEventRepository) Recent(ctx context.Context, filters StatsFilters, limit int) ([]*domain.CopyEvent, error) {
	builder := filters.apply(psql.
		Select("id", "card_id", "url", "source", "outcome", "bytes", "error", "created_at").
		From("copy_events").
		OrderBy("created_at DESC"))
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query copy events: %w", err)
	}
	defer rows.Close()

	var events []*domain.CopyEvent
	for rows.Next() {
		var (
			event   domain.CopyEvent
			outcome string
		)
		err := rows.Scan(
			&event.ID,
			&event.CardID,
			&event.URL,
			&event.Source,
			&outcome,
			&event.Bytes,
			&event.Error,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan copy event: %w", err)
		}
		event.Outcome = domain.CopyOutcome(outcome)
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate copy event rows: %w", err)
	}

	return events, nil
}

// Ping checks that the database is reachable.
func (r *CopyEventRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
