package matchlog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/finvero/faqbot/internal/domain/faq"
)

const schemaTimeout = 5 * time.Second

// Postgres persists match events to faq_match_events. The projected query
// vector is stored as a pgvector value so low-scoring queries can be
// inspected against the fitted vocabulary offline.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgres ensures the events table exists and returns the sink.
func NewPostgres(pool *pgxpool.Pool, logger *slog.Logger) (*Postgres, error) {
	p := &Postgres{pool: pool, logger: logger.With("component", "matchlog.postgres")}
	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()
	if err := p.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	// Extension creation needs elevated privileges on managed Postgres;
	// the table statement below fails anyway if the type is truly absent.
	if _, err := p.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		p.logger.Warn("could not ensure pgvector extension", "error", err)
	}
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS faq_match_events (
			id        UUID PRIMARY KEY,
			asked_at  TIMESTAMPTZ NOT NULL,
			query     TEXT NOT NULL,
			entry_id  TEXT,
			score     DOUBLE PRECISION NOT NULL,
			answered  BOOLEAN NOT NULL,
			query_vec vector
		)
	`)
	if err != nil {
		return fmt.Errorf("create faq_match_events: %w", err)
	}
	return nil
}

func (p *Postgres) Record(ctx context.Context, event faq.QueryEvent) error {
	var entryID any
	if event.EntryID != "" {
		entryID = event.EntryID
	}
	var vec any
	if len(event.QueryVec) > 0 {
		vec = pgvector.NewVector(event.QueryVec)
	}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO faq_match_events (id, asked_at, query, entry_id, score, answered, query_vec)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, event.ID, event.AskedAt, event.Query, entryID, event.Score, event.Answered, vec)
	if err != nil {
		return fmt.Errorf("insert match event: %w", err)
	}
	return nil
}

var _ faq.EventSink = (*Postgres)(nil)
