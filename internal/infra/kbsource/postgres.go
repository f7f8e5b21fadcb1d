package kbsource

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finvero/faqbot/internal/domain/faq"
)

// Postgres loads curated entries from a faq_entries table. The position
// column fixes the load order, which in turn fixes how score ties resolve.
//
// Expected schema:
//
//	CREATE TABLE faq_entries (
//	    position   SERIAL PRIMARY KEY,
//	    id         TEXT NOT NULL UNIQUE,
//	    question   TEXT NOT NULL,
//	    answer     TEXT NOT NULL,
//	    source_tag TEXT NOT NULL
//	);
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an existing connection pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Load(ctx context.Context) ([]faq.Entry, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, question, answer, source_tag
		FROM faq_entries
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("query faq_entries: %w", err)
	}
	defer rows.Close()

	var entries []faq.Entry
	for rows.Next() {
		var e faq.Entry
		if err := rows.Scan(&e.ID, &e.Question, &e.Answer, &e.SourceTag); err != nil {
			return nil, fmt.Errorf("scan faq entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faq_entries: %w", err)
	}
	return entries, nil
}

func (p *Postgres) Describe() string {
	return "postgres:faq_entries"
}

var _ faq.Source = (*Postgres)(nil)
