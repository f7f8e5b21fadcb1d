package faq

import "context"

// EventSink receives one QueryEvent per scored query. Implementations
// are best effort; the service swallows their errors.
type EventSink interface {
	Record(ctx context.Context, event QueryEvent) error
}

// TrendStore counts how often each question is asked.
type TrendStore interface {
	IncrementQuery(ctx context.Context, canonical, display string) error
	TopQueries(ctx context.Context, limit int) ([]TrendingQuery, error)
}
