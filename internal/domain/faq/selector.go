package faq

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Selector turns raw matches into answer decisions and records every
// query. Recording is best effort and never reaches the caller.
type Selector struct {
	threshold float64
	sink      EventSink
	trends    TrendStore
	logger    *slog.Logger
}

// NewSelector builds a selector. Scores equal to the threshold count as
// answered.
func NewSelector(threshold float64, sink EventSink, trends TrendStore, logger *slog.Logger) *Selector {
	return &Selector{
		threshold: threshold,
		sink:      sink,
		trends:    trends,
		logger:    logger.With("component", "faq.selector"),
	}
}

// Select decides whether the match is confident enough to answer with.
func (s *Selector) Select(ctx context.Context, query string, match Match, queryVec []float64) Outcome {
	out := Outcome{Score: match.Score}
	if match.Score >= s.threshold {
		out.Answered = true
		out.Answer = match.Entry.Answer
		out.Sources = []string{match.Entry.SourceTag}
		out.EntryID = match.Entry.ID
	}
	s.observe(ctx, query, out, queryVec)
	return out
}

func (s *Selector) observe(ctx context.Context, query string, out Outcome, queryVec []float64) {
	entryID := out.EntryID
	if entryID == "" {
		entryID = "none"
	}
	s.logger.Info("query scored",
		"query", query,
		"entry_id", entryID,
		"score", out.Score,
		"answered", out.Answered)

	if s.trends != nil {
		if err := s.trends.IncrementQuery(ctx, canonicalQuery(query), query); err != nil {
			s.logger.Warn("trending increment failed", "error", err)
		}
	}
	if s.sink != nil {
		event := QueryEvent{
			ID:       uuid.New(),
			AskedAt:  time.Now().UTC(),
			Query:    query,
			EntryID:  out.EntryID,
			Score:    out.Score,
			Answered: out.Answered,
			QueryVec: toFloat32(queryVec),
		}
		if err := s.sink.Record(ctx, event); err != nil {
			s.logger.Warn("match log record failed", "error", err)
		}
	}
}

func toFloat32(v []float64) []float32 {
	if len(v) == 0 {
		return nil
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
