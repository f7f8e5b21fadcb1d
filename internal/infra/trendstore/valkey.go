package trendstore

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/finvero/faqbot/internal/domain/faq"
)

// Valkey keeps query counters in a sorted set so trending survives restarts
// and is shared across replicas.
type Valkey struct {
	client valkey.Client
	prefix string
}

// NewValkey constructs a store backed by Valkey.
func NewValkey(client valkey.Client, prefix string) *Valkey {
	if prefix == "" {
		prefix = "faqbot"
	}
	return &Valkey{client: client, prefix: prefix}
}

func (s *Valkey) IncrementQuery(ctx context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	if err := s.client.Do(ctx, s.client.B().Zincrby().Key(s.trendingKey()).Increment(1).Member(canonical).Build()).Error(); err != nil {
		return err
	}
	if display != "" {
		// First spelling wins; later variants keep the original display text.
		_ = s.client.Do(ctx, s.client.B().Set().Key(s.displayKey(canonical)).Value(display).Nx().Build()).Error()
	}
	return nil
}

func (s *Valkey) TopQueries(ctx context.Context, limit int) ([]faq.TrendingQuery, error) {
	if limit <= 0 {
		limit = 10
	}
	resp := s.client.Do(ctx, s.client.B().Zrevrange().Key(s.trendingKey()).Start(0).Stop(int64(limit-1)).Withscores().Build())
	scores, err := resp.AsZScores()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]faq.TrendingQuery, 0, len(scores))
	for _, zs := range scores {
		display := s.fetchDisplay(ctx, zs.Member)
		out = append(out, faq.TrendingQuery{Query: display, Count: int64(zs.Score)})
	}
	return out, nil
}

func (s *Valkey) fetchDisplay(ctx context.Context, canonical string) string {
	resp := s.client.Do(ctx, s.client.B().Get().Key(s.displayKey(canonical)).Build())
	display, err := resp.ToString()
	if err != nil || display == "" {
		return canonical
	}
	return display
}

func (s *Valkey) trendingKey() string {
	return fmt.Sprintf("%s:trending", s.prefix)
}

func (s *Valkey) displayKey(canonical string) string {
	return fmt.Sprintf("%s:display:%s", s.prefix, canonical)
}

var _ faq.TrendStore = (*Valkey)(nil)
