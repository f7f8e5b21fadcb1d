package kbsource

import (
	"context"

	"github.com/finvero/faqbot/internal/domain/faq"
)

// Static serves a fixed slice of entries. Used in tests and as a seed
// source when no external backend is configured.
type Static struct {
	entries []faq.Entry
}

func NewStatic(entries []faq.Entry) *Static {
	return &Static{entries: entries}
}

// Load returns a copy so callers cannot mutate the backing slice.
func (s *Static) Load(_ context.Context) ([]faq.Entry, error) {
	out := make([]faq.Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *Static) Describe() string {
	return "static"
}

var _ faq.Source = (*Static)(nil)
