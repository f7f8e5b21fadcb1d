package faq

import "context"

// Source supplies the raw knowledge base entries. Load order is
// significant: earlier entries win similarity ties.
type Source interface {
	Load(ctx context.Context) ([]Entry, error)
	Describe() string
}
