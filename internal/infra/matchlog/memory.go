package matchlog

import (
	"context"
	"sync"

	"github.com/finvero/faqbot/internal/domain/faq"
)

const defaultMemoryLimit = 256

// Memory retains the most recent match events. It backs deployments
// without a Postgres pool and the unit tests.
type Memory struct {
	mu     sync.Mutex
	limit  int
	events []faq.QueryEvent
}

func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = defaultMemoryLimit
	}
	return &Memory{limit: limit}
}

func (m *Memory) Record(_ context.Context, event faq.QueryEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	if len(m.events) > m.limit {
		m.events = m.events[len(m.events)-m.limit:]
	}
	return nil
}

// Recent returns the retained events, oldest first.
func (m *Memory) Recent() []faq.QueryEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]faq.QueryEvent, len(m.events))
	copy(out, m.events)
	return out
}

var _ faq.EventSink = (*Memory)(nil)
