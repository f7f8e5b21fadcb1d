package matchlog

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/finvero/faqbot/internal/domain/faq"
)

const (
	defaultBuffer  = 256
	deliverTimeout = 5 * time.Second
)

// Async decouples event recording from request handling. Record never
// blocks: when the buffer is full the event is dropped and counted.
type Async struct {
	sink    faq.EventSink
	logger  *slog.Logger
	events  chan faq.QueryEvent
	stop    chan struct{}
	done    chan struct{}
	dropped atomic.Int64
}

// NewAsync wraps sink with a buffered drain goroutine.
func NewAsync(sink faq.EventSink, buffer int, logger *slog.Logger) *Async {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	a := &Async{
		sink:   sink,
		logger: logger.With("component", "matchlog.async"),
		events: make(chan faq.QueryEvent, buffer),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go a.drain()
	return a
}

func (a *Async) Record(_ context.Context, event faq.QueryEvent) error {
	select {
	case a.events <- event:
	default:
		a.dropped.Add(1)
	}
	return nil
}

func (a *Async) drain() {
	defer close(a.done)
	for {
		select {
		case event := <-a.events:
			a.deliver(event)
		case <-a.stop:
			for {
				select {
				case event := <-a.events:
					a.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (a *Async) deliver(event faq.QueryEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()
	if err := a.sink.Record(ctx, event); err != nil {
		a.logger.Warn("match event lost", "event_id", event.ID, "error", err)
	}
}

// Close flushes buffered events and stops the drain goroutine.
func (a *Async) Close() {
	close(a.stop)
	<-a.done
	if n := a.dropped.Load(); n > 0 {
		a.logger.Warn("match events dropped under load", "count", n)
	}
}

// Dropped reports how many events were discarded on a full buffer.
func (a *Async) Dropped() int64 {
	return a.dropped.Load()
}

var _ faq.EventSink = (*Async)(nil)
