package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Queue drains events into a sink on a single worker goroutine.
// A full buffer drops the event; the API never waits on the sink.
type Queue[T any] struct {
	name string
	sink func(context.Context, T) error
	log  zerolog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan T
	done   chan struct{}
}

func NewQueue[T any](
	name string,
	size int,
	sink func(context.Context, T) error,
	log zerolog.Logger,
) *Queue[T] {
	if size <= 0 {
		size = 100
	}

	q := &Queue[T]{
		name:  name,
		sink:  sink,
		log:   log.With().Str("queue", name).Logger(),
		queue: make(chan T, size),
		done:  make(chan struct{}),
	}

	go q.worker()
	return q
}

func (q *Queue[T]) worker() {
	defer close(q.done)

	for ev := range q.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := q.sink(ctx, ev); err != nil {
			q.log.Error().Err(err).Msg("queue sink failed")
		}
		cancel()
	}
}

// Push enqueues ev and reports whether it was accepted.
func (q *Queue[T]) Push(ev T) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.queue <- ev:
		return true
	default:
		q.log.Warn().Msg("queue full, dropping event")
		return false
	}
}

// Close stops accepting events and waits until the backlog is written
// or ctx expires.
func (q *Queue[T]) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.queue)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
