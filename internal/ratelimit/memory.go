package ratelimit

import (
	"context"
	"sync"
	"time"
)

const sweepEvery = 1024

type window struct {
	hits []time.Time
	size time.Duration
}

type Memory struct {
	mu    sync.Mutex
	keys  map[string]*window
	calls int
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{keys: make(map[string]*window), now: time.Now}
}

var _ Limiter = (*Memory)(nil)

func (m *Memory) Allow(_ context.Context, key string, limit int, size time.Duration) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w := m.prune(key, size, now)

	if len(w.hits) >= limit {
		return result(false, len(w.hits), limit), nil
	}

	w.hits = append(w.hits, now)
	return result(true, len(w.hits), limit), nil
}

func (m *Memory) Hit(_ context.Context, key string, size time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w := m.prune(key, size, now)
	w.hits = append(w.hits, now)
	return len(w.hits), nil
}

// prune drops hits older than size and, every sweepEvery calls, forgets
// keys whose windows are empty. Callers hold m.mu.
func (m *Memory) prune(key string, size time.Duration, now time.Time) *window {
	m.calls++
	if m.calls%sweepEvery == 0 {
		for k, w := range m.keys {
			w.hits = trim(w.hits, now.Add(-w.size))
			if len(w.hits) == 0 {
				delete(m.keys, k)
			}
		}
	}

	w, ok := m.keys[key]
	if !ok {
		w = &window{}
		m.keys[key] = w
	}
	if size > w.size {
		w.size = size
	}
	w.hits = trim(w.hits, now.Add(-size))
	return w
}

func trim(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}
