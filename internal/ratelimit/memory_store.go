package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowEntry struct {
	count int
	reset time.Time
}

// MemoryStore keeps windows in process memory. State is lost on restart,
// which is acceptable for an advisory limiter.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*windowEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*windowEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Incr(ctx context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.windows[key]
	if !ok || now.After(entry.reset) {
		s.windows[key] = &windowEntry{count: 1, reset: now.Add(window)}
		return 1, nil
	}

	entry.count++
	return entry.count, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
