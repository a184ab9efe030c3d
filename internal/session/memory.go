package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps page views in process. Entries expire ttl after their last write.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// NewMemoryStore starts a store with a background sweep. Call Close to stop it.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go s.cleanup(ttl)
	return s
}

func (s *MemoryStore) Create(ctx context.Context, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[st.ID] = &memoryEntry{state: st, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id)
	if !ok {
		return State{}, ErrViewNotFound
	}
	return e.state, nil
}

// Update runs fn under the store lock; fn must not block.
func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*State) error) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lookup(id)
	if !ok {
		return State{}, ErrViewNotFound
	}
	next := e.state
	if err := fn(&next); err != nil {
		return e.state, err
	}
	e.state = next
	e.expiresAt = s.now().Add(s.ttl)
	return next, nil
}

// Len reports the number of live entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the sweep goroutine.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) lookup(id string) (*memoryEntry, bool) {
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, id)
		return nil, false
	}
	return e, true
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}

func (s *MemoryStore) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}
