// Package session keeps the per-device cart and comparison set in memory.
package session

import (
	"context"
	"sync"
	"time"

	"rz-parfum-be/internal/cart"
	"rz-parfum-be/internal/compare"
	"rz-parfum-be/internal/logger"

	"go.uber.org/zap"
)

type State struct {
	Cart    cart.Cart
	Compare compare.Set
}

type entry struct {
	state    State
	lastSeen time.Time
}

type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

// NewStore keeps a device's state until it has been idle for ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the device state, empty for an unknown device.
func (s *Store) Get(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return State{}
	}
	e.lastSeen = s.now()
	return e.state
}

// Update applies fn to the device state and stores the result. Updates of
// the same store never interleave.
func (s *Store) Update(id string, fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		e = &entry{}
		s.entries[id] = e
	}
	e.state = fn(e.state)
	e.lastSeen = s.now()
	return e.state
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops the states idle for longer than the ttl.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				logger.FromCtx(ctx).Debug("expired device sessions removed", zap.Int("count", n))
			}
		}
	}
}
