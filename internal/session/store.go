package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Skotchmaster/shope/pkg/logging"
)

var ErrClosed = errors.New("session store closed")

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

// Store keeps one value per session id. Values are created lazily by Open,
// dropped by Expire once idle, and dropped all at once by Close.
type Store[T any] struct {
	mu     sync.Mutex
	newFn  func() T
	now    func() time.Time
	items  map[string]*entry[T]
	closed bool
}

func NewStore[T any](newFn func() T) *Store[T] {
	return &Store[T]{
		newFn: newFn,
		now:   time.Now,
		items: make(map[string]*entry[T]),
	}
}

// Open returns the value for id, creating it first when absent. init runs once,
// on creation only; if it fails nothing is stored and the error is returned.
// Every Open counts as activity for Expire.
func (s *Store[T]) Open(id string, init func(T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if s.closed {
		return zero, ErrClosed
	}
	if e, ok := s.items[id]; ok {
		e.lastSeen = s.now()
		return e.value, nil
	}

	v := s.newFn()
	if init != nil {
		if err := init(v); err != nil {
			return zero, err
		}
	}
	s.items[id] = &entry[T]{value: v, lastSeen: s.now()}
	return v, nil
}

// Lookup returns the value for id without marking it active.
func (s *Store[T]) Lookup(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// IDs returns the open session ids in sorted order.
func (s *Store[T]) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Expire drops every session not opened within idle and returns the dropped ids.
func (s *Store[T]) Expire(idle time.Duration) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	var dropped []string
	for id, e := range s.items {
		if e.lastSeen.Before(cutoff) {
			delete(s.items, id)
			dropped = append(dropped, id)
		}
	}
	sort.Strings(dropped)
	return dropped
}

// Run calls Expire every interval until ctx is done.
func (s *Store[T]) Run(ctx context.Context, idle, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	l := logging.FromContext(ctx).With("component", "session.store")
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if dropped := s.Expire(idle); len(dropped) > 0 {
				l.Info("sessions_expired", "count", len(dropped), "remaining", s.Len())
			}
		}
	}
}

// Close refuses further Opens and hands back everything that was open.
func (s *Store[T]) Close() map[string]T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]T, len(s.items))
	for id, e := range s.items {
		out[id] = e.value
	}
	s.items = make(map[string]*entry[T])
	s.closed = true
	return out
}
