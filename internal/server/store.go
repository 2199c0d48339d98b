package server

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-signupform/pkg/form"
)

// ErrSessionNotFound is returned for unknown or expired draft ids.
var ErrSessionNotFound = errors.New("server: session not found")

// Store keeps form drafts in memory keyed by session id. Drafts idle for
// longer than the TTL are swept lazily on the next access.
type Store struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	drafts map[string]*storedDraft
}

type storedDraft struct {
	mu    sync.Mutex
	draft *form.Form
	seen  time.Time
	// gone is set when the entry leaves the map; callers already queued
	// on mu must not see the draft afterwards.
	gone atomic.Bool
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns an empty store. A non-positive ttl disables expiry.
func NewStore(ttl time.Duration, options ...StoreOption) *Store {
	s := &Store{
		ttl:    ttl,
		now:    time.Now,
		drafts: make(map[string]*storedDraft),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create stores draft under a new random id.
func (s *Store) Create(draft *form.Form) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweep(now)
	s.drafts[id] = &storedDraft{draft: draft, seen: now}
	return id
}

// With runs fn with exclusive access to the draft stored under id and
// refreshes its idle timer. fn may Delete the draft; callers waiting on the
// same id then get ErrSessionNotFound.
func (s *Store) With(id string, fn func(*form.Form) error) error {
	s.mu.Lock()
	now := s.now()
	s.sweep(now)
	entry, ok := s.drafts[id]
	if ok {
		entry.seen = now
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.gone.Load() {
		return ErrSessionNotFound
	}
	return fn(entry.draft)
}

// Delete discards the draft stored under id.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

func (s *Store) remove(id string) {
	if entry, ok := s.drafts[id]; ok {
		entry.gone.Store(true)
		delete(s.drafts, id)
	}
}

// Len returns the number of live drafts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(s.now())
	return len(s.drafts)
}

func (s *Store) sweep(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, entry := range s.drafts {
		if now.Sub(entry.seen) > s.ttl {
			s.remove(id)
		}
	}
}
