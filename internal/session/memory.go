package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	flash     string
	expiresAt time.Time
}

// InMemoryStore is the development and unit-test implementation of the flash
// mailbox. Expiry is checked lazily on access instead of by a sweeper.
type InMemoryStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*memoryEntry
	clock   func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		entries: make(map[uuid.UUID]*memoryEntry),
		clock:   time.Now,
	}
}

// WithClock overrides the time source for expiry tests.
func (s *InMemoryStore) WithClock(clock func() time.Time) *InMemoryStore {
	s.clock = clock
	return s
}

func (s *InMemoryStore) Init(_ context.Context, sess Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sess.ID] = &memoryEntry{expiresAt: s.clock().Add(ttl)}
	return nil
}

func (s *InMemoryStore) SetFlash(_ context.Context, id uuid.UUID, message string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &memoryEntry{flash: message, expiresAt: s.clock().Add(ttl)}
	return nil
}

func (s *InMemoryStore) TakeFlash(_ context.Context, id uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok {
		return "", nil
	}
	if s.clock().After(entry.expiresAt) {
		delete(s.entries, id)
		return "", nil
	}
	msg := entry.flash
	entry.flash = ""
	return msg, nil
}
