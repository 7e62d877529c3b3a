package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"contactbook/internal/domain"
)

// InMemoryContactStore keeps development and unit tests lightweight. It
// intentionally favors clarity over performance.
type InMemoryContactStore struct {
	mu       sync.RWMutex
	contacts map[uuid.UUID]domain.Contact
	order    []uuid.UUID
}

func NewInMemoryContactStore() *InMemoryContactStore {
	return &InMemoryContactStore{contacts: make(map[uuid.UUID]domain.Contact)}
}

func (s *InMemoryContactStore) ListAll(_ context.Context) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Contact, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.contacts[id])
	}
	return out, nil
}

func (s *InMemoryContactStore) FindByID(_ context.Context, id uuid.UUID) (domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.contacts[id]; ok {
		return c, nil
	}
	return domain.Contact{}, ErrNotFound
}

func (s *InMemoryContactStore) FindByName(_ context.Context, name string) (domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if s.contacts[id].Name == name {
			return s.contacts[id], nil
		}
	}
	return domain.Contact{}, ErrNotFound
}

func (s *InMemoryContactStore) Insert(_ context.Context, fields domain.ContactFields) (domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.contacts {
		if existing.Name == fields.Name {
			return domain.Contact{}, ErrDuplicateName
		}
	}
	now := time.Now()
	c := domain.Contact{
		ID:        uuid.New(),
		Name:      fields.Name,
		Phone:     fields.Phone,
		Email:     fields.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.contacts[c.ID] = c
	s.order = append(s.order, c.ID)
	return c, nil
}

func (s *InMemoryContactStore) Update(_ context.Context, id uuid.UUID, fields domain.ContactFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok {
		return ErrNotFound
	}
	for otherID, existing := range s.contacts {
		if otherID != id && existing.Name == fields.Name {
			return ErrDuplicateName
		}
	}
	c.Name = fields.Name
	c.Phone = fields.Phone
	c.Email = fields.Email
	c.UpdatedAt = time.Now()
	s.contacts[id] = c
	return nil
}

func (s *InMemoryContactStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[id]; !ok {
		return ErrNotFound
	}
	delete(s.contacts, id)
	for i, ordered := range s.order {
		if ordered == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
