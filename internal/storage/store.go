package storage

import (
	"context"

	"github.com/google/uuid"

	"contactbook/internal/domain"
)

// ContactStore is interface-driven to keep the workflow logic testable and to
// allow swapping the in-memory implementation for Postgres without rewiring
// business code.
//
// ListAll returns contacts in insertion order. FindByName is an exact,
// case-sensitive match and backs the duplicate-name check. Update and
// DeleteByID report ErrNotFound for a missing id; callers decide whether that
// is an error worth surfacing.
type ContactStore interface {
	ListAll(ctx context.Context) ([]domain.Contact, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Contact, error)
	FindByName(ctx context.Context, name string) (domain.Contact, error)
	Insert(ctx context.Context, fields domain.ContactFields) (domain.Contact, error)
	Update(ctx context.Context, id uuid.UUID, fields domain.ContactFields) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
