package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"contactbook/internal/domain"
	"contactbook/internal/platform/metrics"
	"contactbook/internal/storage"
)

// Service orchestrates the add/edit/delete workflows: it runs validation,
// decides the success/failure branch, and performs the store mutation. The
// duplicate-name constraint in the store is authoritative; a constraint
// violation at write time folds into the same field error the validator
// produces, which closes the check-then-act race window.
type Service struct {
	store     storage.ContactStore
	validator *Validator
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func NewService(store storage.ContactStore, validator *Validator, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:     store,
		validator: validator,
		logger:    logger,
		metrics:   m,
	}
}

// List returns every contact in insertion order.
func (s *Service) List(ctx context.Context) ([]domain.Contact, error) {
	contacts, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// Get looks up a single contact. Returns storage.ErrNotFound when the id is
// unknown.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Contact, error) {
	return s.store.FindByID(ctx, id)
}

// Create validates the payload in add mode and inserts it. A non-empty field
// error slice means the form must be re-rendered; the returned contact is
// only meaningful when the slice is empty and the error nil.
func (s *Service) Create(ctx context.Context, fields domain.ContactFields) (domain.Contact, []domain.FieldError, error) {
	fieldErrs, err := s.validator.Validate(ctx, fields, "")
	if err != nil {
		return domain.Contact{}, nil, fmt.Errorf("validate contact: %w", err)
	}
	if len(fieldErrs) > 0 {
		s.countValidationFailures(fieldErrs)
		return domain.Contact{}, fieldErrs, nil
	}

	c, err := s.store.Insert(ctx, fields)
	if errors.Is(err, storage.ErrDuplicateName) {
		// Lost the race between the uniqueness check and the insert; the
		// constraint is the source of truth.
		s.metrics.IncValidationFailure(domain.FieldName)
		return domain.Contact{}, []domain.FieldError{{Field: domain.FieldName, Message: MsgDuplicateName}}, nil
	}
	if err != nil {
		return domain.Contact{}, nil, fmt.Errorf("insert contact: %w", err)
	}

	s.metrics.IncContactsCreated()
	s.logger.InfoContext(ctx, "contact created", "contact_id", c.ID.String(), "name", c.Name)
	return c, nil, nil
}

// Update validates the payload in edit mode (nameBefore suppresses the
// duplicate error for an unchanged name) and replaces the three mutable
// fields. Returns storage.ErrNotFound when the id is unknown.
func (s *Service) Update(ctx context.Context, id uuid.UUID, nameBefore string, fields domain.ContactFields) ([]domain.FieldError, error) {
	fieldErrs, err := s.validator.Validate(ctx, fields, nameBefore)
	if err != nil {
		return nil, fmt.Errorf("validate contact: %w", err)
	}
	if len(fieldErrs) > 0 {
		s.countValidationFailures(fieldErrs)
		return fieldErrs, nil
	}

	err = s.store.Update(ctx, id, fields)
	if errors.Is(err, storage.ErrDuplicateName) {
		s.metrics.IncValidationFailure(domain.FieldName)
		return []domain.FieldError{{Field: domain.FieldName, Message: MsgDuplicateName}}, nil
	}
	if err != nil {
		return nil, err
	}

	s.metrics.IncContactsUpdated()
	s.logger.InfoContext(ctx, "contact updated", "contact_id", id.String(), "name", fields.Name)
	return nil, nil
}

// Delete removes a contact by id. Deleting an absent id is a no-op success,
// matching the form's fire-and-forget delete button.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.store.DeleteByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	s.metrics.IncContactsDeleted()
	s.logger.InfoContext(ctx, "contact deleted", "contact_id", id.String())
	return nil
}

func (s *Service) countValidationFailures(fieldErrs []domain.FieldError) {
	for _, fe := range fieldErrs {
		s.metrics.IncValidationFailure(fe.Field)
	}
}
