package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact is the single persisted entity of the application. The ID is
// assigned by the store on insert and never changes; Name is unique across
// the whole collection (case-sensitive exact match).
type Contact struct {
	ID        uuid.UUID
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactFields carries the three user-editable fields of a contact, as
// submitted by the add and edit forms, before any validation has run.
type ContactFields struct {
	Name  string
	Phone string
	Email string
}

// Form field names, shared by validation errors and the HTML templates.
const (
	FieldName  = "name"
	FieldPhone = "phone"
	FieldEmail = "email"
)

// FieldError is a single validation failure attached to a form field.
// A slice of these is rendered inline on the originating form.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}
