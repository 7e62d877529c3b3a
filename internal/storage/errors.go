package storage

import "errors"

var (
	// ErrNotFound keeps storage-specific lookups consistent across the
	// in-memory and Postgres implementations.
	ErrNotFound = errors.New("contact not found")

	// ErrDuplicateName is returned when a write would violate the unique
	// contact name invariant. The Postgres store derives it from the
	// contacts_name_key constraint, which is the authoritative check; the
	// in-memory store enforces the same rule under its mutex.
	ErrDuplicateName = errors.New("contact name already in use")
)
