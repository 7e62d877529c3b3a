// Package session implements the per-session flash mailbox: a single message
// slot keyed by a short-lived session cookie. Writing replaces the slot,
// reading drains it. The middleware drains the slot into the request context
// so handlers never touch session state directly.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the record created the first time a browser shows up without a
// valid session cookie. Browser is a display label derived from the
// User-Agent header, kept for log correlation only.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Browser   string    `json:"browser"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the flash mailbox contract. Implementations expire both the
// session record and any pending flash after the configured TTL, so delivery
// is best-effort by design.
type Store interface {
	// Init registers a new session with the given lifetime.
	Init(ctx context.Context, sess Session, ttl time.Duration) error
	// SetFlash replaces the session's message slot.
	SetFlash(ctx context.Context, id uuid.UUID, message string, ttl time.Duration) error
	// TakeFlash reads and clears the message slot. An empty string means
	// no message was pending.
	TakeFlash(ctx context.Context, id uuid.UUID) (string, error)
}

type sessionIDKey struct{}
type flashKey struct{}

// IDFromContext retrieves the session ID set by the middleware. Returns the
// nil UUID when no session middleware ran.
func IDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(sessionIDKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.UUID{}
}

// WithID injects a session ID into a context. Useful for handler tests that
// don't run the full middleware chain.
func WithID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// FlashFromContext retrieves the drained flash message for this request, if
// any.
func FlashFromContext(ctx context.Context) string {
	if msg, ok := ctx.Value(flashKey{}).(string); ok {
		return msg
	}
	return ""
}

// WithFlash injects a flash message into a context.
func WithFlash(ctx context.Context, message string) context.Context {
	return context.WithValue(ctx, flashKey{}, message)
}
