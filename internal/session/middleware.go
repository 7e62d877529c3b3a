package session

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
)

// DefaultCookieName matches the session cookie the templates and tests
// assume.
const DefaultCookieName = "session_id"

// Config controls the session middleware. TTL bounds both the cookie and the
// server-side session/flash keys; the original application used a
// six-second session, which makes the flash effectively single-use.
type Config struct {
	CookieName string
	TTL        time.Duration
}

// Middleware ensures every request carries a session: it issues the cookie
// and session record when missing, drains any pending flash message into the
// request context, and leaves writing new flashes to the handlers. Store
// failures are logged and tolerated; flash delivery is best-effort.
func Middleware(store Store, cfg Config, logger *slog.Logger) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, fresh := sessionIDFromCookie(r, cfg.CookieName)
			if fresh {
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    id.String(),
					Path:     "/",
					MaxAge:   int(cfg.TTL / time.Second),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				sess := Session{
					ID:        id,
					Browser:   browserLabel(r.UserAgent()),
					CreatedAt: time.Now(),
				}
				if err := store.Init(ctx, sess, cfg.TTL); err != nil {
					logger.WarnContext(ctx, "session init failed",
						"session_id", id.String(),
						"error", err.Error(),
					)
				}
			}

			ctx = WithID(ctx, id)
			if !fresh {
				msg, err := store.TakeFlash(ctx, id)
				if err != nil {
					logger.WarnContext(ctx, "flash read failed",
						"session_id", id.String(),
						"error", err.Error(),
					)
				} else if msg != "" {
					ctx = WithFlash(ctx, msg)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionIDFromCookie returns the session id carried by the request cookie,
// or a freshly minted one when the cookie is absent or malformed.
func sessionIDFromCookie(r *http.Request, name string) (uuid.UUID, bool) {
	cookie, err := r.Cookie(name)
	if err == nil {
		if id, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
			return id, false
		}
	}
	return uuid.New(), true
}

// browserLabel derives a short display name from the User-Agent header, kept
// on the session record for log correlation.
func browserLabel(rawUA string) string {
	if rawUA == "" {
		return "unknown"
	}
	ua := useragent.New(rawUA)
	name, version := ua.Browser()
	if name == "" {
		return "unknown"
	}
	if version == "" {
		return name
	}
	return fmt.Sprintf("%s %s", name, version)
}
