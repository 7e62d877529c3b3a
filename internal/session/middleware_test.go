package session

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMiddlewareIssuesCookie(t *testing.T) {
	store := NewInMemoryStore()
	mw := Middleware(store, Config{TTL: time.Minute}, discardLogger())

	var gotID uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = IDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	w := httptest.NewRecorder()
	mw(next).ServeHTTP(w, req)

	require.NotEqual(t, uuid.UUID{}, gotID)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultCookieName, cookies[0].Name)
	assert.Equal(t, gotID.String(), cookies[0].Value)
	assert.Equal(t, 60, cookies[0].MaxAge)
}

func TestMiddlewareReusesValidCookie(t *testing.T) {
	store := NewInMemoryStore()
	mw := Middleware(store, Config{TTL: time.Minute}, discardLogger())

	id := uuid.New()
	var gotID uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = IDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: id.String()})
	w := httptest.NewRecorder()
	mw(next).ServeHTTP(w, req)

	assert.Equal(t, id, gotID)
	assert.Empty(t, w.Result().Cookies(), "no new cookie for an existing session")
}

func TestMiddlewareDrainsFlashIntoContext(t *testing.T) {
	store := NewInMemoryStore()
	mw := Middleware(store, Config{TTL: time.Minute}, discardLogger())

	id := uuid.New()
	require.NoError(t, store.SetFlash(context.Background(), id, "Data contact berhasil ditambahkan!", time.Minute))

	var gotFlash string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFlash = FlashFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: id.String()})
	mw(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "Data contact berhasil ditambahkan!", gotFlash)

	// A second request with the same cookie finds the slot empty.
	gotFlash = ""
	req = httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: id.String()})
	mw(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Empty(t, gotFlash)
}

func TestMiddlewareRejectsMalformedCookie(t *testing.T) {
	store := NewInMemoryStore()
	mw := Middleware(store, Config{TTL: time.Minute}, discardLogger())

	var gotID uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = IDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "not-a-uuid"})
	w := httptest.NewRecorder()
	mw(next).ServeHTTP(w, req)

	require.NotEqual(t, uuid.UUID{}, gotID)
	require.Len(t, w.Result().Cookies(), 1, "malformed cookie gets replaced")
	assert.Equal(t, gotID.String(), w.Result().Cookies()[0].Value)
}
