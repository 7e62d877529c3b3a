package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contactbook/internal/domain"
	"contactbook/internal/platform/metrics"
	"contactbook/internal/platform/middleware"
	"contactbook/internal/session"
	"contactbook/internal/storage"
	"contactbook/internal/web"
)

// Flash messages, kept verbatim from the original application.
const (
	MsgContactAdded   = "Data contact berhasil ditambahkan!"
	MsgContactUpdated = "Data contact berhasil diubah!"
	MsgContactDeleted = "Data contact berhasil dihapus!"
)

// Service defines the workflow operations the HTTP layer depends on.
type Service interface {
	List(ctx context.Context) ([]domain.Contact, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Contact, error)
	Create(ctx context.Context, fields domain.ContactFields) (domain.Contact, []domain.FieldError, error)
	Update(ctx context.Context, id uuid.UUID, nameBefore string, fields domain.ContactFields) ([]domain.FieldError, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Handler is the thin HTTP layer over the contact workflow. It parses forms,
// delegates to the service, and picks the page to render; all business
// decisions live in the service.
type Handler struct {
	logger   *slog.Logger
	service  Service
	sessions session.Store
	renderer *web.Renderer
	metrics  *metrics.Metrics
	sessCfg  session.Config
}

func New(
	svc Service,
	sessions session.Store,
	renderer *web.Renderer,
	logger *slog.Logger,
	m *metrics.Metrics,
	sessCfg session.Config,
) *Handler {
	return &Handler{
		logger:   logger,
		service:  svc,
		sessions: sessions,
		renderer: renderer,
		metrics:  m,
		sessCfg:  sessCfg,
	}
}

// Register wires all routes: the contact pages, the home/about pages, static
// assets, the metrics endpoint, and the 404 catch-all.
//
// MethodOverride must run on the parent mux: chi only applies inline-group
// middleware after route matching, so the verb has to be rewritten here for
// form posts to reach the PUT/DELETE routes at all.
func (h *Handler) Register(r chi.Router) {
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Latency(h.metrics))
	r.Use(middleware.MethodOverride)

	r.Handle("/static/*", web.Static())
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(h.sessions, h.sessCfg, h.logger))

		r.Get("/", h.handleHome)
		r.Get("/about", h.handleAbout)

		r.Get("/contact", h.handleList)
		r.Get("/contact/add", h.handleAddForm)
		r.Post("/contact", h.handleCreate)
		r.Get("/contact/{id}", h.handleDetail)
		r.Get("/contact/edit/{id}", h.handleEditForm)
		r.Put("/contact", h.handleUpdate)
		r.Delete("/contact", h.handleDelete)
	})

	r.NotFound(h.handleNotFound)
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, web.PageHome, web.Data{
		Title:  "Home Contact App",
		Active: "Home",
	})
}

func (h *Handler) handleAbout(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, web.PageAbout, web.Data{
		Title:  "About Me",
		Active: "About",
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	contacts, err := h.service.List(ctx)
	if err != nil {
		h.serverError(w, r, "list contacts failed", err)
		return
	}
	h.renderer.Render(w, http.StatusOK, web.PageContactList, web.Data{
		Title:    "Daftar Contact",
		Active:   "Contact",
		Flash:    session.FlashFromContext(ctx),
		Contacts: contacts,
	})
}

func (h *Handler) handleAddForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, web.PageAddContact, web.Data{
		Title:  "Tambah Data Contact",
		Active: "Contact",
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fields := contactFieldsFromForm(r)

	_, fieldErrs, err := h.service.Create(ctx, fields)
	if err != nil {
		h.serverError(w, r, "create contact failed", err)
		return
	}
	if len(fieldErrs) > 0 {
		h.renderer.Render(w, http.StatusOK, web.PageAddContact, web.Data{
			Title:  "Tambah Data Contact",
			Active: "Contact",
			Form:   fields,
			Errors: fieldErrs,
		})
		return
	}

	h.setFlash(ctx, MsgContactAdded)
	http.Redirect(w, r, "/contact", http.StatusFound)
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.handleNotFound(w, r)
		return
	}

	c, err := h.service.Get(ctx, id)
	if err != nil {
		h.notFoundOrServerError(w, r, "load contact failed", err)
		return
	}
	h.renderer.Render(w, http.StatusOK, web.PageDetail, web.Data{
		Title:   "Detail Contact",
		Active:  "Contact",
		Contact: c,
	})
}

func (h *Handler) handleEditForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.handleNotFound(w, r)
		return
	}

	c, err := h.service.Get(ctx, id)
	if err != nil {
		h.notFoundOrServerError(w, r, "load contact failed", err)
		return
	}
	h.renderer.Render(w, http.StatusOK, web.PageEditContact, web.Data{
		Title:      "Edit Data Contact",
		Active:     "Contact",
		Form:       domain.ContactFields{Name: c.Name, Phone: c.Phone, Email: c.Email},
		ContactID:  c.ID.String(),
		NameBefore: c.Name,
	})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := uuid.Parse(r.PostFormValue("id"))
	if err != nil {
		h.handleNotFound(w, r)
		return
	}
	nameBefore := r.PostFormValue("name_before")
	fields := contactFieldsFromForm(r)

	fieldErrs, err := h.service.Update(ctx, id, nameBefore, fields)
	if err != nil {
		h.notFoundOrServerError(w, r, "update contact failed", err)
		return
	}
	if len(fieldErrs) > 0 {
		h.renderer.Render(w, http.StatusOK, web.PageEditContact, web.Data{
			Title:      "Edit Data Contact",
			Active:     "Contact",
			Form:       fields,
			ContactID:  id.String(),
			NameBefore: nameBefore,
			Errors:     fieldErrs,
		})
		return
	}

	h.setFlash(ctx, MsgContactUpdated)
	http.Redirect(w, r, "/contact", http.StatusFound)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := uuid.Parse(r.PostFormValue("id"))
	if err != nil {
		h.handleNotFound(w, r)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.serverError(w, r, "delete contact failed", err)
		return
	}

	h.setFlash(ctx, MsgContactDeleted)
	http.Redirect(w, r, "/contact", http.StatusFound)
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusNotFound, web.PageNotFound, web.Data{
		Title: "404",
	})
}

// setFlash is best-effort: a failed write costs only the confirmation
// banner, never the mutation that preceded it.
func (h *Handler) setFlash(ctx context.Context, message string) {
	sid := session.IDFromContext(ctx)
	if sid == (uuid.UUID{}) {
		return
	}
	ttl := h.sessCfg.TTL
	if ttl <= 0 {
		ttl = 6 * time.Second
	}
	if err := h.sessions.SetFlash(ctx, sid, message, ttl); err != nil {
		h.logger.WarnContext(ctx, "flash write failed",
			"request_id", middleware.GetRequestID(ctx),
			"session_id", sid.String(),
			"error", err.Error(),
		)
	}
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err.Error(),
	)
	h.renderer.Render(w, http.StatusInternalServerError, web.PageServerError, web.Data{
		Title: "Error",
	})
}

func (h *Handler) notFoundOrServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if isNotFound(err) {
		h.handleNotFound(w, r)
		return
	}
	h.serverError(w, r, msg, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}

func contactFieldsFromForm(r *http.Request) domain.ContactFields {
	return domain.ContactFields{
		Name:  r.PostFormValue("name"),
		Phone: r.PostFormValue("phone"),
		Email: r.PostFormValue("email"),
	}
}
