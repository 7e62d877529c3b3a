// Package web owns the server-rendered HTML surface: the embedded templates,
// the static assets, and the renderer that pairs each page with the shared
// layout.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"contactbook/internal/domain"
)

//go:embed templates/layouts/*.html templates/pages/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names accepted by Render. Each corresponds to a file under
// templates/pages.
const (
	PageHome        = "index"
	PageAbout       = "about"
	PageContactList = "contact"
	PageAddContact  = "add-contact"
	PageEditContact = "edit-contact"
	PageDetail      = "detail"
	PageNotFound    = "404"
	PageServerError = "500"
)

// Data is the single view model shared by all pages; each template picks the
// fields it needs. Active drives nav highlighting in the layout.
type Data struct {
	Title      string
	Active     string
	Flash      string
	Contacts   []domain.Contact
	Contact    domain.Contact
	Form       domain.ContactFields
	ContactID  string
	NameBefore string
	Errors     []domain.FieldError
}

// Renderer executes a page template inside the shared layout. Pages are
// parsed once at startup so a broken template fails fast.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	names := []string{
		PageHome, PageAbout, PageContactList, PageAddContact,
		PageEditContact, PageDetail, PageNotFound, PageServerError,
	}
	funcs := template.FuncMap{
		"addOne": func(i int) int { return i + 1 },
	}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := template.New(name).Funcs(funcs).ParseFS(templatesFS,
			"templates/layouts/main.html",
			"templates/pages/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes the page with the given status. The template executes into a
// buffer first so a rendering failure can still produce a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Data) {
	t, ok := r.pages[page]
	if !ok {
		r.logger.Error("unknown page template", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logger.Error("template execution failed", "page", page, "error", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Static serves the embedded assets under the /static prefix.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
