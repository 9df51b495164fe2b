// Package view renders the server-side HTML pages.  Templates are embedded
// in the binary; each page is parsed together with the shared layout so it
// can fill the layout's "content" block.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinepedia/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Render.
const (
	PageHome      = "home"
	PageRegister  = "register"
	PageLogin     = "login"
	PageMovies    = "movies"
	PageMovieForm = "movie_form"
	PageMovieShow = "movie_show"
	PageError     = "error"
)

var pageNames = []string{PageHome, PageRegister, PageLogin, PageMovies, PageMovieForm, PageMovieShow, PageError}

// Page is what every template receives.  Data is the handler's payload.
type Page struct {
	User  *session.Identity
	Flash *session.Flash
	Data  any
}

// UserID is the signed-in user's id, or 0 for guests.
func (p Page) UserID() uint64 {
	if p.User == nil {
		return 0
	}
	return p.User.UserID
}

// Renderer implements echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
}

// Funcs are the helpers available to templates.
var Funcs = template.FuncMap{
	"longDate": LongDate,
	"formDate": func(t time.Time) string { return t.Format("2006-01-02") },
	"stamp":    func(t time.Time) string { return t.Format("2 Jan 2006 15:04") },
}

// LongDate formats a release date as "16 July 2010".
func LongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2 January 2006")
}

// New parses every page against the layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(Funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page name wrapped in the layout.  The signed-in user and
// any pending flash message are taken from c.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	p := Page{Data: data}
	if c != nil {
		if id, ok := session.FromContext(c); ok {
			p.User = &id
		}
		p.Flash = session.PopFlash(c)
	}
	return t.ExecuteTemplate(w, "layout", p)
}
