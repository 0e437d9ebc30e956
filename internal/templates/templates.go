// Package templates renders the server-side HTML pages.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed *.html
var pageFS embed.FS

//go:embed static
var staticFS embed.FS

// pages maps each page to the base template it is rendered inside.
var pages = map[string]string{
	"index.html":     "auth",
	"login.html":     "auth",
	"register.html":  "auth",
	"dashboard.html": "layout",
	"list.html":      "layout",
	"error.html":     "layout",
}

var printer = message.NewPrinter(language.Indonesian)

var funcMap = template.FuncMap{
	// number formats n the way the id-ID locale does: 1.234.567
	"number": func(n int) string {
		return printer.Sprintf("%d", n)
	},
	// dict builds a map from key/value pairs so a nested template can take
	// more than one argument.
	"dict": func(pairs ...any) (map[string]any, error) {
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("dict: odd number of arguments")
		}
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
	"add": func(a, b int) int {
		return a + b
	},
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Local().Format("02 Jan 2006 15:04")
	},
}

type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for page := range pages {
		tmpl, err := template.New(page).Funcs(funcMap).ParseFS(pageFS, "layout.html", "auth.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render executes page into a buffer first, so a template error never leaves
// a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		http.Error(w, "Halaman tidak ditemukan", http.StatusInternalServerError)
		return fmt.Errorf("render: unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, pages[page], data); err != nil {
		http.Error(w, "Gagal menampilkan halaman", http.StatusInternalServerError)
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded stylesheet and assets under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
