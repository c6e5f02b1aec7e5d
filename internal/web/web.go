// Package web holds the HTML templates. All output goes through html/template escaping.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/JoseR-Vargas/Hostal-Mayelewoo-Front/internal/dashboard"
)

//go:embed templates/*.html
var files embed.FS

var pages = []string{"home", "vouchers", "contadores", "calculadora", "login", "admin", "dashboard", "error"}

// Banner is the message shown above a form or dashboard.
type Banner struct {
	Kind string
	Text string
}

// Page is the data every template receives.
type Page struct {
	Title     string
	Hostal    string
	Banner    *Banner
	Form      map[string]string
	Admin     bool
	QuickLink string
	// Backend preserves the ?backend= override across links and form posts.
	Backend string
	Data    any
}

type Templates struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"contains": func(k dashboard.FilterKind) bool { return k == dashboard.Contains },
	"withBackend": func(path, backend string) string {
		if backend == "" {
			return path
		}
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + "backend=" + template.URLQueryEscaper(backend)
	},
}

// Parse loads every page with the shared layout.
func Parse() (*Templates, error) {
	t := &Templates{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		t.pages[name] = tpl
	}
	return t, nil
}

// Render executes the named page into w.
func (t *Templates) Render(w io.Writer, name string, p *Page) error {
	tpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return tpl.ExecuteTemplate(w, "layout.html", p)
}
