// Package view renders the server-side HTML pages. Handlers never build
// markup; they hand over a template name and a data record.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded templates. Each page
// template is parsed together with the shared layout, so pages can redefine
// only the content block.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"usd": func(price float64) string {
		return fmt.Sprintf("$%.2f", price)
	},
}

// NewRenderer parses every page under templates/pages against the layout.
func NewRenderer() (*Renderer, error) {
	names, err := fs.Glob(templateFS, "templates/pages/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("view: glob pages: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		t, err := template.New(path.Base(name)).Funcs(funcs).ParseFS(templateFS, "templates/layout.tmpl", name)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
		key := strings.TrimSuffix(path.Base(name), ".tmpl")
		r.pages[key] = t
	}
	return r, nil
}

// Render satisfies echo.Renderer. name is the page key, e.g. "login".
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
