// Package view renders the HTML pages of the marketplace.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"trtlmarket/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	PageItems      = "items"
	PageItemsNew   = "items_new"
	PageLogin      = "login"
	PageSignup     = "signup"
	PageActivity   = "activity"
	PageAdminItems = "admin_items"
	PageError      = "error"
)

var pages = []string{PageItems, PageItemsNew, PageLogin, PageSignup, PageActivity, PageAdminItems, PageError}

// Page is the data every template receives.
type Page struct {
	Title   string
	User    *model.User
	Success []string
	Errors  []string
	Data    interface{}
}

// Renderer implements echo.Renderer over embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"canModerate": func(u *model.User) bool {
		return u != nil && u.Role.CanModerate()
	},
}

// New parses the layout together with every page.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the layout of the named page.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
