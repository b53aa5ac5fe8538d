// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the admin interface
// and the public site. Every render gets a fresh view.Frame, which templates
// reach through PageData.View.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pressroom/internal/filter"
	"pressroom/internal/identity"
	"pressroom/internal/markdown"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/view"
)

//go:embed templates
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active navigation section (e.g., "categories", "users")
	CSRFToken string         // CSRF token for forms
	Data      map[string]any // Page-specific data
	View      *Helpers       // Request-bound helpers, set by the renderer
}

// Helpers binds the view helpers to one request context and one Frame.
// Templates call its methods, e.g. {{range .View.WebCategories}}.
type Helpers struct {
	ctx        context.Context
	frame      *view.Frame
	users      *view.AdminUserHelper
	categories *view.CategoryHelper
}

// CurrentUser returns the signed-in admin, or nil for anonymous requests.
func (h *Helpers) CurrentUser() *identity.Identity {
	id, ok := h.users.Current(h.ctx)
	if !ok {
		return nil
	}
	return &id
}

// AdminUsers returns every admin user.
func (h *Helpers) AdminUsers() ([]models.User, error) {
	return h.users.All(h.ctx)
}

// SelectCategories returns every category for a select box.
func (h *Helpers) SelectCategories() ([]models.Category, error) {
	return h.categories.ForSelect(h.ctx)
}

// WebCategories returns the public categories with their latest posts,
// fetched at most once per render.
func (h *Helpers) WebCategories() ([]models.CategoryWithPosts, error) {
	return h.categories.ForWeb(h.ctx, h.frame)
}

// NavCategories returns the public categories sorted by name.
func (h *Helpers) NavCategories() ([]models.Category, error) {
	return h.categories.ForNav(h.ctx, h.frame)
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates  map[string]*template.Template
	users      *view.AdminUserHelper
	categories *view.CategoryHelper
}

// layouts maps each template directory to its base layout.
var layouts = map[string]string{
	"admin":  "base.html",
	"public": "base.html",
}

// standaloneTemplates render as full HTML pages without the base layout.
var standaloneTemplates = map[string]bool{
	"admin/login": true,
}

var funcMap = template.FuncMap{
	// deref safely dereferences a string pointer for use in templates.
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"markdown": func(source string) template.HTML {
		out, err := markdown.ToHTML(source)
		if err != nil {
			slog.Warn("markdown render failed", "error", err)
			return template.HTML(template.HTMLEscapeString(source))
		}
		return out
	},
	"date": func(t time.Time) string {
		return t.Format("2 Jan 2006")
	},
	"datetime": func(t *time.Time) string {
		if t == nil {
			return "never"
		}
		return t.Format("2 Jan 2006 15:04")
	},
	// pageURL sets the page query parameter on path.
	"pageURL": func(path string, page int) string {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		return path + "?" + q.Encode()
	},
	"activeClass": func(current, target string) string {
		if current == target {
			return "active"
		}
		return ""
	},
	// messages joins the validation messages for one form field.
	"messages": func(msgs filter.Messages, field string) string {
		return strings.Join(msgs[field], " ")
	},
}

// New parses every embedded template. Each page is paired with the base
// layout of its directory unless it is standalone.
func New(users *view.AdminUserHelper, categories *view.CategoryHelper) (*Renderer, error) {
	r := &Renderer{
		templates:  make(map[string]*template.Template),
		users:      users,
		categories: categories,
	}

	for dir, layout := range layouts {
		entries, err := fs.ReadDir(templateFS, "templates/"+dir)
		if err != nil {
			return nil, fmt.Errorf("read templates/%s: %w", dir, err)
		}

		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || name == layout || !strings.HasSuffix(name, ".html") {
				continue
			}
			key := dir + "/" + strings.TrimSuffix(name, ".html")

			files := []string{"templates/" + dir + "/" + layout, "templates/" + dir + "/" + name}
			root := layout
			if standaloneTemplates[key] {
				files = files[1:]
				root = name
			}

			tmpl, err := template.New(root).Funcs(funcMap).ParseFS(templateFS, files...)
			if err != nil {
				return nil, fmt.Errorf("parse template %s: %w", key, err)
			}
			r.templates[key] = tmpl
		}
	}

	return r, nil
}

// Render executes the named template ("admin/categories", "public/home")
// into a buffer. A new Frame is created for the call.
func (rn *Renderer) Render(r *http.Request, name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	if data == nil {
		data = &PageData{}
	}
	data.CSRFToken = middleware.CSRFToken(r.Context())
	data.View = &Helpers{
		ctx:        r.Context(),
		frame:      view.NewFrame(),
		users:      rn.users,
		categories: rn.categories,
	}

	execName := tmpl.Name()
	if isHTMX(r) && tmpl.Lookup("content") != nil {
		execName = "content"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders the named template and writes it with the given status.
// Nothing is written to w until rendering has succeeded.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	body, err := rn.Render(r, name, data)
	if err != nil {
		slog.Error("render page", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	WriteHTML(w, status, body)
}

// WriteHTML writes an already rendered page.
func WriteHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
// Such requests receive only the "content" block.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
