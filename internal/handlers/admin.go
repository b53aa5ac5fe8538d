// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"pressroom/internal/filter"
	"pressroom/internal/models"
	"pressroom/internal/render"
	"pressroom/internal/service"
)

// adminCategoriesPerPage is the page size of the admin category list.
const adminCategoriesPerPage = 20

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer   *render.Renderer
	categories CategoryManager
	pageCache  PageCache
}

// NewAdmin creates a new Admin handler group with the given dependencies.
func NewAdmin(renderer *render.Renderer, categories CategoryManager, pageCache PageCache) *Admin {
	return &Admin{
		renderer:   renderer,
		categories: categories,
		pageCache:  pageCache,
	}
}

// --- Categories ---

// CategoriesList renders one page of the category list.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	pager, err := a.categories.Pagination(r.Context(), pageParam(r), adminCategoriesPerPage)
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.Page(w, r, http.StatusOK, "admin/categories", &render.PageData{
		Title:   "Categories",
		Section: "categories",
		Data:    map[string]any{"Pager": pager},
	})
}

// CategoryNew renders an empty category form.
func (a *Admin) CategoryNew(w http.ResponseWriter, r *http.Request) {
	a.categoryForm(w, r, http.StatusOK, "New category", "/admin/categories",
		filter.CategoryInput{Type: string(models.CategoryTypePost)}, nil)
}

// CategoryCreate validates the form and creates a category.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in := categoryInput(r)

	created, err := a.categories.Create(r.Context(), in)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			a.categoryForm(w, r, http.StatusUnprocessableEntity, "New category", "/admin/categories", in, verr.Messages)
			return
		}
		slog.Error("create category failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.invalidatePublicCache(r, created.ID, "create")
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// CategoryEdit renders the form for an existing category.
func (a *Admin) CategoryEdit(w http.ResponseWriter, r *http.Request) {
	id, err := categoryIDParam(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	c, err := a.categories.Category(r.Context(), id)
	if err != nil {
		slog.Error("find category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if c == nil {
		http.NotFound(w, r)
		return
	}

	a.categoryForm(w, r, http.StatusOK, "Edit "+c.Name, editAction(id), filter.CategoryInput{
		Name:        c.Name,
		Slug:        c.Slug,
		Type:        string(c.Type),
		Description: c.Description,
	}, nil)
}

// CategoryUpdate validates the form and updates the category.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := categoryIDParam(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	in := categoryInput(r)

	if _, err := a.categories.Update(r.Context(), in, id); err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrNotFound):
			http.NotFound(w, r)
		case errors.As(err, &verr):
			a.categoryForm(w, r, http.StatusUnprocessableEntity, "Edit category", editAction(id), in, verr.Messages)
		default:
			slog.Error("update category failed", "error", err, "id", id)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	a.invalidatePublicCache(r, id, "update")
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// CategoryDelete removes a category.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := categoryIDParam(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	removed, err := a.categories.Delete(r.Context(), id)
	if err != nil {
		slog.Error("delete category failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.NotFound(w, r)
		return
	}

	a.invalidatePublicCache(r, id, "delete")
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

func (a *Admin) categoryForm(w http.ResponseWriter, r *http.Request, status int, title, action string, in filter.CategoryInput, msgs filter.Messages) {
	a.renderer.Page(w, r, status, "admin/category_form", &render.PageData{
		Title:   title,
		Section: "categories",
		Data: map[string]any{
			"Action": action,
			"Input":  in,
			"Errors": msgs,
		},
	})
}

func editAction(id models.CategoryID) string {
	return "/admin/categories/" + id.String()
}

// invalidatePublicCache clears cached public pages after a category change.
// Any page may list the category, so the whole cache goes.
func (a *Admin) invalidatePublicCache(r *http.Request, id models.CategoryID, action string) {
	a.pageCache.InvalidateAll(r.Context())
	slog.Debug("public cache invalidated", "category_id", id, "action", action)
}

// --- Users ---

// UsersList renders the admin user roster.
func (a *Admin) UsersList(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, http.StatusOK, "admin/users", &render.PageData{
		Title:   "Users",
		Section: "users",
	})
}
