// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pressroom/internal/cache"
	"pressroom/internal/render"
)

// Public groups the handlers of the public site.
type Public struct {
	renderer   *render.Renderer
	categories CategoryReader
	pageCache  PageCache
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, categories CategoryReader, pageCache PageCache) *Public {
	return &Public{
		renderer:   renderer,
		categories: categories,
		pageCache:  pageCache,
	}
}

// Homepage renders the public categories, each with its latest posts.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	key := cache.HomepageKey()

	if cached, ok := p.pageCache.Get(ctx, key); ok {
		render.WriteHTML(w, http.StatusOK, cached)
		return
	}

	body, err := p.renderer.Render(r, "public/home", &render.PageData{Title: "Home"})
	if err != nil {
		slog.Error("render homepage failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, key, body)
	render.WriteHTML(w, http.StatusOK, body)
}

// Category renders one page of a public category's posts.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")
	page := pageParam(r)
	key := cache.CategoryKey(slugParam, page)

	if cached, ok := p.pageCache.Get(ctx, key); ok {
		render.WriteHTML(w, http.StatusOK, cached)
		return
	}

	c, err := p.categories.CategoryBySlug(ctx, slugParam)
	if err != nil {
		slog.Error("find category by slug failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if c == nil || !c.IsWeb() {
		http.NotFound(w, r)
		return
	}

	pager, err := p.categories.CategoryPostsPagination(ctx, c, page)
	if err != nil {
		slog.Error("list category posts failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	body, err := p.renderer.Render(r, "public/category", &render.PageData{
		Title: c.Name,
		Data: map[string]any{
			"Category": c,
			"Pager":    pager,
			"Path":     "/category/" + c.Slug,
		},
	})
	if err != nil {
		slog.Error("render category failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, key, body)
	render.WriteHTML(w, http.StatusOK, body)
}
