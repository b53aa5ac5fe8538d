// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pressroom/internal/filter"
	"pressroom/internal/identity"
	"pressroom/internal/models"
	"pressroom/internal/paginate"
	"pressroom/internal/render"
	"pressroom/internal/service"
	"pressroom/internal/session"
	"pressroom/internal/view"
)

// fakeCategories stands in for the category service. Behaviour is scripted
// through its fields; calls are recorded for assertions.
type fakeCategories struct {
	items []models.Category
	web   []models.CategoryWithPosts
	posts []models.Post

	createErr error
	updateErr error
	deleteOK  bool
	err       error

	created     []filter.CategoryInput
	updatedID   models.CategoryID
	deletedID   models.CategoryID
	postsFor    *models.Category
	postsPage   int
	paginations int
}

func (f *fakeCategories) Pagination(_ context.Context, page, limit int) (*paginate.Paginator[models.Category], error) {
	f.paginations++
	if f.err != nil {
		return nil, f.err
	}
	return &paginate.Paginator[models.Category]{Items: f.items, Page: page, PerPage: limit, Total: len(f.items)}, nil
}

func (f *fakeCategories) Category(_ context.Context, id models.CategoryID) (*models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.items {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) CategoryBySlug(_ context.Context, slug string) (*models.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.items {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategories) Create(_ context.Context, in filter.CategoryInput) (*models.Category, error) {
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	id, _ := models.NewCategoryID()
	return &models.Category{ID: id, Name: in.Name, Slug: in.Slug, Type: models.CategoryType(in.Type)}, nil
}

func (f *fakeCategories) Update(_ context.Context, in filter.CategoryInput, id models.CategoryID) (*models.Category, error) {
	f.updatedID = id
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Category{ID: id, Name: in.Name, Slug: in.Slug}, nil
}

func (f *fakeCategories) Delete(_ context.Context, id models.CategoryID) (bool, error) {
	f.deletedID = id
	return f.deleteOK, f.err
}

func (f *fakeCategories) All(context.Context) ([]models.Category, error) { return f.items, nil }

func (f *fakeCategories) WebCategories(context.Context) ([]models.CategoryWithPosts, error) {
	return f.web, nil
}

func (f *fakeCategories) AllWeb(context.Context) ([]models.Category, error) {
	out := make([]models.Category, 0, len(f.web))
	for _, c := range f.web {
		out = append(out, c.Category)
	}
	return out, nil
}

func (f *fakeCategories) CategoryPostsPagination(_ context.Context, c *models.Category, page int) (*paginate.Paginator[models.Post], error) {
	f.postsFor = c
	f.postsPage = page
	return &paginate.Paginator[models.Post]{Items: f.posts, Page: page, PerPage: service.CategoryPostsPerPage, Total: len(f.posts)}, nil
}

// memCache is an in-memory PageCache.
type memCache struct {
	pages       map[string][]byte
	invalidated int
}

func newMemCache() *memCache { return &memCache{pages: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	b, ok := c.pages[key]
	return b, ok
}

func (c *memCache) Set(_ context.Context, key string, html []byte) { c.pages[key] = html }

func (c *memCache) InvalidateAll(context.Context) {
	c.pages = map[string][]byte{}
	c.invalidated++
}

// fakeSessions records session lifecycle calls.
type fakeSessions struct {
	created   *session.Data
	destroyed bool
	err       error
}

func (s *fakeSessions) Create(_ context.Context, w http.ResponseWriter, data *session.Data) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.created = data
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: "test-session"})
	return "test-session", nil
}

func (s *fakeSessions) Destroy(context.Context, http.ResponseWriter, *http.Request) error {
	s.destroyed = true
	return s.err
}

type staticUsers []models.User

func (u staticUsers) All(context.Context) ([]models.User, error) { return u, nil }

func newTestRenderer(t *testing.T, cats *fakeCategories, users staticUsers) *render.Renderer {
	t.Helper()
	rn, err := render.New(view.NewAdminUserHelper(users), view.NewCategoryHelper(cats))
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return rn
}

func newCategory(t *testing.T, name, slugValue string, typ models.CategoryType) models.Category {
	t.Helper()
	id, err := models.NewCategoryID()
	if err != nil {
		t.Fatalf("NewCategoryID: %v", err)
	}
	now := time.Now()
	return models.Category{ID: id, Name: name, Slug: slugValue, Type: typ, CreatedAt: now, UpdatedAt: now}
}

// withURLParams attaches chi route parameters to the request.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func signedIn(r *http.Request) *http.Request {
	return r.WithContext(identity.WithIdentity(r.Context(), identity.Identity{
		UserID: uuid.New(), Email: "admin@pressroom.local", DisplayName: "Admin",
	}))
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
