// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for PressRoom.
// Handlers are grouped by concern (admin, public, auth) and receive
// their dependencies through the handler struct.
package handlers

import (
	"context"
	"net/http"

	"pressroom/internal/filter"
	"pressroom/internal/models"
	"pressroom/internal/paginate"
	"pressroom/internal/session"
)

// CategoryManager is the category service as the admin pages use it.
// *service.CategoryService satisfies it.
type CategoryManager interface {
	Pagination(ctx context.Context, page, limit int) (*paginate.Paginator[models.Category], error)
	Category(ctx context.Context, id models.CategoryID) (*models.Category, error)
	Create(ctx context.Context, in filter.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, in filter.CategoryInput, id models.CategoryID) (*models.Category, error)
	Delete(ctx context.Context, id models.CategoryID) (bool, error)
}

// CategoryReader is the category service as the public site uses it.
// *service.CategoryService satisfies it.
type CategoryReader interface {
	CategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CategoryPostsPagination(ctx context.Context, category *models.Category, page int) (*paginate.Paginator[models.Post], error)
}

// Authenticator checks admin credentials.
// *service.AdminUserService satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// SessionManager starts and ends admin sessions. *session.Store satisfies it.
type SessionManager interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// PageCache holds rendered public pages. *cache.PageCache satisfies it.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
	InvalidateAll(ctx context.Context)
}
