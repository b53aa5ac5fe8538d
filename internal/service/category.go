// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service holds the application logic between handlers and stores:
// input validation, identifier generation, and read-model composition.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pressroom/internal/filter"
	"pressroom/internal/models"
	"pressroom/internal/paginate"
	"pressroom/internal/store"
)

const (
	// WebPostsLimit is the number of latest posts attached to each category
	// on the public category overview.
	WebPostsLimit = 4

	// CategoryPostsPerPage is the page size of a category's post listing.
	CategoryPostsPerPage = 12
)

// CategoryMapper is the persistence the category service needs.
// *store.CategoryStore satisfies it.
type CategoryMapper interface {
	FindByID(ctx context.Context, id models.CategoryID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Count(ctx context.Context) (int, error)
	ListPage(ctx context.Context, offset, limit int) ([]models.Category, error)
	ListWeb(ctx context.Context, limit int, order store.WebOrder) ([]models.Category, error)
	Insert(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, id models.CategoryID, c *models.Category) error
	Delete(ctx context.Context, id models.CategoryID) (bool, error)
	CountPosts(ctx context.Context, categoryID *models.CategoryID) (int, error)
	ListPosts(ctx context.Context, categoryID *models.CategoryID, offset, limit int) ([]models.Post, error)
}

// CategoryValidator filters raw category input.
// *filter.CategoryFilter satisfies it.
type CategoryValidator interface {
	Filter(in filter.CategoryInput) (filter.CategoryValues, filter.Messages)
}

// CategoryService validates and persists categories and assembles the
// category read models used by the public site.
type CategoryService struct {
	mapper CategoryMapper
	filter CategoryValidator
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(mapper CategoryMapper, filter CategoryValidator) *CategoryService {
	return &CategoryService{mapper: mapper, filter: filter}
}

// Pagination returns one page of the full category listing.
func (s *CategoryService) Pagination(ctx context.Context, page, limit int) (*paginate.Paginator[models.Category], error) {
	adapter := paginate.AdapterFuncs[models.Category]{
		CountFunc: s.mapper.Count,
		SliceFunc: s.mapper.ListPage,
	}
	return paginate.New[models.Category](ctx, adapter, page, limit)
}

// Category returns the category with the given ID, or nil if there is none.
func (s *CategoryService) Category(ctx context.Context, id models.CategoryID) (*models.Category, error) {
	return s.mapper.FindByID(ctx, id)
}

// CategoryBySlug returns the category with the given slug, or nil if there is none.
func (s *CategoryService) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.mapper.FindBySlug(ctx, slug)
}

// Create validates the input and inserts a new category with a freshly
// generated ID. Nothing is written when validation fails.
func (s *CategoryService) Create(ctx context.Context, in filter.CategoryInput) (*models.Category, error) {
	values, msgs := s.filter.Filter(in)
	if msgs != nil {
		return nil, &ValidationError{Messages: msgs}
	}
	if err := s.checkSlugFree(ctx, values.Slug, nil); err != nil {
		return nil, err
	}

	id, err := models.NewCategoryID()
	if err != nil {
		return nil, err
	}

	created, err := s.mapper.Insert(ctx, &models.Category{
		ID:          id,
		Name:        values.Name,
		Slug:        values.Slug,
		Type:        values.Type,
		Description: values.Description,
	})
	if errors.Is(err, store.ErrSlugTaken) {
		return nil, slugTakenError()
	}
	if err != nil {
		return nil, err
	}

	slog.Info("category created", "id", created.ID, "slug", created.Slug)
	return created, nil
}

// Update replaces the editable fields of an existing category. The
// existence check runs before validation; the ID is never changed.
func (s *CategoryService) Update(ctx context.Context, in filter.CategoryInput, id models.CategoryID) (*models.Category, error) {
	existing, err := s.mapper.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &NotFoundError{Entity: "category", ID: id.String()}
	}

	values, msgs := s.filter.Filter(in)
	if msgs != nil {
		return nil, &ValidationError{Messages: msgs}
	}
	if err := s.checkSlugFree(ctx, values.Slug, &id); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = values.Name
	updated.Slug = values.Slug
	updated.Type = values.Type
	updated.Description = values.Description

	switch err := s.mapper.Update(ctx, id, &updated); {
	case errors.Is(err, store.ErrSlugTaken):
		return nil, slugTakenError()
	case errors.Is(err, store.ErrCategoryGone):
		return nil, &NotFoundError{Entity: "category", ID: id.String()}
	case err != nil:
		return nil, err
	}

	slog.Info("category updated", "id", id, "slug", updated.Slug)
	return &updated, nil
}

// checkSlugFree reports a validation error when another category already
// uses slug. self is the category being updated, if any.
func (s *CategoryService) checkSlugFree(ctx context.Context, slug string, self *models.CategoryID) error {
	other, err := s.mapper.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if other == nil || (self != nil && other.ID == *self) {
		return nil
	}
	return slugTakenError()
}

// slugTakenError is the validation error for a slug another category
// holds. The unique constraint produces the same error when two writes
// race past checkSlugFree.
func slugTakenError() *ValidationError {
	msgs := filter.Messages{}
	msgs.Add("slug", "A category with this slug already exists.")
	return &ValidationError{Messages: msgs}
}

// Delete removes a category and reports whether one was removed.
func (s *CategoryService) Delete(ctx context.Context, id models.CategoryID) (bool, error) {
	removed, err := s.mapper.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		slog.Info("category deleted", "id", id)
	}
	return removed, nil
}

// All returns every category in storage order, typically for a select box.
func (s *CategoryService) All(ctx context.Context) ([]models.Category, error) {
	return s.mapper.List(ctx)
}

// WebCategories returns the public categories, each with its latest posts.
func (s *CategoryService) WebCategories(ctx context.Context) ([]models.CategoryWithPosts, error) {
	categories, err := s.mapper.ListWeb(ctx, 0, store.WebOrderCreated)
	if err != nil {
		return nil, err
	}

	result := make([]models.CategoryWithPosts, 0, len(categories))
	for _, c := range categories {
		id := c.ID
		posts, err := s.mapper.ListPosts(ctx, &id, 0, WebPostsLimit)
		if err != nil {
			return nil, fmt.Errorf("posts for category %s: %w", c.Slug, err)
		}
		result = append(result, models.CategoryWithPosts{Category: c, Posts: posts})
	}
	return result, nil
}

// AllWeb returns the public categories sorted by name, without posts.
func (s *CategoryService) AllWeb(ctx context.Context) ([]models.Category, error) {
	return s.mapper.ListWeb(ctx, 0, store.WebOrderName)
}

// CategoryPostsPagination returns a page of the category's published posts.
// A nil category, or one without an ID, lists posts from every category.
func (s *CategoryService) CategoryPostsPagination(ctx context.Context, category *models.Category, page int) (*paginate.Paginator[models.Post], error) {
	var categoryID *models.CategoryID
	if category != nil && !category.ID.IsZero() {
		id := category.ID
		categoryID = &id
	} else {
		slog.Debug("category posts requested without a category, listing all posts")
	}

	adapter := paginate.AdapterFuncs[models.Post]{
		CountFunc: func(ctx context.Context) (int, error) {
			return s.mapper.CountPosts(ctx, categoryID)
		},
		SliceFunc: func(ctx context.Context, offset, limit int) ([]models.Post, error) {
			return s.mapper.ListPosts(ctx, categoryID, offset, limit)
		},
	}
	return paginate.New[models.Post](ctx, adapter, page, CategoryPostsPerPage)
}
