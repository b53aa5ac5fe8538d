package view

import (
	"context"

	"pressroom/internal/models"
)

// CategorySource is the part of the category service the helper reads.
// *service.CategoryService satisfies it.
type CategorySource interface {
	All(ctx context.Context) ([]models.Category, error)
	WebCategories(ctx context.Context) ([]models.CategoryWithPosts, error)
	AllWeb(ctx context.Context) ([]models.Category, error)
}

// CategoryHelper exposes category lists to templates.
type CategoryHelper struct {
	categories CategorySource
}

// NewCategoryHelper creates a CategoryHelper.
func NewCategoryHelper(categories CategorySource) *CategoryHelper {
	return &CategoryHelper{categories: categories}
}

// ForSelect returns every category, for populating a select box.
func (h *CategoryHelper) ForSelect(ctx context.Context) ([]models.Category, error) {
	return h.categories.All(ctx)
}

// ForNav returns the public categories by name, without posts. Like
// ForWeb it loads at most once per frame.
func (h *CategoryHelper) ForNav(ctx context.Context, frame *Frame) ([]models.Category, error) {
	if frame == nil {
		return h.categories.AllWeb(ctx)
	}
	if !frame.navSet {
		frame.nav, frame.navErr = h.categories.AllWeb(ctx)
		frame.navSet = true
	}
	return frame.nav, frame.navErr
}

// ForWeb returns the public categories with their latest posts. The result,
// error included, is computed at most once per frame; a nil frame disables
// caching.
func (h *CategoryHelper) ForWeb(ctx context.Context, frame *Frame) ([]models.CategoryWithPosts, error) {
	if frame == nil {
		return h.categories.WebCategories(ctx)
	}
	if !frame.webSet {
		frame.web, frame.webErr = h.categories.WebCategories(ctx)
		frame.webSet = true
	}
	return frame.web, frame.webErr
}
