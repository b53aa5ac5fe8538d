// Package view holds the presentation helpers templates call into: the
// signed-in admin user, category lists for select boxes, and the public
// category overview. Work done for one render is cached on a Frame.
package view

import "pressroom/internal/models"

// Frame is the per-render cache. The renderer creates one for every page it
// renders and drops it afterwards, so nothing cached here outlives a render.
// A Frame is used by a single goroutine.
type Frame struct {
	web    []models.CategoryWithPosts
	webErr error
	webSet bool

	nav    []models.Category
	navErr error
	navSet bool
}

// NewFrame returns an empty Frame.
func NewFrame() *Frame {
	return &Frame{}
}
