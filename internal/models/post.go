// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is the read-side summary of a published article attached to a
// category. Posts are managed elsewhere; this package only lists them.
type Post struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  CategoryID `json:"category_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	PublishedAt time.Time  `json:"published_at"`
}
