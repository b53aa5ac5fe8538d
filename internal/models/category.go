// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CategoryType controls where a category is shown. Only post categories
// are visible on the public site.
type CategoryType string

const (
	CategoryTypePost CategoryType = "post"
	CategoryTypePage CategoryType = "page"
)

// CategoryID identifies a category. It is generated once at creation and
// never changes. The same value is persisted in two forms: the canonical
// text UUID and a compact 16-byte binary.
type CategoryID uuid.UUID

// NewCategoryID returns a fresh time-ordered identifier (UUIDv7).
func NewCategoryID() (CategoryID, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return CategoryID{}, fmt.Errorf("new category id: %w", err)
	}
	return CategoryID(u), nil
}

// ParseCategoryID parses the textual form of a category ID.
func ParseCategoryID(s string) (CategoryID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return CategoryID{}, fmt.Errorf("parse category id: %w", err)
	}
	return CategoryID(u), nil
}

// CategoryIDFromCompact rebuilds an ID from its 16-byte binary form.
func CategoryIDFromCompact(b []byte) (CategoryID, error) {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return CategoryID{}, fmt.Errorf("category id from compact: %w", err)
	}
	return CategoryID(u), nil
}

// String returns the canonical textual form.
func (id CategoryID) String() string {
	return uuid.UUID(id).String()
}

// Compact returns the binary form. The returned slice is a copy.
func (id CategoryID) Compact() []byte {
	b := make([]byte, len(id))
	copy(b, id[:])
	return b
}

// IsZero reports whether the ID was never assigned.
func (id CategoryID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler.
func (id CategoryID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *CategoryID) UnmarshalText(text []byte) error {
	parsed, err := ParseCategoryID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value implements driver.Valuer using the textual form.
func (id CategoryID) Value() (driver.Value, error) {
	return id.String(), nil
}

// Scan implements sql.Scanner.
func (id *CategoryID) Scan(src any) error {
	return (*uuid.UUID)(id).Scan(src)
}

// Category groups posts (or pages) under a unique URL slug.
type Category struct {
	ID          CategoryID   `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Type        CategoryType `json:"type"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// IsWeb reports whether the category is listed on the public site.
func (c *Category) IsWeb() bool {
	return c.Type == CategoryTypePost
}

// CategoryWithPosts is a category plus a bounded list of its latest posts.
// It is assembled per request and never stored.
type CategoryWithPosts struct {
	Category
	Posts []Post `json:"posts"`
}
