// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package paginate provides a read-only page view over an ordered query.
// The query is expressed as an Adapter that can count its rows and return a
// slice of them by offset and limit.
package paginate

import (
	"context"
	"fmt"
)

// DefaultPerPage is used when a caller passes a non-positive page size.
const DefaultPerPage = 10

// Adapter is an ordered, countable query.
type Adapter[T any] interface {
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, offset, limit int) ([]T, error)
}

// AdapterFuncs adapts a pair of functions to the Adapter interface.
type AdapterFuncs[T any] struct {
	CountFunc func(ctx context.Context) (int, error)
	SliceFunc func(ctx context.Context, offset, limit int) ([]T, error)
}

func (a AdapterFuncs[T]) Count(ctx context.Context) (int, error) { return a.CountFunc(ctx) }

func (a AdapterFuncs[T]) Slice(ctx context.Context, offset, limit int) ([]T, error) {
	return a.SliceFunc(ctx, offset, limit)
}

// Paginator is one page of results plus the totals needed to render
// page navigation.
type Paginator[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int
}

// New runs the adapter for the requested page. A page below 1 is treated as
// the first page. A page past the end produces an empty Items slice; it is
// not an error.
func New[T any](ctx context.Context, a Adapter[T], page, perPage int) (*Paginator[T], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	total, err := a.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("paginate count: %w", err)
	}

	p := &Paginator[T]{Page: page, PerPage: perPage, Total: total, Items: []T{}}

	offset := (page - 1) * perPage
	if offset >= total {
		return p, nil
	}

	items, err := a.Slice(ctx, offset, perPage)
	if err != nil {
		return nil, fmt.Errorf("paginate slice: %w", err)
	}
	if items != nil {
		p.Items = items
	}
	return p, nil
}

// PageCount returns the number of pages; zero when there are no rows.
func (p *Paginator[T]) PageCount() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// HasPrev returns true if there is a page before the current one.
func (p *Paginator[T]) HasPrev() bool {
	return p.Page > 1
}

// HasNext returns true if there is a page after the current one.
func (p *Paginator[T]) HasNext() bool {
	return p.Page < p.PageCount()
}

// PrevPage returns the previous page number, never below 1.
func (p *Paginator[T]) PrevPage() int {
	if p.Page <= 1 {
		return 1
	}
	return p.Page - 1
}

// NextPage returns the next page number.
func (p *Paginator[T]) NextPage() int {
	return p.Page + 1
}

// Pages returns 1..PageCount for rendering page links.
func (p *Paginator[T]) Pages() []int {
	n := p.PageCount()
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
