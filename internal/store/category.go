// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pressroom/internal/models"
)

// WebOrder selects the ordering of web-visible category listings.
type WebOrder int

const (
	// WebOrderCreated lists categories oldest first.
	WebOrderCreated WebOrder = iota
	// WebOrderName lists categories by name, ascending.
	WebOrderName
)

// CategoryStore manages categories in the database and reads the posts
// attached to them.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, type, description, created_at, updated_at`

const postColumns = `id, category_id, title, slug, excerpt, published_at`

// scanCategory scans a row into a Category struct.
func scanCategory(row scanner) (*models.Category, error) {
	var c models.Category
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Type, &c.Description,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// queryCategories runs a category query and collects every row.
func (s *CategoryStore) queryCategories(ctx context.Context, op, query string, args ...any) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// findOne runs a single-row category query. Returns nil if no row matched.
func (s *CategoryStore) findOne(ctx context.Context, op, query string, args ...any) (*models.Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id models.CategoryID) (*models.Category, error) {
	return s.findOne(ctx, "find category by id",
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

// FindBySlug retrieves a category by its URL slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.findOne(ctx, "find category by slug",
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
}

// List returns every category in insertion order. IDs are time ordered, so
// the compact form sorts the same way the rows were created.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	return s.queryCategories(ctx, "list categories",
		`SELECT `+categoryColumns+` FROM categories ORDER BY id_compact`)
}

// Count returns the total number of categories.
func (s *CategoryStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

// ListPage returns one page of the admin listing, ordered by name.
func (s *CategoryStore) ListPage(ctx context.Context, offset, limit int) ([]models.Category, error) {
	return s.queryCategories(ctx, "list categories page", `
		SELECT `+categoryColumns+`
		FROM categories
		ORDER BY name, id_compact
		LIMIT $1 OFFSET $2
	`, limit, offset)
}

// ListWeb returns the categories shown on the public site. A limit of zero
// means no limit.
func (s *CategoryStore) ListWeb(ctx context.Context, limit int, order WebOrder) ([]models.Category, error) {
	orderBy := "id_compact"
	if order == WebOrderName {
		orderBy = "name ASC, id_compact"
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE type = $1 ORDER BY ` + orderBy
	args := []any{models.CategoryTypePost}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	return s.queryCategories(ctx, "list web categories", query, args...)
}

// Insert stores a new category. Both ID views are written from c.ID.
func (s *CategoryStore) Insert(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, id_compact, name, slug, type, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+categoryColumns,
		c.ID, c.ID.Compact(), c.Name, c.Slug, c.Type, c.Description,
	)
	result, err := scanCategory(row)
	if isSlugConflict(err) {
		return nil, fmt.Errorf("insert category %q: %w", c.Slug, ErrSlugTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return result, nil
}

// Update writes the mutable fields of the category with the given ID.
// The ID columns are never touched. It returns ErrCategoryGone when no row
// has the ID and ErrSlugTaken when the new slug belongs to another row.
func (s *CategoryStore) Update(ctx context.Context, id models.CategoryID, c *models.Category) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET
			name = $1, slug = $2, type = $3, description = $4, updated_at = NOW()
		WHERE id = $5
	`, c.Name, c.Slug, c.Type, c.Description, id)
	if isSlugConflict(err) {
		return fmt.Errorf("update category %q: %w", c.Slug, ErrSlugTaken)
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update category rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update category %s: %w", id, ErrCategoryGone)
	}
	return nil
}

// Delete removes a category by ID and reports whether a row was removed.
// Posts keep existing with no category (ON DELETE SET NULL).
func (s *CategoryStore) Delete(ctx context.Context, id models.CategoryID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete category rows affected: %w", err)
	}
	return n > 0, nil
}

// postsFilter builds the WHERE clause for published posts, optionally
// restricted to one category. Returns the clause and its arguments. Rows
// without a publication date are skipped.
func postsFilter(categoryID *models.CategoryID) (string, []any) {
	where := `WHERE status = 'published' AND published_at IS NOT NULL`
	if categoryID == nil {
		return where, nil
	}
	return where + ` AND category_id = $1`, []any{*categoryID}
}

// CountPosts returns the number of published posts in a category, or across
// all categories when categoryID is nil.
func (s *CategoryStore) CountPosts(ctx context.Context, categoryID *models.CategoryID) (int, error) {
	where, args := postsFilter(categoryID)
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count category posts: %w", err)
	}
	return count, nil
}

// ListPosts returns published posts newest first, optionally restricted to
// one category.
func (s *CategoryStore) ListPosts(ctx context.Context, categoryID *models.CategoryID, offset, limit int) ([]models.Post, error) {
	where, args := postsFilter(categoryID)
	n := len(args)
	query := fmt.Sprintf(`
		SELECT %s
		FROM posts
		%s
		ORDER BY published_at DESC, id
		LIMIT $%d OFFSET $%d
	`, postColumns, where, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list category posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.Title, &p.Slug, &p.Excerpt, &p.PublishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
