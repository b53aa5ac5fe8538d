package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"pressroom/internal/models"
)

// Development credentials created by Seed.
const (
	SeedAdminEmail    = "admin@pressroom.local"
	SeedAdminPassword = "admin"
)

// seedCategory is the web category Seed creates along with its first post.
var seedCategory = struct {
	name, slug, description string
	postTitle, postSlug     string
}{
	name:        "News",
	slug:        "news",
	description: "Announcements and *updates* from the newsroom.",
	postTitle:   "Welcome to PressRoom",
	postSlug:    "welcome-to-pressroom",
}

// Seed creates a development admin, a web category and one published post
// in a single transaction. A database that already has users is left alone.
func Seed(ctx context.Context, db *sql.DB) error {
	var seeded bool
	if err := db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users)`).Scan(&seeded); err != nil {
		return fmt.Errorf("seed: check users: %w", err)
	}
	if seeded {
		slog.Debug("seed skipped, users exist")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}
	catID, err := models.NewCategoryID()
	if err != nil {
		return fmt.Errorf("seed: category id: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback()

	steps := []struct {
		name  string
		query string
		args  []any
	}{
		{
			name:  "admin",
			query: `INSERT INTO users (email, password_hash, display_name) VALUES ($1, $2, 'Admin')`,
			args:  []any{SeedAdminEmail, string(hash)},
		},
		{
			name: "category",
			query: `INSERT INTO categories (id, id_compact, name, slug, type, description)
				VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (slug) DO NOTHING`,
			args: []any{catID.String(), catID.Compact(), seedCategory.name, seedCategory.slug,
				string(models.CategoryTypePost), seedCategory.description},
		},
		{
			name: "post",
			query: `INSERT INTO posts (category_id, title, slug, excerpt, body, status, published_at)
				SELECT id, $1, $2, 'Your site is up and running.', 'Edit categories from the admin panel.', 'published', NOW()
				FROM categories WHERE slug = $3
				ON CONFLICT (slug) DO NOTHING`,
			args: []any{seedCategory.postTitle, seedCategory.postSlug, seedCategory.slug},
		},
	}
	for _, st := range steps {
		if _, err := tx.ExecContext(ctx, st.query, st.args...); err != nil {
			return fmt.Errorf("seed: insert %s: %w", st.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	slog.Info("development data seeded", "admin", SeedAdminEmail)
	return nil
}
