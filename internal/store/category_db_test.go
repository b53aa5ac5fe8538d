// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"pressroom/internal/models"
)

// TestCategoryStoreLifecycle runs insert, lookup, update, posts, and delete
// against a real PostgreSQL instance.
func TestCategoryStoreLifecycle(t *testing.T) {
	db := integrationDB(t)
	s := NewCategoryStore(db)
	ctx := context.Background()

	// Posts first: cleanups run last-registered first.
	purgeOnCleanup(t, db, "categories", "slug", "store-test-news", "store-test-world")
	purgeOnCleanup(t, db, "posts", "slug", "store-test-post", "store-test-undated")

	id, _ := models.NewCategoryID()
	created, err := s.Insert(ctx, &models.Category{
		ID: id, Name: "Store Test News", Slug: "store-test-news", Type: models.CategoryTypePost,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if created.ID != id {
		t.Errorf("ID = %s, want %s", created.ID, id)
	}

	// The compact column must hold the same identifier.
	var compact []byte
	if err := db.QueryRow(`SELECT id_compact FROM categories WHERE id = $1`, id).Scan(&compact); err != nil {
		t.Fatalf("read id_compact: %v", err)
	}
	back, err := models.CategoryIDFromCompact(compact)
	if err != nil || back != id {
		t.Errorf("id_compact = %x, want %x", compact, id.Compact())
	}

	bySlug, err := s.FindBySlug(ctx, "store-test-news")
	if err != nil || bySlug == nil || bySlug.ID != id {
		t.Fatalf("FindBySlug: got %+v, err %v", bySlug, err)
	}

	if err := s.Update(ctx, id, &models.Category{
		Name: "Store Test World", Slug: "store-test-world", Type: models.CategoryTypePost,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, _ := s.FindByID(ctx, id)
	if updated == nil || updated.Slug != "store-test-world" {
		t.Fatalf("after Update: %+v", updated)
	}

	if _, err := db.Exec(`
		INSERT INTO posts (category_id, title, slug, status, published_at)
		VALUES ($1, 'Store Test Post', 'store-test-post', 'published', NOW())
	`, id); err != nil {
		t.Fatalf("insert post: %v", err)
	}
	if _, err := db.Exec(`
		INSERT INTO posts (category_id, title, slug, status)
		VALUES ($1, 'Undated', 'store-test-undated', 'published')
	`, id); err == nil {
		t.Error("expected a published post without published_at to be rejected")
	}

	n, err := s.CountPosts(ctx, &id)
	if err != nil || n != 1 {
		t.Errorf("CountPosts = %d, %v; want 1", n, err)
	}
	posts, err := s.ListPosts(ctx, &id, 0, 4)
	if err != nil || len(posts) != 1 || posts[0].CategoryID != id {
		t.Errorf("ListPosts = %+v, %v", posts, err)
	}

	removed, err := s.Delete(ctx, id)
	if err != nil || !removed {
		t.Fatalf("Delete = %v, %v; want true", removed, err)
	}
	removed, err = s.Delete(ctx, id)
	if err != nil || removed {
		t.Errorf("second Delete = %v, %v; want false", removed, err)
	}
	gone, _ := s.FindByID(ctx, id)
	if gone != nil {
		t.Errorf("expected nil after delete, got %+v", gone)
	}
}
