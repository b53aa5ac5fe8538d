// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPageTTL is how long a rendered page stays cached.
const DefaultPageTTL = 5 * time.Minute

const (
	pagePrefix    = "page:"
	generationKey = pagePrefix + "gen"
)

// PageCache keeps rendered public pages in Valkey. Entry keys embed a
// generation number; InvalidateAll bumps it so every older entry becomes
// unreachable and ages out on its TTL. Valkey failures count as misses.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a PageCache. ttl <= 0 selects DefaultPageTTL.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get returns the current generation's HTML for key.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	k, err := pc.entryKey(ctx, key)
	if err != nil {
		slog.Warn("page cache unavailable", "key", key, "error", err)
		return nil, false
	}
	html, err := pc.client.Get(ctx, k).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, false
	case err != nil:
		slog.Warn("page cache read failed", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return html, true
}

// Set stores html for key in the current generation.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	k, err := pc.entryKey(ctx, key)
	if err == nil {
		err = pc.client.Set(ctx, k, html, pc.ttl).Err()
	}
	if err != nil {
		slog.Warn("page cache write failed", "key", key, "error", err)
	}
}

// InvalidateAll retires every cached page by starting a new generation.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	gen, err := pc.client.Incr(ctx, generationKey).Result()
	if err != nil {
		slog.Warn("page cache invalidate failed", "error", err)
		return
	}
	slog.Debug("page cache invalidated", "generation", gen)
}

// generation returns the current generation, 0 before the first
// invalidation.
func (pc *PageCache) generation(ctx context.Context) (int64, error) {
	gen, err := pc.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (pc *PageCache) entryKey(ctx context.Context, key string) (string, error) {
	gen, err := pc.generation(ctx)
	if err != nil {
		return "", err
	}
	return pagePrefix + strconv.FormatInt(gen, 10) + ":" + key, nil
}

// HomepageKey is the cache key of the public homepage.
func HomepageKey() string { return "home" }

// CategoryKey is the cache key of one page of a category listing.
func CategoryKey(slug string, page int) string {
	return "category:" + slug + ":" + strconv.Itoa(page)
}
