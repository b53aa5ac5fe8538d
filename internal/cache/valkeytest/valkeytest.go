// Package valkeytest hands integration tests a Valkey client on a scratch
// database. Tests are skipped when Valkey is not reachable.
package valkeytest

import (
	"context"
	"net"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

// DB is the logical database reserved for tests.
const DB = 15

// Addr is the test server address from VALKEY_HOST and VALKEY_PORT.
func Addr() string {
	host, port := os.Getenv("VALKEY_HOST"), os.Getenv("VALKEY_PORT")
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}
	return net.JoinHostPort(host, port)
}

// Client returns a client on DB, or skips the test. Keys under prefix are
// removed before and after the test; packages use distinct prefixes so
// they can run concurrently.
func Client(t testing.TB, prefix string) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     Addr(),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       DB,
	})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}
	purge(ctx, client, prefix)
	t.Cleanup(func() {
		purge(ctx, client, prefix)
		client.Close()
	})
	return client
}

func purge(ctx context.Context, client *redis.Client, prefix string) {
	iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

// Offline returns a client for a closed port. Every command fails fast.
func Offline() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
}
