// Command pressroom serves the PressRoom admin and public site.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pressroom/internal/cache"
	"pressroom/internal/config"
	"pressroom/internal/database"
	"pressroom/internal/filter"
	"pressroom/internal/handlers"
	"pressroom/internal/middleware"
	"pressroom/internal/render"
	"pressroom/internal/router"
	"pressroom/internal/service"
	"pressroom/internal/session"
	"pressroom/internal/store"
	"pressroom/internal/view"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("pressroom stopped", "error", err)
		os.Exit(1)
	}
}

// run wires the application and serves until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	slog.Info("starting pressroom", "env", cfg.Env, "addr", cfg.Addr())

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	version, err := database.Migrate(ctx, db)
	if err != nil {
		return err
	}
	slog.Info("database schema ready", "version", version)

	if cfg.IsDev() {
		if err := database.Seed(ctx, db); err != nil {
			return err
		}
	}

	valkey, err := cache.ConnectValkey(ctx, cfg.ValkeyAddr(), cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		return err
	}
	defer valkey.Close()

	categories := service.NewCategoryService(store.NewCategoryStore(db), filter.NewCategoryFilter())
	users := service.NewAdminUserService(store.NewUserStore(db))

	renderer, err := render.New(view.NewAdminUserHelper(users), view.NewCategoryHelper(categories))
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	secure := !cfg.IsDev()
	sessions := session.NewStore(valkey, secure)
	pages := cache.NewPageCache(valkey, cfg.PageCacheTTL)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.New(sessions,
			handlers.NewAdmin(renderer, categories, pages),
			handlers.NewAuth(renderer, sessions, users),
			handlers.NewPublic(renderer, categories, pages),
			router.Options{
				SecureCookies: secure,
				LoginLimiter:  middleware.NewRateLimiter(valkey, "ratelimit:login:", cfg.LoginRateLimit, cfg.LoginRateWindow),
			},
		),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped gracefully")
	return nil
}

// newLogger logs text at debug level in development and JSON otherwise.
func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
