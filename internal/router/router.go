// Package router sets up all HTTP routes and middleware chains for
// PressRoom. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pressroom/internal/handlers"
	"pressroom/internal/middleware"
)

// Options carries the router's environment-dependent settings.
type Options struct {
	// SecureCookies marks cookies Secure and enables HSTS.
	SecureCookies bool
	// LoginLimiter throttles login attempts. Nil disables throttling.
	LoginLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessions middleware.SessionReader, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request. Sessions load before
	// the logger so log lines carry the signed-in user.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders(opts.SecureCookies))
	r.Use(middleware.LoadSession(sessions))
	r.Use(middleware.Logger)

	// Health check: no auth, no CSRF.
	r.Get("/health", healthHandler)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF(opts.SecureCookies))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RedirectIfAuthenticated)
			r.Get("/login", auth.LoginPage)
			r.With(throttle(opts.LoginLimiter)).Post("/login", auth.LoginSubmit)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
			})
			r.Post("/logout", auth.Logout)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.CategoriesList)
				r.Get("/new", admin.CategoryNew)
				r.Post("/", admin.CategoryCreate)
				r.Get("/{id}/edit", admin.CategoryEdit)
				r.Post("/{id}", admin.CategoryUpdate)
				r.Post("/{id}/delete", admin.CategoryDelete)
			})

			r.Get("/users", admin.UsersList)
		})
	})

	r.Get("/", public.Homepage)
	r.Get("/category/{slug}", public.Category)

	return r
}

// throttle returns the limiter's middleware, or a pass-through when there
// is no limiter.
func throttle(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Middleware
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
