// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"pressroom/internal/identity"
	"pressroom/internal/session"
)

// SessionReader loads the session attached to a request.
// *session.Store satisfies it.
type SessionReader interface {
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
}

// LoadSession resolves the session cookie and, when it names a live
// session, stores the signed-in identity in the request context.
// Authentication is not enforced here.
func LoadSession(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := sessions.Get(r.Context(), r)
			if err != nil {
				slog.Warn("session lookup failed", "error", err, "path", r.URL.Path)
				next.ServeHTTP(w, r)
				return
			}

			if data != nil {
				r = r.WithContext(identity.WithIdentity(r.Context(), data.Identity()))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth redirects anonymous requests to the login page.
// Must be applied after LoadSession in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identity.FromContext(r.Context()); !ok {
			redirect(w, r, "/admin/login")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RedirectIfAuthenticated sends already signed-in users away from the
// login page to the admin area.
func RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identity.FromContext(r.Context()); ok {
			redirect(w, r, "/admin/categories")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// redirect sends the browser to url. HTMX requests get an HX-Redirect
// header instead, so the whole page navigates rather than the swapped
// fragment.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
