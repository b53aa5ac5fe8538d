package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"pressroom/internal/render"
	"pressroom/internal/service"
	"pressroom/internal/session"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	renderer *render.Renderer
	sessions SessionManager
	users    Authenticator
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions SessionManager, users Authenticator) *Auth {
	return &Auth{
		renderer: renderer,
		sessions: sessions,
		users:    users,
	}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	a.loginForm(w, r, http.StatusOK, "", "")
}

// LoginSubmit processes the login form and starts a session.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if msg := validateLogin(email, password); msg != "" {
		a.loginForm(w, r, http.StatusUnprocessableEntity, email, msg)
		return
	}

	user, err := a.users.Login(r.Context(), email, password)
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrPasswordMismatch):
		slog.Info("login rejected", "email", email)
		a.loginForm(w, r, http.StatusUnauthorized, email, "Invalid email or password.")
		return
	case err != nil:
		slog.Error("login lookup failed", "error", err)
		a.loginForm(w, r, http.StatusInternalServerError, email, "An unexpected error occurred.")
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}); err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("admin signed in", "user_id", user.ID)
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func (a *Auth) loginForm(w http.ResponseWriter, r *http.Request, status int, email, errMsg string) {
	a.renderer.Page(w, r, status, "admin/login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{"Email": email, "Error": errMsg},
	})
}
