package handlers

import (
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"pressroom/internal/filter"
	"pressroom/internal/models"
)

// Validation limits for login fields.
const (
	maxEmailLen    = 254
	maxPasswordLen = 72 // bcrypt ignores anything longer
)

// validateLogin checks login form inputs and returns the first error found.
func validateLogin(email, password string) string {
	if email == "" || password == "" {
		return "Email and password are required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return "Email is too long (max 254 characters)."
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "Enter a valid email address."
	}
	if len(password) > maxPasswordLen {
		return "Password is too long (max 72 bytes)."
	}
	return ""
}

// pageParam reads the 1-based ?page= query parameter. Missing or malformed
// values yield 1; the paginator clamps the rest.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// categoryIDParam parses the {id} URL parameter.
func categoryIDParam(r *http.Request) (models.CategoryID, error) {
	return models.ParseCategoryID(chi.URLParam(r, "id"))
}

// categoryInput reads the category form fields. The form must already be
// parsed.
func categoryInput(r *http.Request) filter.CategoryInput {
	return filter.CategoryInput{
		Name:        r.PostForm.Get("name"),
		Slug:        r.PostForm.Get("slug"),
		Type:        r.PostForm.Get("type"),
		Description: strings.ReplaceAll(r.PostForm.Get("description"), "\r\n", "\n"),
	}
}
