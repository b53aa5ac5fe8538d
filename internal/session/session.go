// Package session keeps signed-in admin users in Valkey. The browser holds
// only an opaque random ID; the payload lives server side and expires after
// a period of inactivity.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pressroom/internal/identity"
)

const (
	// CookieName is the session cookie sent to the browser.
	CookieName = "pr_session"

	// IdleTimeout is how long an untouched session survives. Every
	// successful Get pushes the expiry out again.
	IdleTimeout = 2 * time.Hour

	keyPrefix = "session:"
	idBytes   = 32
)

// idLen is the encoded length of a session ID.
var idLen = base64.RawURLEncoding.EncodedLen(idBytes)

// Data is the stored session payload.
type Data struct {
	UserID      uuid.UUID `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"name"`
	CreatedAt   time.Time `json:"created"`
}

// Identity converts the payload into the request identity.
func (d *Data) Identity() identity.Identity {
	return identity.Identity{
		UserID:      d.UserID,
		Email:       d.Email,
		DisplayName: d.DisplayName,
	}
}

// Store reads and writes sessions.
type Store struct {
	client *redis.Client
	idle   time.Duration
	secure bool
}

// NewStore creates a Store. secure marks the cookie HTTPS-only.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{client: client, idle: IdleTimeout, secure: secure}
}

// Create saves data under a fresh ID and sets the session cookie.
// It returns the new ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := newID()
	if err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}

	data.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, key(id), payload, s.idle).Err(); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	http.SetCookie(w, s.cookie(id, 0))
	return id, nil
}

// Get loads the session named by the request cookie and extends its idle
// expiry. A missing cookie, a malformed ID, or an expired session all
// yield (nil, nil).
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	id, ok := cookieID(r)
	if !ok {
		return nil, nil
	}

	payload, err := s.client.GetEx(ctx, key(id), s.idle).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &data, nil
}

// Destroy deletes the session and expires the cookie. Requests without a
// session cookie are a no-op.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, ok := cookieID(r)
	if !ok {
		return nil
	}
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	http.SetCookie(w, s.cookie("", -1))
	return nil
}

// cookie builds the session cookie. maxAge 0 makes it a browser-session
// cookie; the server-side idle timeout bounds its useful life.
func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

func cookieID(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || len(c.Value) != idLen {
		return "", false
	}
	if _, err := base64.RawURLEncoding.DecodeString(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

func key(id string) string { return keyPrefix + id }

func newID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
