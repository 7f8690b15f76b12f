// Package session keeps the backend user id in a browser cookie.
//
// The id is opaque to this service: it is whatever the backend returned
// from login or signup, and it is sent back to the backend as-is.
package session

import (
	"context"
	"net/http"

	"github.com/boraler/boraler-web/internal/config"
	"github.com/boraler/boraler-web/internal/types"
)

// Manager reads and writes the session cookie.
type Manager struct {
	name   string
	maxAge int
	secure bool
}

// New returns a Manager configured from cfg.
func New(cfg config.Session) *Manager {
	name := cfg.CookieName
	if name == "" {
		name = "userId"
	}
	return &Manager{name: name, maxAge: cfg.MaxAge, secure: cfg.Secure}
}

// Set stores id in the cookie.
func (m *Manager) Set(w http.ResponseWriter, id types.UserID) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    string(id),
		Path:     "/",
		MaxAge:   m.maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID returns the id carried by the request's cookie.
func (m *Manager) UserID(r *http.Request) (types.UserID, bool) {
	c, err := r.Cookie(m.name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return types.UserID(c.Value), true
}

type contextKey struct{}

// WithUserID returns a copy of ctx carrying id.
func WithUserID(ctx context.Context, id types.UserID) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the id stored by WithUserID.
func FromContext(ctx context.Context) (types.UserID, bool) {
	id, ok := ctx.Value(contextKey{}).(types.UserID)
	return id, ok && id != ""
}
