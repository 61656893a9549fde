package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const DefaultCookieName = "dayflow_session"

type ManagerConfig struct {
	CookieName string
	Secure     bool
	MaxAge     time.Duration
}

// Manager ties a browser to a Store entry through an opaque cookie.
type Manager struct {
	store      Store
	cookieName string
	secure     bool
	maxAge     time.Duration
	newID      func() string
}

func NewManager(store Store, cfg ManagerConfig) *Manager {
	name := cfg.CookieName
	if name == "" {
		name = DefaultCookieName
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	return &Manager{
		store:      store,
		cookieName: name,
		secure:     cfg.Secure,
		maxAge:     maxAge,
		newID:      func() string { return uuid.NewString() },
	}
}

// ID returns the session id carried by the request cookie.
func (m *Manager) ID(r *http.Request) (string, bool) {
	c, err := r.Cookie(m.cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

// Get loads the request's session. A missing cookie or store entry yields
// ErrNotFound.
func (m *Manager) Get(r *http.Request) (Session, string, error) {
	id, ok := m.ID(r)
	if !ok {
		return Session{}, "", ErrNotFound
	}
	sess, err := m.store.Load(r.Context(), id)
	if err != nil {
		return Session{}, id, err
	}
	return sess, id, nil
}

// Set stores sess under a fresh id, overwriting all four fields, and points
// the browser cookie at it. Any previous entry for this browser is dropped.
func (m *Manager) Set(w http.ResponseWriter, r *http.Request, sess Session) (string, error) {
	if oldID, ok := m.ID(r); ok {
		if err := m.store.Delete(r.Context(), oldID); err != nil {
			return "", fmt.Errorf("drop previous session: %w", err)
		}
	}
	id := m.newID()
	if err := m.store.Save(r.Context(), id, sess); err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

// Update rewrites an existing entry in place, e.g. after a token refresh.
func (m *Manager) Update(ctx context.Context, id string, sess Session) error {
	return m.store.Save(ctx, id, sess)
}

// Clear removes every stored field and expires the cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	id, ok := m.ID(r)
	if !ok {
		return nil
	}
	if err := m.store.Delete(r.Context(), id); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
