// Package auth manages the login session and its durable bearer token.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"outlay/internal/api"
)

// ErrInvalidCredentials is returned for every rejected login or register
// attempt. The cause is deliberately not distinguished so a caller cannot
// probe which usernames exist.
var ErrInvalidCredentials = errors.New("auth: invalid username or password")

// PersistFunc durably stores the token, or removes it when empty.
type PersistFunc func(token string) error

// Session holds the bearer token for the current user. The presence of a
// token is the authenticated state; token and flag can never diverge.
type Session struct {
	mu      sync.RWMutex
	token   string
	persist PersistFunc // nil disables durable storage
}

// NewSession creates a session seeded with a previously persisted token.
func NewSession(token string, persist PersistFunc) *Session {
	return &Session{token: token, persist: persist}
}

// Token returns the current bearer token, empty when logged out.
// Implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a session token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores the token in memory and persists it. The in-memory state
// flips even when persistence fails; the error only signals lost durability.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if s.persist == nil {
		return nil
	}
	if err := s.persist(token); err != nil {
		return fmt.Errorf("persisting session token: %w", err)
	}
	return nil
}

// Clear drops the token, logging the session out.
func (s *Session) Clear() error {
	return s.SetToken("")
}

// Manager wires the auth endpoints to the session.
type Manager struct {
	api     *api.Client
	session *Session
}

// NewManager creates an auth manager for the given client and session.
func NewManager(client *api.Client, session *Session) *Manager {
	return &Manager{api: client, session: session}
}

// Login authenticates and persists the returned token. Rejected
// credentials surface as ErrInvalidCredentials.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	token, err := m.api.Login(ctx, username, password)
	if err != nil {
		return mapAuthErr(err)
	}
	return m.session.SetToken(token)
}

// Register creates an account and persists its token, with the same error
// contract as Login.
func (m *Manager) Register(ctx context.Context, username, password string) error {
	token, err := m.api.Register(ctx, username, password)
	if err != nil {
		return mapAuthErr(err)
	}
	return m.session.SetToken(token)
}

// Logout clears the session. The in-memory token is always dropped; the
// returned error only reports a failed durable-storage update.
func (m *Manager) Logout() error {
	return m.session.Clear()
}

// mapAuthErr collapses every 4xx rejection into ErrInvalidCredentials.
// Transport and server failures pass through unchanged.
func mapAuthErr(err error) error {
	if errors.Is(err, api.ErrUnauthorized) {
		return ErrInvalidCredentials
	}
	var he *api.HTTPError
	if errors.As(err, &he) && he.Status >= 400 && he.Status < 500 {
		return ErrInvalidCredentials
	}
	return err
}
