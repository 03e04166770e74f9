// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth holds the client's session: who is signed in, with which
// canonical role, and whether the persisted credential has been checked yet.
//
// A Store is constructed explicitly with its storage and backend dependencies.
// Bootstrap restores the session from the persisted credential; Login, Logout and
// HandleRejection replace or clear it as a whole. Credential shape and expiry
// problems are resolved here and never surface to callers as errors from
// Bootstrap.
package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"helpdesk/cli/internal/backend"
	"helpdesk/cli/internal/credential"
	apperr "helpdesk/cli/internal/errors"
	"helpdesk/cli/internal/logging"
	"helpdesk/cli/internal/role"
)

// CredentialStore persists the single credential slot.
type CredentialStore interface {
	SaveCredential(token string) error
	// LoadCredential returns "" and no error when nothing is stored.
	LoadCredential() (string, error)
	ClearCredential() error
}

// API is the subset of the backend the Store calls.
type API interface {
	Login(ctx context.Context, payload map[string]any) (*backend.LoginResponse, error)
	Register(ctx context.Context, req backend.RegisterRequest) error
}

// Redirector receives navigation events published by the Store.
type Redirector interface {
	RedirectToLogin(reason string)
}

// Session is the in-memory record of the signed-in user. It is never mutated;
// the Store replaces or drops it as a whole.
type Session struct {
	Claims     credential.Claims
	Credential string
	Role       role.Canonical
}

// Identity returns the subject or email of the session's claims.
func (s *Session) Identity() string {
	return s.Claims.Identity()
}

// State is a snapshot of the authorization state.
type State struct {
	// Session is nil when nobody is signed in.
	Session *Session
	// Initializing is true until Bootstrap has finished.
	Initializing bool
}

// Authenticated reports whether a session is present.
func (s State) Authenticated() bool { return s.Session != nil }

// Store owns the session and the persisted credential.
type Store struct {
	creds CredentialStore
	api   API
	now   func() time.Time
	log   *logging.Logger

	bootOnce sync.Once

	mu           sync.RWMutex
	session      *Session
	initializing bool
	redirect     Redirector
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithRedirector sets where redirect-to-login events are published.
func WithRedirector(r Redirector) Option {
	return func(s *Store) { s.redirect = r }
}

// NewStore creates a Store. The returned Store is initializing until Bootstrap runs.
func NewStore(creds CredentialStore, api API, opts ...Option) *Store {
	s := &Store{
		creds:        creds,
		api:          api,
		now:          time.Now,
		log:          logging.Nop(),
		initializing: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("auth")
	return s
}

// Bootstrap restores the session from the persisted credential. Only the first
// call does any work; later calls return immediately.
func (s *Store) Bootstrap(_ context.Context) error {
	s.bootOnce.Do(func() {
		sess := s.restore()
		s.mu.Lock()
		s.session = sess
		s.initializing = false
		s.mu.Unlock()
	})
	return nil
}

func (s *Store) restore() *Session {
	token, err := s.creds.LoadCredential()
	if err != nil {
		s.log.Warn("could not read persisted credential; starting signed out", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if token == "" {
		return nil
	}

	sess, err := s.sessionFor(token)
	if err != nil {
		s.log.Info("discarding persisted credential", map[string]interface{}{
			"reason": string(apperr.KindOf(err)),
		})
		if cerr := s.creds.ClearCredential(); cerr != nil {
			s.log.Error("could not clear persisted credential", cerr)
		}
		return nil
	}
	return sess
}

// sessionFor decodes token and rejects it when expired.
func (s *Store) sessionFor(token string) (*Session, error) {
	claims, err := credential.Decode(token)
	if err != nil {
		return nil, err
	}
	if credential.IsExpired(claims, s.now()) {
		return nil, apperr.New(apperr.ExpiredCredential, "credential has expired")
	}
	return &Session{
		Claims:     claims,
		Credential: token,
		Role:       role.Resolve(claims.Role),
	}, nil
}

// Login exchanges identifier and secret for a credential. The payload sends the
// identifier as both email and username; entries in extra override either.
// On success the credential is persisted and the new session returned.
func (s *Store) Login(ctx context.Context, identifier, secret string, extra map[string]any) (*Session, error) {
	payload := map[string]any{
		"email":    identifier,
		"password": secret,
		"username": identifier,
	}
	for k, v := range extra {
		payload[k] = v
	}

	resp, err := s.api.Login(ctx, payload)
	if err != nil {
		return nil, err
	}

	token, source := ExtractCredential(resp, DefaultExtractors())
	if token == "" {
		s.log.Warn("login response carried no credential", map[string]interface{}{
			"status":     resp.Status,
			"body_bytes": len(resp.Body),
		})
		return nil, apperr.New(apperr.NoCredentialIssued, "login succeeded but no credential was issued")
	}
	s.log.Debug("credential extracted", map[string]interface{}{"source": source})

	sess, err := s.sessionFor(token)
	if err != nil {
		return nil, err
	}
	if err := s.creds.SaveCredential(token); err != nil {
		return nil, fmt.Errorf("persist credential: %w", err)
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
	return sess, nil
}

// Logout clears the persisted credential and the session. Calling it while
// signed out is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
	return s.creds.ClearCredential()
}

// HandleRejection is the global reaction to a 401 or 403 from any call: the
// credential and the session are dropped and a redirect to login is published.
func (s *Store) HandleRejection(_ context.Context, status int) {
	s.mu.Lock()
	s.session = nil
	r := s.redirect
	s.mu.Unlock()

	if err := s.creds.ClearCredential(); err != nil {
		s.log.Error("could not clear rejected credential", err)
	}
	s.log.Info("session ended by backend", map[string]interface{}{"status": status})
	if r != nil {
		r.RedirectToLogin(fmt.Sprintf("your session was ended by the helpdesk service (%d)", status))
	}
}

// State returns a snapshot of the authorization state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Session: s.session, Initializing: s.initializing}
}

// Session returns the current session, or nil.
func (s *Store) Session() *Session {
	return s.State().Session
}

// Close detaches the redirector and drops the in-memory session. The persisted
// credential is left alone.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirect = nil
	s.session = nil
	return nil
}
