package session

import (
	"context"
	"log/slog"

	"github.com/hoppin-app/hoppin-go/internal/domain"
)

// AuthAPI is the subset of the backend client the session store depends on.
// Defining the interface here (in the consumer package) lets store tests
// inject a mock without a network.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	SignUp(ctx context.Context, reg domain.Registration) (domain.User, error)
}

// Store holds the current session. It is the single writer of the durable
// session record; everything else reads session state via Current.
type Store struct {
	api     AuthAPI
	storage *Storage
	user    *domain.User
}

// NewStore constructs a Store backed by the given API and durable storage.
func NewStore(api AuthAPI, storage *Storage) *Store {
	return &Store{api: api, storage: storage}
}

// Restore loads a previously persisted session, if any. Failure degrades to
// anonymous; it never returns an error.
func (s *Store) Restore() {
	s.user = s.storage.Load()
}

// Current returns the session user, or nil when anonymous. Callers must not
// mutate the returned value.
func (s *Store) Current() *domain.User {
	return s.user
}

// Token returns the session bearer token, or "" when anonymous.
func (s *Store) Token() string {
	if s.user == nil {
		return ""
	}
	return s.user.Token
}

// Login authenticates with the backend. On success the returned User becomes
// the session, in memory and in durable storage. On failure the prior session
// state is left untouched.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.adopt(user)
	return s.user, nil
}

// SignUp registers a new account; a successful registration logs the user in.
func (s *Store) SignUp(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	user, err := s.api.SignUp(ctx, reg)
	if err != nil {
		return nil, err
	}
	s.adopt(user)
	return s.user, nil
}

// Logout clears the session from memory and durable storage. It is
// idempotent: calling it while anonymous is a no-op.
func (s *Store) Logout() {
	s.user = nil
	if err := s.storage.Clear(); err != nil {
		slog.Warn("failed to clear persisted session", "error", err)
	}
}

// adopt installs user as the current session and persists it. A persistence
// failure is logged but does not fail the login — the in-memory session is
// still valid for this run.
func (s *Store) adopt(user domain.User) {
	s.user = &user
	if err := s.storage.Save(user); err != nil {
		slog.Warn("failed to persist session", "error", err)
	}
}
