package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adhithya-electronics/storefront-client/internal/session/domain"
)

// Persisted entry keys.
const (
	TokenKey = "auth_token"
	UserKey  = "user_info"
)

// Service is the single source of truth for who is logged in. Dependents
// register a token-change listener; listeners run synchronously after the
// state change is visible.
type Service struct {
	mu    sync.Mutex
	token string
	user  *domain.User

	api   AuthAPI
	store Storage
	log   *slog.Logger

	listeners []func(ctx context.Context, token string)
}

func NewService(api AuthAPI, store Storage, log *slog.Logger) *Service {
	return &Service{
		api:   api,
		store: store,
		log:   log,
	}
}

// OnTokenChange registers a listener invoked whenever the token changes:
// login, restore on Initialize, and logout (with the empty token).
func (s *Service) OnTokenChange(fn func(ctx context.Context, token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Initialize restores a persisted session. An expired or undecodable token is
// cleared silently; Initialize never fails.
func (s *Service) Initialize(ctx context.Context) {
	raw, ok := s.store.Get(TokenKey)
	if !ok || raw == "" {
		return
	}

	if tokenExpired(raw) {
		s.log.Info("persisted session expired, clearing")
		s.Logout()
		return
	}

	s.mu.Lock()
	s.token = raw
	if encoded, ok := s.store.Get(UserKey); ok {
		var u domain.User
		if err := json.Unmarshal([]byte(encoded), &u); err == nil {
			s.user = &u
		}
	}
	s.mu.Unlock()

	s.notify(ctx, raw)
}

// Login overwrites the in-memory session, persists it, and notifies listeners.
func (s *Service) Login(ctx context.Context, token string, user domain.User) {
	s.mu.Lock()
	s.token = token
	u := user
	s.user = &u
	s.mu.Unlock()

	if err := s.store.Set(TokenKey, token); err != nil {
		s.log.Error("persist token", slog.Any("err", err))
	}
	if encoded, err := json.Marshal(user); err == nil {
		if err := s.store.Set(UserKey, string(encoded)); err != nil {
			s.log.Error("persist user profile", slog.Any("err", err))
		}
	}

	s.notify(ctx, token)
}

// Logout clears the session. Calling it while logged out is a no-op.
func (s *Service) Logout() {
	s.mu.Lock()
	wasLoggedIn := s.token != "" || s.user != nil
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	_ = s.store.Delete(TokenKey)
	_ = s.store.Delete(UserKey)

	if wasLoggedIn {
		s.notify(context.Background(), "")
	}
}

// SignIn authenticates against the backend and establishes the session.
// Failures are returned to the caller; local state is untouched.
func (s *Service) SignIn(ctx context.Context, email, password string) error {
	token, user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	s.Login(ctx, token, user)
	return nil
}

// SignUp creates an account and establishes the session.
func (s *Service) SignUp(ctx context.Context, reg domain.Registration) error {
	token, user, err := s.api.Register(ctx, reg)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	s.Login(ctx, token, user)
	return nil
}

func (s *Service) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

func (s *Service) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Service) User() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *Service) notify(ctx context.Context, token string) {
	s.mu.Lock()
	listeners := make([]func(context.Context, string), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ctx, token)
	}
}

// tokenExpired decodes the exp claim without verifying the signature; the
// backend is the authority, the client only avoids presenting a dead token.
// A token without an exp claim counts as live.
func tokenExpired(raw string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
