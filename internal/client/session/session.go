// Package session keeps track of who is logged in. A Store is the single
// owner of the bearer token: it is written by Login, Logout and Initialize
// and read by the HTTP client through the api.TokenSource interface.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

// ErrNoToken is returned by Login when the server answers without a token.
var ErrNoToken = errors.New("login response carries no access token")

// Authenticator is the subset of the auth gateway used by the store.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Me(ctx context.Context) (*models.User, error)
}

// TokenStore persists the token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Store is safe for concurrent use.
type Store struct {
	auth   Authenticator
	tokens TokenStore
	log    *zap.Logger
	now    func() time.Time

	mu      sync.RWMutex
	token   string
	user    *models.User
	loading bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces the clock used for the token expiry pre-check.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an unauthenticated store. Call Initialize to restore a
// persisted session.
func New(auth Authenticator, tokens TokenStore, opts ...Option) *Store {
	s := &Store{
		auth:   auth,
		tokens: tokens,
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login exchanges credentials for a token, persists it and returns the
// user. Authentication failures are returned unchanged so callers can show
// the server message; the session is left untouched on any error.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, ErrNoToken
	}
	if err := s.tokens.Save(resp.AccessToken); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}

	user := resp.User
	s.mu.Lock()
	s.token = resp.AccessToken
	s.user = &user
	s.mu.Unlock()

	s.log.Info("logged in", zap.String("user", user.Username), zap.String("role", string(user.Role)))
	return &user, nil
}

// Logout forgets the token and user in memory and on disk. It is idempotent.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Initialize restores the persisted session. When a token is stored it
// resolves the identity once through /auth/me; an expired, invalid or
// unverifiable token logs the session out. Loading reports true until
// Initialize returns.
//
// The returned error is non-nil only when the stored state could not be
// read or cleared; a dropped session is not an error.
func (s *Store) Initialize(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.tokens.Load()
	if err != nil {
		s.log.Warn("stored token unreadable", zap.Error(err))
		if clearErr := s.Logout(); clearErr != nil {
			return errors.Join(err, clearErr)
		}
		return err
	}
	if token == "" {
		return nil
	}

	if exp, ok := expiry(token); ok && !s.now().Before(exp) {
		s.log.Info("stored token expired", zap.Time("exp", exp))
		return s.Logout()
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.log.Info("stored session rejected", zap.Error(err))
		return s.Logout()
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// expiry reads the exp claim without verifying the signature; the server
// stays authoritative. Tokens that are not JWTs report ok == false.
func expiry(token string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Token returns the current bearer token or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current identity, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Loading reports whether Initialize is in progress.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsAuthenticated reports whether both a token and a user are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// IsAdmin reports whether the current user has the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsAdmin()
}
