// Package apitest runs an in-memory implementation of the workforce
// intelligence REST API. It backs the client tests and the devapi binary;
// nothing is persisted and uploaded files are discarded.
package apitest

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

// ErrDuplicate is returned when an email or username is already registered.
var ErrDuplicate = errors.New("email or username already registered")

// DefaultAdminDomains are the email domains allowed to self-register admins.
var DefaultAdminDomains = []string{"replaceable.ai", "attacked.ai"}

type account struct {
	user models.User
	hash []byte
}

type failure struct {
	status int
	detail string
}

// Server holds the API state. All methods are safe for concurrent use.
type Server struct {
	mu       sync.Mutex
	accounts map[string]*account
	news     []models.NewsItem
	reports  []models.Report
	cards    []models.IntelligenceCard
	failures map[string]failure

	adminDomains []string
	tokens       *Tokens
	log          *zap.Logger
	now          func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithClock replaces the wall clock, for tokens and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithTokens replaces the token issuer.
func WithTokens(t *Tokens) Option {
	return func(s *Server) { s.tokens = t }
}

// WithAdminDomains replaces the domains accepted by admin self-registration.
func WithAdminDomains(domains ...string) Option {
	return func(s *Server) { s.adminDomains = domains }
}

// New returns an empty server.
func New(opts ...Option) *Server {
	s := &Server{
		accounts:     make(map[string]*account),
		failures:     make(map[string]failure),
		adminDomains: DefaultAdminDomains,
		log:          zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tokens == nil {
		s.tokens = NewTokens([]byte("devapi-secret"), 24*time.Hour, s.now)
	}
	return s
}

// Start serves the API on a loopback listener. The API base URL is the
// returned server's URL plus "/api".
func (s *Server) Start() *httptest.Server {
	return httptest.NewServer(s.Handler())
}

// Tokens returns the issuer used by the server.
func (s *Server) Tokens() *Tokens {
	return s.tokens
}

// FailNext makes the next request matching method and path (relative to
// /api, without query) fail with status and detail.
func (s *Server) FailNext(method, path string, status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, detail: detail}
}

func (s *Server) takeFailure(method, path string) (failure, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	f, ok := s.failures[key]
	if ok {
		delete(s.failures, key)
	}
	return f, ok
}

// AddUser registers an account and returns its public snapshot.
func (s *Server) AddUser(email, username, password string, role models.Role) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.user.Email, email) || strings.EqualFold(a.user.Username, username) {
			return models.User{}, ErrDuplicate
		}
	}
	u := models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     strings.ToLower(email),
		Role:      role,
		IsActive:  true,
		CreatedAt: s.now().UTC(),
	}
	s.accounts[u.ID] = &account{user: u, hash: hash}
	return u, nil
}

func (s *Server) authenticate(email, password string) (models.User, bool) {
	s.mu.Lock()
	var found *account
	for _, a := range s.accounts {
		if strings.EqualFold(a.user.Email, email) {
			found = a
			break
		}
	}
	s.mu.Unlock()

	if found == nil || !found.user.IsActive {
		return models.User{}, false
	}
	if bcrypt.CompareHashAndPassword(found.hash, []byte(password)) != nil {
		return models.User{}, false
	}
	return found.user, true
}

func (s *Server) user(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return models.User{}, false
	}
	return a.user, true
}

// AddNews stores n as is, assigning an id and timestamps when missing.
func (s *Server) AddNews(n models.NewsItem) models.NewsItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt, n.PublishedDate = s.stamp(n.CreatedAt, n.PublishedDate)
	s.news = append(s.news, n)
	return n
}

// AddReport stores r as is, assigning an id and timestamps when missing.
func (s *Server) AddReport(r models.Report) models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt, r.PublishedDate = s.stamp(r.CreatedAt, r.PublishedDate)
	s.reports = append(s.reports, r)
	return r
}

// AddCard stores c as is, assigning an id and timestamps when missing.
func (s *Server) AddCard(c models.IntelligenceCard) models.IntelligenceCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt, c.PublishedDate = s.stamp(c.CreatedAt, c.PublishedDate)
	s.cards = append(s.cards, c)
	return c
}

func (s *Server) stamp(created, published time.Time) (time.Time, time.Time) {
	now := s.now().UTC()
	if created.IsZero() {
		created = now
	}
	if published.IsZero() {
		published = created
	}
	return created, published
}

func (s *Server) adminDomainAllowed(email string) bool {
	_, domain, ok := strings.Cut(email, "@")
	if !ok {
		return false
	}
	for _, d := range s.adminDomains {
		if strings.EqualFold(d, domain) {
			return true
		}
	}
	return false
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api")
		if f, ok := s.takeFailure(r.Method, path); ok {
			writeDetail(w, f.status, f.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}
