package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dheerendra45/news-analyzer/internal/client/api"
	"github.com/dheerendra45/news-analyzer/internal/client/storage"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

type stubAuth struct {
	loginResp *models.LoginResponse
	loginErr  error
	me        *models.User
	meErr     error
	meCalls   int
	meGate    chan struct{}

	gotEmail, gotPassword string
}

func (s *stubAuth) Login(_ context.Context, email, password string) (*models.LoginResponse, error) {
	s.gotEmail, s.gotPassword = email, password
	return s.loginResp, s.loginErr
}

func (s *stubAuth) Me(context.Context) (*models.User, error) {
	s.meCalls++
	if s.meGate != nil {
		<-s.meGate
	}
	return s.me, s.meErr
}

func tokenFile(t *testing.T) *storage.TokenFile {
	t.Helper()
	return storage.NewTokenFile(filepath.Join(t.TempDir(), "token.json"))
}

func TestLogin(t *testing.T) {
	auth := &stubAuth{loginResp: &models.LoginResponse{
		AccessToken: "tok1",
		User:        models.User{ID: "1", Username: "admin", Role: models.RoleAdmin},
	}}
	tokens := tokenFile(t)
	s := New(auth, tokens)

	user, err := s.Login(context.Background(), "admin@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "admin@x.com", auth.gotEmail)
	assert.Equal(t, "secret123", auth.gotPassword)

	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "tok1", s.Token())

	stored, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok1", stored)
}

func TestLoginFailureLeavesSession(t *testing.T) {
	authErr := &api.AuthError{Status: 401, Message: "Invalid email or password"}
	s := New(&stubAuth{loginErr: authErr}, tokenFile(t))

	_, err := s.Login(context.Background(), "admin@x.com", "nope")
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", api.Message(err, ""))
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}

func TestLoginWithoutToken(t *testing.T) {
	s := New(&stubAuth{loginResp: &models.LoginResponse{}}, tokenFile(t))
	_, err := s.Login(context.Background(), "a@b.c", "x")
	assert.ErrorIs(t, err, ErrNoToken)
	assert.False(t, s.IsAuthenticated())
}

func TestRegularUserIsNotAdmin(t *testing.T) {
	auth := &stubAuth{loginResp: &models.LoginResponse{
		AccessToken: "tok",
		User:        models.User{ID: "2", Username: "reader", Role: models.RoleUser},
	}}
	s := New(auth, tokenFile(t))
	_, err := s.Login(context.Background(), "r@x.com", "pw")
	require.NoError(t, err)
	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())
}

func TestLogoutIdempotent(t *testing.T) {
	tokens := tokenFile(t)
	require.NoError(t, tokens.Save("tok"))
	s := New(&stubAuth{}, tokens)

	require.NoError(t, s.Logout())
	require.NoError(t, s.Logout())
	assert.False(t, s.IsAuthenticated())
	stored, _ := tokens.Load()
	assert.Empty(t, stored)
}

func TestInitializeInvalidToken(t *testing.T) {
	tokens := tokenFile(t)
	require.NoError(t, tokens.Save("bogus"))
	auth := &stubAuth{meErr: &api.AuthError{Status: 401, Message: "Could not validate credentials"}}
	s := New(auth, tokens)

	require.NoError(t, s.Initialize(context.Background()))
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Equal(t, 1, auth.meCalls)

	stored, err := tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestInitializeNetworkFailureLogsOut(t *testing.T) {
	tokens := tokenFile(t)
	require.NoError(t, tokens.Save("tok"))
	s := New(&stubAuth{meErr: errors.New("connection refused")}, tokens)

	require.NoError(t, s.Initialize(context.Background()))
	assert.False(t, s.IsAuthenticated())
}

func TestInitializeValidToken(t *testing.T) {
	tokens := tokenFile(t)
	require.NoError(t, tokens.Save("tok1"))
	auth := &stubAuth{me: &models.User{ID: "1", Username: "admin", Role: models.RoleAdmin}}
	s := New(auth, tokens)

	require.NoError(t, s.Initialize(context.Background()))
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsAdmin())
	assert.Equal(t, "tok1", s.Token())
	assert.False(t, s.Loading())
}

func TestInitializeWithoutToken(t *testing.T) {
	auth := &stubAuth{}
	s := New(auth, tokenFile(t))

	require.NoError(t, s.Initialize(context.Background()))
	assert.False(t, s.IsAuthenticated())
	assert.Zero(t, auth.meCalls)
}

func TestInitializeExpiredJWTSkipsServer(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	tokens := tokenFile(t)
	require.NoError(t, tokens.Save(expired))
	auth := &stubAuth{me: &models.User{ID: "1"}}
	s := New(auth, tokens, WithClock(func() time.Time { return now }))

	require.NoError(t, s.Initialize(context.Background()))
	assert.False(t, s.IsAuthenticated())
	assert.Zero(t, auth.meCalls)
	stored, _ := tokens.Load()
	assert.Empty(t, stored)
}

func TestInitializeLoadingFlag(t *testing.T) {
	tokens := tokenFile(t)
	require.NoError(t, tokens.Save("tok"))
	auth := &stubAuth{me: &models.User{ID: "1"}, meGate: make(chan struct{})}
	s := New(auth, tokens)

	done := make(chan error)
	go func() { done <- s.Initialize(context.Background()) }()

	require.Eventually(t, s.Loading, time.Second, time.Millisecond)
	assert.False(t, s.IsAuthenticated())

	close(auth.meGate)
	require.NoError(t, <-done)
	assert.False(t, s.Loading())
	assert.True(t, s.IsAuthenticated())
}

func TestUserReturnsCopy(t *testing.T) {
	auth := &stubAuth{loginResp: &models.LoginResponse{
		AccessToken: "tok",
		User:        models.User{ID: "1", Username: "admin", Role: models.RoleAdmin},
	}}
	s := New(auth, tokenFile(t))
	_, err := s.Login(context.Background(), "a", "b")
	require.NoError(t, err)

	u := s.User()
	u.Role = models.RoleUser
	assert.True(t, s.IsAdmin())
}
