package apitest

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dheerendra45/news-analyzer/internal/middleware"
	"github.com/dheerendra45/news-analyzer/internal/models"
)

// Tokens issues and verifies HS256 access tokens carrying the user id in
// "sub" plus the email and role claims.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// NewTokens returns a token issuer. now may be nil to use the wall clock.
func NewTokens(secret []byte, ttl time.Duration, now func() time.Time) *Tokens {
	if now == nil {
		now = time.Now
	}
	return &Tokens{secret: secret, ttl: ttl, now: now}
}

// Issue signs a token for u that expires after the configured TTL.
func (t *Tokens) Issue(u models.User) (string, error) {
	now := t.now()
	c := claims{
		Email: u.Email,
		Role:  string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the principal of token.
func (t *Tokens) Verify(token string) (middleware.Principal, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return middleware.Principal{}, err
	}
	if c.Subject == "" {
		return middleware.Principal{}, errors.New("token has no subject")
	}
	return middleware.Principal{UserID: c.Subject, Email: c.Email, Role: c.Role}, nil
}
