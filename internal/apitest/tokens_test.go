package apitest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dheerendra45/news-analyzer/internal/models"
)

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens([]byte("k"), time.Hour, func() time.Time { return fixedNow })
	tok, err := tokens.Issue(models.User{ID: "u1", Email: "a@b.c", Role: models.RoleAdmin})
	require.NoError(t, err)

	p, err := tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "a@b.c", p.Email)
	assert.True(t, p.IsAdmin())
}

func TestTokensRejectForeignSignature(t *testing.T) {
	issuer := NewTokens([]byte("one"), time.Hour, nil)
	verifier := NewTokens([]byte("two"), time.Hour, nil)

	tok, err := issuer.Issue(models.User{ID: "u1"})
	require.NoError(t, err)
	_, err = verifier.Verify(tok)
	assert.Error(t, err)
}

func TestTokensRejectNoneAlgorithm(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokens([]byte("k"), time.Hour, nil).Verify(tok)
	assert.Error(t, err)
}

func TestMagnitude(t *testing.T) {
	tests := map[string]float64{
		"87":    87,
		"12.5K": 12500,
		"$2.1B": 2.1e9,
		"":      0,
		"n/a":   0,
	}
	for in, want := range tests {
		assert.InDelta(t, want, magnitude(in), 0.001, in)
	}
}
