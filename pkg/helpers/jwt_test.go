package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := NewJWTManager("test_secret", time.Hour)

	for _, email := range []string{"alice@example.com", "bob+tag@example.org", "x@y.z"} {
		token, exp, err := m.Issue(email)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

		claims, err := m.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, email, claims.Email)
		assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())
	}
}

func TestVerifyExpired(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewJWTManager("test_secret", time.Hour).WithClock(fixedClock(issuedAt))

	token, _, err := m.Issue("alice@example.com")
	require.NoError(t, err)

	m.WithClock(fixedClock(issuedAt.Add(59 * time.Minute)))
	_, err = m.Verify(token)
	require.NoError(t, err)

	m.WithClock(fixedClock(issuedAt.Add(61 * time.Minute)))
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour)

	token, _, err := issuer.Issue("alice@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyRejectsTamperedTokens(t *testing.T) {
	m := NewJWTManager("test_secret", time.Hour)
	token, _, err := m.Issue("alice@example.com")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "alice@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "alice@example.com",
	}).SignedString([]byte("test_secret"))
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test_secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"truncated by one character", token[:len(token)-1]},
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"alg none", noneToken},
		{"missing exp", noExp},
		{"missing email", noEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}
