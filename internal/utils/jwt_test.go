package utils

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

func TestIssue_ClaimsAndOneHourWindow(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	issuer, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)
	issuer.WithClock(fixedClock(issuedAt))

	tok, err := issuer.Issue("a@x.com")
	require.NoError(t, err)

	claims, err := issuer.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, issuedAt.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestValidate_Expired(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	issuer, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)

	tok, err := issuer.WithClock(fixedClock(issuedAt)).Issue("a@x.com")
	require.NoError(t, err)

	issuer.WithClock(fixedClock(issuedAt.Add(time.Hour + time.Second)))
	_, err = issuer.Validate(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidate_WrongSecret(t *testing.T) {
	a, _ := NewTokenIssuer("secret-a", time.Hour)
	b, _ := NewTokenIssuer("secret-b", time.Hour)

	tok, err := a.Issue("a@x.com")
	require.NoError(t, err)

	_, err = b.Validate(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	issuer, _ := NewTokenIssuer("secret", time.Hour)
	claims := &Claims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = issuer.Validate(tok)
	assert.Error(t, err)
}

func TestValidate_Garbage(t *testing.T) {
	issuer, _ := NewTokenIssuer("secret", time.Hour)
	_, err := issuer.Validate("not-a-token")
	assert.Error(t, err)
}

func TestNewTokenIssuer_EmptySecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(true, "warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(-1))

	_, err = NewLogger(false, "loud")
	assert.Error(t, err)
}

func TestNewAccessTokenIssuer_OneHourLifetime(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	issuer, err := NewAccessTokenIssuer("secret")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, issuer.TTL())

	tok, err := issuer.WithClock(fixedClock(issuedAt)).Issue("a@x.com")
	require.NoError(t, err)

	issuer.WithClock(fixedClock(issuedAt.Add(59 * time.Minute)))
	_, err = issuer.Validate(tok)
	assert.NoError(t, err)

	issuer.WithClock(fixedClock(issuedAt.Add(time.Hour + time.Second)))
	_, err = issuer.Validate(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = NewAccessTokenIssuer("")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
