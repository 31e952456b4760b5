package token

import (
	"testing"
	"time"

	"repuestos/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *model.User {
	return &model.User{ID: 7, Username: "tester", Email: "a@b.com", Role: model.RoleAdmin}
}

func TestIssueCarriesClaims(t *testing.T) {
	issuer := NewIssuer([]byte("s3cret"), -time.Minute, time.Hour)

	signed, jti, expiresAt, err := issuer.Issue(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, jti)
	assert.True(t, expiresAt.Before(time.Now().UTC()))

	claims, err := issuer.ParseExpired(signed)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "tester", claims.Username)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, jti, claims.ID)
}

func TestParseExpiredRejectsValidToken(t *testing.T) {
	issuer := NewIssuer([]byte("s3cret"), time.Hour, time.Hour)

	signed, _, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.ParseExpired(signed)
	assert.ErrorIs(t, err, ErrNotExpired)
}

func TestParseExpiredRejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer([]byte("s3cret"), -time.Minute, time.Hour)
	other := NewIssuer([]byte("different"), -time.Minute, time.Hour)

	signed, _, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = other.ParseExpired(signed)
	assert.Error(t, err)
}

func TestParseExpiredRejectsGarbage(t *testing.T) {
	issuer := NewIssuer([]byte("s3cret"), -time.Minute, time.Hour)
	_, err := issuer.ParseExpired("not.a.jwt")
	assert.Error(t, err)
}

func TestNewRefreshValue(t *testing.T) {
	a, err := NewRefreshValue()
	require.NoError(t, err)
	b, err := NewRefreshValue()
	require.NoError(t, err)

	assert.Len(t, a, 64) // 32 random bytes hex-encoded
	assert.NotEqual(t, a, b)
}
