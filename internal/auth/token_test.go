package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	parser := NewParser("secret")

	adminID := uuid.New()
	token, err := issuer.Issue(adminID, "operator")
	require.NoError(t, err)

	claims, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, adminID, claims.AdminID)
	assert.Equal(t, "operator", claims.Username)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	parser := NewParser("other-secret")

	token, err := issuer.Issue(uuid.New(), "operator")
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	issuer := NewIssuer("secret", -time.Minute)
	parser := NewParser("secret")

	token, err := issuer.Issue(uuid.New(), "operator")
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	parser := NewParser("secret")

	_, err := parser.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, VerifyPassword("hunter22", hash))
	assert.False(t, VerifyPassword("hunter23", hash))
}
