package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 30, 60)

	access, err := tm.GenerateAccessToken(7, "Dana Reyes", RoleCustomer)
	require.NoError(t, err)

	claims, err := tm.ValidateToken(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.SubjectID)
	assert.Equal(t, "Dana Reyes", claims.Name)
	assert.Equal(t, RoleCustomer, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_TypeMismatch(t *testing.T) {
	tm := NewTokenManager(testSecret, 30, 60)

	refresh, err := tm.GenerateRefreshToken(7, RoleAdmin)
	require.NoError(t, err)

	// A refresh token must not pass as an access token.
	_, err = tm.ValidateToken(refresh, TokenTypeAccess)
	assert.Error(t, err)

	claims, err := tm.ValidateToken(refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, 30, 60)
	other := NewTokenManager("ffffffffffffffffffffffffffffffff", 30, 60)

	access, err := tm.GenerateAccessToken(7, "Dana Reyes", RoleCustomer)
	require.NoError(t, err)

	_, err = other.ValidateToken(access, TokenTypeAccess)
	assert.Error(t, err)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	// Zero-minute expiry produces an immediately expired token.
	tm := NewTokenManager(testSecret, 0, 0)

	access, err := tm.GenerateAccessToken(7, "Dana Reyes", RoleCustomer)
	require.NoError(t, err)

	_, err = tm.ValidateToken(access, TokenTypeAccess)
	assert.Error(t, err)
}
