package security_test

import (
	"testing"
	"time"

	"github.com/ecopontos/ecopontos-api/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testSecret = "test-secret-key-with-at-least-32-bytes!"

func newKeyManager(t *testing.T) *security.KeyManager {
	t.Setenv("JWT_SECRET_KEY", testSecret)

	km, err := security.NewKeyManager(zaptest.NewLogger(t))
	require.NoError(t, err)
	return km
}

func TestKeyManager_RequiresLongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "curta")

	_, err := security.NewKeyManager(zaptest.NewLogger(t))
	require.Error(t, err)
}

func TestKeyManager_GenerateAndVerify(t *testing.T) {
	km := newKeyManager(t)

	token, err := km.GenerateToken("user-1", "user", "Maria", true, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := km.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.AccountID)
	assert.Equal(t, "user", claims.AccountType)
	assert.Equal(t, "Maria", claims.Name)
	assert.True(t, claims.Verified)
}

func TestKeyManager_ExpiredToken(t *testing.T) {
	km := newKeyManager(t)

	token, err := km.GenerateToken("user-1", "user", "Maria", true, -time.Minute)
	require.NoError(t, err)

	_, err = km.VerifyToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expirado")
}

func TestKeyManager_RejectsTamperedToken(t *testing.T) {
	km := newKeyManager(t)

	token, err := km.GenerateToken("user-1", "user", "Maria", true, time.Hour)
	require.NoError(t, err)

	_, err = km.VerifyToken(token + "x")
	require.Error(t, err)
}
