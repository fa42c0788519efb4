// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azzedinedj/winner-product-inno/internal/account"
	"github.com/azzedinedj/winner-product-inno/internal/config"
	"github.com/azzedinedj/winner-product-inno/internal/core"
)

func newTestJWTManager(t *testing.T, expire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privatePath,
		PublicKeyPath:     publicPath,
		AccessTokenExpire: expire,
		Issuer:            "test-issuer",
		Audience:          "test-audience",
	})
	require.NoError(t, err)
	return manager
}

func TestJWTManager_RoundTrip(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)

	issued, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "user-1",
		Role:   account.RoleUser,
		Status: account.StatusActive,
	})
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	require.NotEmpty(t, issued.JTI)

	claims, err := manager.ParseAccessToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, account.RoleUser, claims.Role)
	assert.Equal(t, account.StatusActive, claims.Status)
	assert.Equal(t, issued.JTI, claims.JTI)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	manager := newTestJWTManager(t, -time.Minute)

	issued, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "user-1",
		Role:   account.RoleUser,
		Status: account.StatusActive,
	})
	require.NoError(t, err)

	_, err = manager.ParseAccessToken(issued.Token)
	require.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestJWTManager_RejectsForeignToken(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)
	other := newTestJWTManager(t, time.Hour)

	issued, err := other.CreateAccessToken(AccessTokenClaims{
		UserID: "user-1",
		Role:   account.RoleUser,
		Status: account.StatusActive,
	})
	require.NoError(t, err)

	_, err = manager.ParseAccessToken(issued.Token)
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	manager := newTestJWTManager(t, time.Hour)

	_, err := manager.ParseAccessToken("not.a.token")
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}
