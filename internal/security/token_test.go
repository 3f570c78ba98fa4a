package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(testSecret, "user-1", "role-manager", "manager", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "role-manager", claims.RoleID)
	require.Equal(t, "manager", claims.RoleName)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseTokenExpired(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(testSecret, "user-1", "role-user", "user", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(testSecret, "user-1", "role-user", "user", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenTampered(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(testSecret, "user-1", "role-user", "user", time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ParseToken(tampered, testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("not-a-jwt", testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}
