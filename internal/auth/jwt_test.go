package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	t.Parallel()

	jwtAuth := NewJWTAuthenticator("user-auth-api", "user-auth-api")

	token, err := jwtAuth.GenerateSessionToken("user-123", "super-secret", time.Hour)
	require.NoError(t, err)

	claims, err := jwtAuth.ValidateSessionToken(token, "super-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestSessionToken_Expired(t *testing.T) {
	t.Parallel()

	jwtAuth := NewJWTAuthenticator("user-auth-api", "user-auth-api")

	token, err := jwtAuth.GenerateSessionToken("user-123", "super-secret", -time.Minute)
	require.NoError(t, err)

	_, err = jwtAuth.ValidateSessionToken(token, "super-secret")
	assert.Error(t, err)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	t.Parallel()

	jwtAuth := NewJWTAuthenticator("user-auth-api", "user-auth-api")

	token, err := jwtAuth.GenerateSessionToken("user-123", "right-secret", time.Hour)
	require.NoError(t, err)

	_, err = jwtAuth.ValidateSessionToken(token, "wrong-secret")
	assert.Error(t, err)
}

func TestSessionToken_WrongIssuer(t *testing.T) {
	t.Parallel()

	issuing := NewJWTAuthenticator("svc-a", "svc-a")
	validating := NewJWTAuthenticator("svc-b", "svc-b")

	token, err := issuing.GenerateSessionToken("user-123", "super-secret", time.Hour)
	require.NoError(t, err)

	_, err = validating.ValidateSessionToken(token, "super-secret")
	assert.Error(t, err)
}
