package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("CLIENT_URL", "https://app.example.com")
	t.Setenv("TOKEN_SECRET", "super-secret")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "auth", cfg.MongoDatabase)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "https://app.example.com", cfg.ClientURL)
	assert.Equal(t, "super-secret", cfg.Token.Secret)
	assert.Equal(t, "user-auth-api", cfg.Token.Issuer)
	assert.Equal(t, 168*time.Hour, cfg.Token.SessionExpiresIn)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("TOKEN_SESSION_EXPIRES_IN", "24h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.Token.SessionExpiresIn)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MONGO_URI", "")

	_, err := Load()
	assert.Error(t, err)
}
