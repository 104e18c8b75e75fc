// Package config loads the service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the configuration for the authentication service.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on.
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// MongoURI is the MongoDB connection string.
	MongoURI string `env:"MONGO_URI"`

	// MongoDatabase is the database holding the users collection.
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"auth"`

	// ClientURL is the client-facing base URL used to build the password
	// reset link embedded in notification emails.
	ClientURL string `env:"CLIENT_URL"`

	// SecureCookie marks the session cookie Secure. Enable behind TLS.
	SecureCookie bool `env:"SECURE_COOKIE"`

	Token TokenConfig `envPrefix:"TOKEN_"`
}

// TokenConfig holds the session token configuration.
type TokenConfig struct {
	Secret           string        `env:"SECRET"`
	Issuer           string        `env:"ISSUER"           envDefault:"user-auth-api"`
	SessionExpiresIn time.Duration `env:"SESSION_EXPIRES_IN" envDefault:"168h"`
}

// Load creates a Config instance from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks if the configuration is valid.
func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.ClientURL == "" {
		return fmt.Errorf("missing CLIENT_URL environment variable")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("missing TOKEN_SECRET environment variable")
	}

	return nil
}
