package auth

import (
	"os"
	"time"

	"github.com/goliatone/go-errors"
)

// Environment variables recognized by NewConfigFromEnv.
const (
	EnvSigningKey = "AUTH_SIGNING_KEY"
	EnvAppEnv     = "APP_ENV"
)

// DefaultSigningKey is a fallback for local development only. Production
// boot refuses it: a predictable secret means anyone can mint valid
// session tokens.
const DefaultSigningKey = "insecure-dev-signing-key"

// SimpleConfig is a value implementation of Config. The signing key is
// read-only for the process lifetime, rotate it by restarting; rotation
// invalidates every outstanding token.
type SimpleConfig struct {
	SigningKey      string
	SigningMethod   string
	ContextKey      string
	TokenExpiration int
	AuthScheme      string
	Issuer          string
	Audience        []string
}

var _ Config = SimpleConfig{}

func (c SimpleConfig) GetSigningKey() string    { return c.SigningKey }
func (c SimpleConfig) GetSigningMethod() string { return c.SigningMethod }
func (c SimpleConfig) GetContextKey() string    { return c.ContextKey }
func (c SimpleConfig) GetTokenExpiration() int  { return c.TokenExpiration }
func (c SimpleConfig) GetAuthScheme() string    { return c.AuthScheme }
func (c SimpleConfig) GetIssuer() string        { return c.Issuer }
func (c SimpleConfig) GetAudience() []string    { return c.Audience }

// DefaultConfig returns the baseline marketplace configuration with the
// given signing key.
func DefaultConfig(signingKey string) SimpleConfig {
	return SimpleConfig{
		SigningKey:      signingKey,
		SigningMethod:   "HS256",
		ContextKey:      "user",
		TokenExpiration: int(TokenTTL / time.Hour),
		AuthScheme:      "Bearer",
		Issuer:          "merastore",
	}
}

// NewConfigFromEnv builds a Config from the process environment. When no
// signing key is configured we fall back to an insecure development
// default and say so loudly; in production the constructor fails instead.
func NewConfigFromEnv(logger Logger) (SimpleConfig, error) {
	if logger == nil {
		logger = defLogger{}
	}

	key := os.Getenv(EnvSigningKey)
	if key == "" {
		if os.Getenv(EnvAppEnv) == "production" {
			return SimpleConfig{}, errors.New(
				"AUTH_SIGNING_KEY must be set in production",
				errors.CategoryValidation,
			)
		}
		logger.Warn("no %s set, using insecure development signing key", EnvSigningKey)
		key = DefaultSigningKey
	}

	return DefaultConfig(key), nil
}
