// Package guardware provides fiber middleware that authenticates
// requests through the auth session guard: bearer extraction, token
// verification, and live principal resolution, with optional role
// checks on top.
package guardware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	auth "github.com/merastore/go-auth"
)

// Config holds the middleware options
type Config struct {
	// Filter skips the middleware when it returns true
	Filter func(*fiber.Ctx) bool

	// Guard runs the authentication pipeline. Required.
	Guard *auth.SessionGuard

	// ErrorHandler handles rejections; defaults to the JSON taxonomy mapping
	ErrorHandler fiber.ErrorHandler

	// SuccessHandler runs after the principal is stored; defaults to Next
	SuccessHandler fiber.Handler

	// ContextKey is the locals key for the resolved user
	ContextKey string

	// ClaimsKey is the locals key for the verified claims
	ClaimsKey string

	// RequiredRole rejects principals whose live role is not exactly this
	RequiredRole string

	// MinimumRole rejects principals below this role in the hierarchy
	MinimumRole string

	Logger auth.Logger
}

// ContextKey defaults
const (
	DefaultContextKey = "user"
	DefaultClaimsKey  = "claims"
)

// New returns the middleware handler
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		user, claims, err := cfg.Guard.Authorize(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		// role checks run against the live record, not the token claims
		if err := checkRoles(user, cfg); err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, user)
		c.Locals(cfg.ClaimsKey, claims)

		ctx := auth.WithContext(c.UserContext(), user)
		ctx = auth.WithClaimsContext(ctx, claims)
		c.SetUserContext(ctx)

		if cfg.SuccessHandler != nil {
			return cfg.SuccessHandler(c)
		}

		return c.Next()
	}
}

func configDefault(config ...Config) Config {
	cfg := Config{}
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}

	if cfg.ClaimsKey == "" {
		cfg.ClaimsKey = DefaultClaimsKey
	}

	if cfg.Logger == nil {
		cfg.Logger = noopLogger{}
	}

	if cfg.ErrorHandler == nil {
		logger := cfg.Logger
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			return auth.WriteHTTPError(c, logger, err)
		}
	}

	return cfg
}

func checkRoles(user *auth.User, cfg Config) error {
	role := user.Role

	if cfg.RequiredRole != "" && role != auth.UserRole(cfg.RequiredRole) {
		return errors.New("insufficient role", errors.CategoryAuthz).
			WithCode(errors.CodeForbidden)
	}

	if cfg.MinimumRole != "" && !role.IsAtLeast(auth.UserRole(cfg.MinimumRole)) {
		return errors.New("insufficient role", errors.CategoryAuthz).
			WithCode(errors.CodeForbidden)
	}

	return nil
}

// UserFromContext returns the user stored by the middleware
func UserFromContext(c *fiber.Ctx, key ...string) (*auth.User, bool) {
	k := DefaultContextKey
	if len(key) > 0 && key[0] != "" {
		k = key[0]
	}

	user, ok := c.Locals(k).(*auth.User)
	return user, ok
}

// ClaimsFromContext returns the claims stored by the middleware
func ClaimsFromContext(c *fiber.Ctx, key ...string) (auth.AuthClaims, bool) {
	k := DefaultClaimsKey
	if len(key) > 0 && key[0] != "" {
		k = key[0]
	}

	claims, ok := c.Locals(k).(auth.AuthClaims)
	return claims, ok
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
