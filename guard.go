package auth

import (
	"context"
	"strings"

	"github.com/goliatone/go-errors"
)

// BearerScheme is the only accepted Authorization scheme
const BearerScheme = "Bearer"

// ExtractBearerToken pulls the raw token out of an Authorization header
// value. The required form is exactly "Bearer <token>"; anything else,
// including a different scheme, reads as no credential at all.
func ExtractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrNoToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != BearerScheme {
		return "", ErrNoToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// SessionGuard authenticates one request at a time: extract the bearer
// token, verify it, then resolve the embedded user id against the live
// store. Each step must pass before the next runs; the first failure
// rejects the request, there are no retries. The guard keeps no state
// between requests.
type SessionGuard struct {
	tokens   TokenService
	resolver PrincipalResolver
	logger   Logger
}

// NewSessionGuard returns a guard wired to the given token verifier and
// principal resolver.
func NewSessionGuard(tokens TokenService, resolver PrincipalResolver) *SessionGuard {
	return &SessionGuard{
		tokens:   tokens,
		resolver: resolver,
		logger:   defLogger{},
	}
}

func (g *SessionGuard) WithLogger(logger Logger) *SessionGuard {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// Authorize runs the full pipeline for an Authorization header value and
// returns the FRESH user record plus the verified claims. Downstream
// logic must trust the record: role and status may have drifted since
// the token was issued, and re-checking the store on every request is
// what stands in for revocation.
func (g *SessionGuard) Authorize(ctx context.Context, authorization string) (*User, AuthClaims, error) {
	token, err := ExtractBearerToken(authorization)
	if err != nil {
		return nil, nil, err
	}

	claims, err := g.tokens.Validate(token)
	if err != nil {
		g.logger.Debug("guard token validation failed", "error", err)
		return nil, nil, err
	}

	user, err := g.resolver.ResolveActiveUser(ctx, claims.UserID())
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			if richErr.Category == errors.CategoryNotFound {
				return nil, nil, err
			}
			g.logger.Error("guard principal resolution failed", "error", err)
			return nil, nil, err
		}

		// fail closed on anything the resolver did not categorize
		g.logger.Error("guard principal resolution failed", "error", err)
		return nil, nil, errors.Wrap(err, ErrAuthenticationFailed.Category, ErrAuthenticationFailed.Message).
			WithTextCode(ErrAuthenticationFailed.TextCode)
	}

	return user, claims, nil
}
