package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the identity snapshot carried inside a session token
type AuthClaims interface {
	Subject() string
	UserID() string
	Email() string
	Name() string
	Role() string
	HasRole(role string) bool
	IsAtLeast(minRole string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// SessionClaims is the concrete claims payload. The shape is fixed:
// identity fields plus registered timestamps. Tokens missing the
// required identity fields are rejected at validation time.
type SessionClaims struct {
	jwt.RegisteredClaims
	UID       string `json:"uid,omitempty"`
	UserEmail string `json:"email,omitempty"`
	UserName  string `json:"name,omitempty"`
	UserRole  string `json:"role,omitempty"`
}

var _ AuthClaims = (*SessionClaims)(nil)

// Subject returns the subject claim
func (c *SessionClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID
func (c *SessionClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Email returns the email embedded at issuance
func (c *SessionClaims) Email() string {
	return c.UserEmail
}

// Name returns the display name embedded at issuance
func (c *SessionClaims) Name() string {
	return c.UserName
}

// Role returns the role embedded at issuance
func (c *SessionClaims) Role() string {
	return c.UserRole
}

// HasRole checks if the claims carry a specific role
func (c *SessionClaims) HasRole(role string) bool {
	return c.UserRole == role
}

// IsAtLeast checks if the embedded role is at least the minimum required role
func (c *SessionClaims) IsAtLeast(minRole string) bool {
	return UserRole(c.UserRole).IsAtLeast(UserRole(minRole))
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ensureShape rejects payloads that do not carry the identity fields a
// session token is required to have. Name may be empty, the rest may not.
func (c *SessionClaims) ensureShape() error {
	if c.UserID() == "" || c.UserEmail == "" || c.UserRole == "" {
		return ErrUnableToMapClaims
	}

	if _, ok := ParseRole(c.UserRole); !ok {
		return ErrUnableToMapClaims
	}

	return nil
}
