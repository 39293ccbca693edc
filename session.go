package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ Session = &SessionObject{}

// SessionObject is the decoded snapshot of a verified session token. It
// carries the claims as issued; it is not the live user record.
type SessionObject struct {
	UserID         string     `json:"user_id,omitempty"`
	UserEmail      string     `json:"email,omitempty"`
	UserName       string     `json:"name,omitempty"`
	UserRole       string     `json:"role,omitempty"`
	Issuer         string     `json:"issuer,omitempty"`
	IssuedAt       *time.Time `json:"issued_at,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

func (s *SessionObject) GetEmail() string {
	return s.UserEmail
}

func (s *SessionObject) GetName() string {
	return s.UserName
}

func (s *SessionObject) GetRole() string {
	return s.UserRole
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetExpiration() *time.Time {
	return s.ExpirationDate
}

func (s SessionObject) String() string {
	issuedAt := "<nil>"
	if s.IssuedAt != nil {
		issuedAt = s.IssuedAt.Format(time.RFC1123)
	}
	return fmt.Sprintf(
		"user=%s email=%s role=%s iss=%s iat=%s",
		s.UserID,
		s.UserEmail,
		s.UserRole,
		s.Issuer,
		issuedAt,
	)
}

// sessionFromAuthClaims creates a SessionObject from verified claims
func sessionFromAuthClaims(claims AuthClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrUnableToParseData
	}

	issuedAt := claims.IssuedAt()
	expiresAt := claims.Expires()

	return &SessionObject{
		UserID:         claims.UserID(),
		UserEmail:      claims.Email(),
		UserName:       claims.Name(),
		UserRole:       claims.Role(),
		Issuer:         issuerFromClaims(claims),
		IssuedAt:       &issuedAt,
		ExpirationDate: &expiresAt,
	}, nil
}

func issuerFromClaims(claims AuthClaims) string {
	if sc, ok := claims.(*SessionClaims); ok {
		if sc.RegisteredClaims.Issuer != "" {
			return sc.RegisteredClaims.Issuer
		}
	}
	return claims.Subject()
}
