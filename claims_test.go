package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	auth "github.com/merastore/go-auth"
	"github.com/stretchr/testify/assert"
)

func TestSessionClaims_UserIDFallsBackToSubject(t *testing.T) {
	claims := &auth.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "sub-123"},
	}

	assert.Equal(t, "sub-123", claims.UserID())

	claims.UID = "uid-456"
	assert.Equal(t, "uid-456", claims.UserID())
}

func TestSessionClaims_RoleChecks(t *testing.T) {
	claims := &auth.SessionClaims{UserRole: string(auth.RoleVendor)}

	assert.True(t, claims.HasRole(string(auth.RoleVendor)))
	assert.False(t, claims.HasRole(string(auth.RoleAdmin)))

	assert.True(t, claims.IsAtLeast(string(auth.RoleCustomer)))
	assert.True(t, claims.IsAtLeast(string(auth.RoleVendor)))
	assert.False(t, claims.IsAtLeast(string(auth.RoleAdmin)))
}

func TestSessionClaims_Timestamps(t *testing.T) {
	claims := &auth.SessionClaims{}
	assert.True(t, claims.Expires().IsZero())
	assert.True(t, claims.IssuedAt().IsZero())

	now := time.Now()
	claims.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(now.Add(time.Hour))

	assert.WithinDuration(t, now, claims.IssuedAt(), time.Second)
	assert.WithinDuration(t, now.Add(time.Hour), claims.Expires(), time.Second)
}
