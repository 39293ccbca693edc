package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserStatus is the lifecycle state of a user account. Only active
// accounts may authenticate; the session guard re-checks this on every
// request because tokens cannot be revoked.
type UserStatus string

const (
	// UserStatusPending has registered but not completed onboarding
	UserStatusPending UserStatus = "pending"
	// UserStatusActive may log in and use the platform
	UserStatusActive UserStatus = "active"
	// UserStatusSuspended is temporarily barred, reversible
	UserStatusSuspended UserStatus = "suspended"
	// UserStatusBanned is permanently barred
	UserStatusBanned UserStatus = "banned"
)

// User is the account model shared by the storefront and the vendor
// dashboard. Vendor specific fields are empty for customers.
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role           UserRole       `bun:"user_role,notnull" json:"role,omitempty"`
	Name           string         `bun:"name,notnull" json:"name,omitempty"`
	Email          string         `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone          string         `bun:"phone_number" json:"phone_number,omitempty"`
	PasswordHash   string         `bun:"password_hash" json:"-"`
	Status         UserStatus     `bun:"status,notnull" json:"status,omitempty"`
	StoreName      string         `bun:"store_name" json:"store_name,omitempty"`
	StoreAddress   string         `bun:"store_address" json:"store_address,omitempty"`
	LoginAttempts  int            `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt *time.Time     `bun:"login_attempt_at" json:"login_attempt_at,omitempty"`
	LoggedInAt     *time.Time     `bun:"loggedin_at" json:"loggedin_at,omitempty"`
	Metadata       map[string]any `bun:"metadata" json:"metadata,omitempty"`
	CreatedAt      *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time     `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EnsureStatus backfills the default lifecycle state on legacy records
func (u *User) EnsureStatus() {
	if u.Status == "" {
		u.Status = UserStatusActive
	}
}

// IsActive reports whether the account may authenticate
func (u *User) IsActive() bool {
	if u == nil {
		return false
	}
	u.EnsureStatus()
	return u.Status == UserStatusActive && u.DeletedAt == nil
}

// AddMetadata will append information to the metadata attribute
func (u *User) AddMetadata(key string, val any) *User {
	if u.Metadata == nil {
		u.Metadata = make(map[string]any)
	}
	u.Metadata[key] = val
	return u
}
