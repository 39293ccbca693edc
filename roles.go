package auth

// UserRole is the user's access level
type UserRole string

const (
	// RoleGuest can browse public catalog data only
	RoleGuest UserRole = "guest"
	// RoleCustomer is a registered shopper
	RoleCustomer UserRole = "customer"
	// RoleVendor manages their own store through the vendor dashboard
	RoleVendor UserRole = "vendor"
	// RoleAdmin has full access to the admin panel
	RoleAdmin UserRole = "admin"
)

var roleHierarchy = map[UserRole]int{
	RoleGuest:    0,
	RoleCustomer: 1,
	RoleVendor:   2,
	RoleAdmin:    3,
}

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	_, ok := roleHierarchy[r]
	return ok
}

// IsAtLeast checks if this role meets the minimum required level
func (r UserRole) IsAtLeast(minRole UserRole) bool {
	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleGuest,
		RoleCustomer,
		RoleVendor,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, role.IsValid()
}
