//go:build !race

package auth

// Work factor for password hashing.
func passwordHashCost() int {
	return 12
}
