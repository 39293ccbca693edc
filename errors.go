package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes attached to structured errors so API clients can branch on
// failures without string matching messages.
const (
	TextCodeInvalidCreds    = "INVALID_CREDENTIALS"
	TextCodeTooManyAttempts = "TOO_MANY_LOGIN_ATTEMPTS"
	TextCodeNoToken         = "NO_TOKEN"
	TextCodeTokenExpired    = "TOKEN_EXPIRED"
	TextCodeTokenMalformed  = "TOKEN_MALFORMED"
	TextCodeUserNotFound    = "USER_NOT_FOUND"
	TextCodeAuthFailed      = "AUTH_FAILED"
	TextCodeEmptyPassword   = "EMPTY_PASSWORD"
	TextCodeDataParseError  = "DATA_PARSE_ERROR"
	TextCodeClaimsError     = "CLAIMS_MAPPING_ERROR"
)

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound)

// ErrMismatchedHashAndPassword is returned when credentials do not match.
// Malformed hashes degrade to this same error so callers cannot tell the
// two cases apart.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds)

// ErrTooManyLoginAttempts is returned when an account is in its login
// attempt cool down window
var ErrTooManyLoginAttempts = errors.New("too many login attempts", errors.CategoryRateLimit).
	WithTextCode(TextCodeTooManyAttempts)

// ErrNoToken is returned when a request carries no bearer credential, or
// one using the wrong scheme
var ErrNoToken = errors.New("No token provided", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeNoToken)

// ErrTokenExpired flags session tokens past their expiry
var ErrTokenExpired = errors.New("Invalid token", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed covers bad signatures, garbled payloads, and claims
// that do not match the expected shape
var ErrTokenMalformed = errors.New("Invalid token", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenMalformed)

// ErrUserNotFound is returned when a valid token resolves to no active
// user record
var ErrUserNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound).
	WithTextCode(TextCodeUserNotFound)

// ErrAuthenticationFailed is the generic failure reported when the user
// store is unreachable. It deliberately carries no internals.
var ErrAuthenticationFailed = errors.New("Authentication failed", errors.CategoryInternal).
	WithTextCode(TextCodeAuthFailed)

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword)

// ErrUnableToMapClaims is returned when a token payload is missing the
// expected identity fields
var ErrUnableToMapClaims = errors.New("unable to map claims", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeClaimsError)

// ErrUnableToParseData is a parse error
var ErrUnableToParseData = errors.New("unable to parse data", errors.CategoryBadInput).
	WithTextCode(TextCodeDataParseError)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == TextCodeTokenExpired {
		return true
	}

	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == TextCodeTokenMalformed {
		return true
	}

	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
