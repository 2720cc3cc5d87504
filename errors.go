package titulacion

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCredentials = "auth_invalid_credentials"
	TextCodeTokenExpired       = "auth_token_expired"
	TextCodeTokenMalformed     = "auth_token_malformed"
	TextCodeUserExists         = "usuario_email_exists"
	TextCodeUserNotFound       = "usuario_not_found"
	TextCodeInvalidHash        = "credential_hash_invalid"
)

// ErrInvalidCredentials is the single outward failure for login: unknown
// email and wrong password are indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is the internal mismatch result from the
// credential hasher. The provider maps it into ErrInvalidCredentials.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty secrets before hashing.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrInvalidCredentialHash signals a malformed stored hash. Unlike a
// mismatch this is a fault: it indicates data corruption in the directory.
var ErrInvalidCredentialHash = errors.New("stored credential hash is malformed", errors.CategoryInternal).
	WithTextCode(TextCodeInvalidHash)

// ErrTokenExpired is returned when a presented token is past its expiry.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers tampered, truncated, or otherwise unparseable
// tokens, including signature mismatches.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrUserExists is returned when registration collides with an existing
// institutional email.
var ErrUserExists = errors.New("el usuario ya existe", errors.CategoryConflict).
	WithTextCode(TextCodeUserExists).
	WithCode(errors.CodeConflict)

// NewUserNotFound builds a fresh not-found error so callers can attach
// metadata without mutating a shared sentinel.
func NewUserNotFound() *errors.Error {
	return errors.New("usuario no encontrado", errors.CategoryNotFound).
		WithTextCode(TextCodeUserNotFound).
		WithCode(errors.CodeNotFound)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsConflictError reports whether err carries the duplicate-email conflict.
func IsConflictError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Category == errors.CategoryConflict
}
