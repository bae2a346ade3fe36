package apiauth

import (
	"github.com/goliatone/go-errors"
)

// Text codes attached to structured errors so API layers can branch
// without string matching.
const (
	TextCodeInvalidCreds      = "INVALID_CREDENTIALS"
	TextCodeIdentityNotFound  = "IDENTITY_NOT_FOUND"
	TextCodeEmailTaken        = "EMAIL_TAKEN"
	TextCodeSessionNotFound   = "SESSION_NOT_FOUND"
	TextCodeSessionExpired    = "SESSION_EXPIRED"
	TextCodeResetTokenInvalid = "RESET_TOKEN_INVALID"
	TextCodeStorageFault      = "STORAGE_UNAVAILABLE"
)

// ErrIdentityNotFound is returned when no identity matches a lookup.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeIdentityNotFound).
	WithCode(errors.CodeNotFound)

// ErrMismatchedHashAndPassword is the single failure mode for credential
// verification. Unknown email and wrong password are indistinguishable.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty inputs where a value is mandatory.
var ErrNoEmptyString = errors.New("value cannot be an empty string", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrEmailTaken is returned when registering an email that already exists.
var ErrEmailTaken = errors.New("email is already registered", errors.CategoryConflict).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeConflict)

// ErrSessionNotFound is returned when a session token is absent or unknown.
var ErrSessionNotFound = errors.New("session not found", errors.CategoryAuth).
	WithTextCode(TextCodeSessionNotFound).
	WithCode(errors.CodeUnauthorized)

// ErrSessionExpired is returned when a session token is past its duration.
var ErrSessionExpired = errors.New("session expired", errors.CategoryAuth).
	WithTextCode(TextCodeSessionExpired).
	WithCode(errors.CodeUnauthorized)

// ErrResetTokenInvalid is returned when redeeming an unknown or already
// redeemed password reset token.
var ErrResetTokenInvalid = errors.New("reset token is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeResetTokenInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthenticated is the fail-closed result of strategy resolution: the
// request carries no credential proof that maps to a live identity.
var ErrUnauthenticated = errors.New("request is not authenticated", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is returned when a credential proof was presented but no
// identity could be resolved from it.
var ErrForbidden = errors.New("request identity could not be resolved", errors.CategoryAuth).
	WithCode(errors.CodeForbidden)

// WrapStorageError marks a persistence-layer fault. These propagate to the
// caller, they are never swallowed or retried here.
func WrapStorageError(err error, msg string) *errors.Error {
	return errors.Wrap(err, errors.CategoryInternal, msg).
		WithTextCode(TextCodeStorageFault).
		WithCode(errors.CodeInternal)
}

// IsStorageError reports whether err is a persistence-layer fault.
func IsStorageError(err error) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == TextCodeStorageFault
}
