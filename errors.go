package userdir

import "errors"

// ErrUserNotFound is the error we return for non found users
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidCredentials is the uniform login failure, regardless of
// whether the email was unknown or the password wrong
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrMismatchedHashAndPassword password does not match the stored hash
var ErrMismatchedHashAndPassword = errors.New("mismatched password and hash")

// ErrNoEmptyString we refuse to hash empty passwords
var ErrNoEmptyString = errors.New("password must not be empty")

// ErrTokenExpired the token's exp claim is in the past
var ErrTokenExpired = errors.New("token is expired")

// ErrTokenMalformed covers bad signatures, wrong algorithms, and
// payloads we cannot decode
var ErrTokenMalformed = errors.New("token is malformed")

// ErrUserNotCreated the insert did not affect exactly one row
var ErrUserNotCreated = errors.New("user was not created")

// IsNotFound will check for missing record errors
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}
