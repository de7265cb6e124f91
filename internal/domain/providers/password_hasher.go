package providers

import "errors"

// ErrPasswordMismatch is returned by Compare when the password does not match
var ErrPasswordMismatch = errors.New("password does not match")

// PasswordHasher hashes and verifies passwords with a salted one-way function
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns nil when password matches hash
	Compare(hash, password string) error
}
