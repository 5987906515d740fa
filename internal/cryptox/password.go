// Package cryptox wraps password hashing for account credentials.
// Hashes are salted bcrypt digests; comparison is constant-time.
package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt rejects inputs longer than 72 bytes.
const maxPasswordLength = 72

var (
	ErrEmptyPassword    = errors.New("password must not be empty")
	ErrPasswordTooLong  = errors.New("password too long")
	ErrPasswordMismatch = errors.New("password does not match")
)

// HashPassword generates a salted bcrypt hash of the given password.
// The plaintext is never stored.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > maxPasswordLength {
		return "", ErrPasswordTooLong
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}

// ComparePasswordAndHash validates that the given cleartext password
// matches the stored hash. Returns ErrPasswordMismatch on mismatch.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}
