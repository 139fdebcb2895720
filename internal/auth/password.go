package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hashing cost for accounts.password_hash. Raising it only affects newly
// stored hashes; existing ones keep the cost they were created with.
const passwordHashCost = bcrypt.DefaultCost

// HashPassword derives the bcrypt hash stored for an account. bcrypt only
// keys on the first 72 bytes, so longer inputs are rejected rather than
// silently truncated.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is required")
	}
	if len(password) > 72 {
		return "", errors.New("password exceeds 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks a login attempt against the stored hash. Any
// mismatch, including an account with no hash at all, is one error.
func VerifyPassword(hash, password string) error {
	if hash == "" || password == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
