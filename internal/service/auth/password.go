package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the adaptive work factor used when the records were
// first created; raising it only affects newly hashed passwords.
const bcryptCost = 10

// PasswordHasher hashes plaintext passwords for storage.
type PasswordHasher interface {
	// Hash returns an adaptive hash of password with a fresh random salt.
	Hash(password string) (string, error)
}

// PasswordVerifier compares a stored hash against a plaintext candidate.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword.
	// The comparison is constant-time within the hashing library.
	Compare(hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher and PasswordVerifier using bcrypt.
type BcryptHasher struct{}

// NewBcryptHasher creates a new BcryptHasher.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare implements PasswordVerifier.
func (h *BcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
