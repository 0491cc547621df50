package security

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher verifies passwords against stored bcrypt hashes.
// Hashing happens wherever users are provisioned, never here.
type BcryptHasher struct{}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
