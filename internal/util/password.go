package util

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength   = 16
	hashLength   = 32
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var ErrEmptyPassword = errors.New("password cannot be empty")

// PasswordCredential is what an account stores instead of its password:
// an argon2id key and the random salt it was derived with.
type PasswordCredential struct {
	Hash []byte
	Salt []byte
}

// NewPasswordCredential derives a credential with a fresh salt.
func NewPasswordCredential(password string) (PasswordCredential, error) {
	if password == "" {
		return PasswordCredential{}, ErrEmptyPassword
	}
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return PasswordCredential{}, err
	}
	return PasswordCredential{Hash: deriveKey(password, salt), Salt: salt}, nil
}

// Matches reports whether password derives to the stored hash. Empty or
// partial credentials never match.
func (c PasswordCredential) Matches(password string) bool {
	if password == "" || len(c.Salt) == 0 || len(c.Hash) != hashLength {
		return false
	}
	return subtle.ConstantTimeCompare(deriveKey(password, c.Salt), c.Hash) == 1
}

func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, hashLength)
}
