// Package hash turns passwords into stored credentials and checks them.
package hash

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrFailedToHashPassword = errors.New("failed to hash password")

// Mode names a hasher in configuration.
type Mode string

const (
	ModeBcrypt Mode = "bcrypt"
	// ModePlain stores the credential as given. Existing data files that
	// were written without hashing need it.
	ModePlain Mode = "plain"
)

// Hasher produces and verifies stored credentials.
type Hasher interface {
	HashPassword(password string) (string, error)
	CheckPasswordHash(password, hash string) bool
}

// New returns the hasher for mode. An empty mode selects bcrypt.
func New(mode Mode) (Hasher, error) {
	switch mode {
	case "", ModeBcrypt:
		return NewHashService(), nil
	case ModePlain:
		return PlainHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}

type HashService struct {
	cost int
}

func NewHashService() *HashService {
	return &HashService{
		cost: bcrypt.DefaultCost,
	}
}

// NewHashServiceWithCost is meant for tests, where DefaultCost is slow.
func NewHashServiceWithCost(cost int) *HashService {
	return &HashService{cost: cost}
}

func (hs *HashService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hs.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashPassword, err)
	}
	return string(hash), nil
}

func (hs *HashService) CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PlainHasher compares credentials byte for byte.
type PlainHasher struct{}

func (PlainHasher) HashPassword(password string) (string, error) {
	return password, nil
}

func (PlainHasher) CheckPasswordHash(password, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(hash)) == 1
}
