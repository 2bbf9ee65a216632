package providers

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	domainproviders "github.com/drivelane/rental-backend/internal/domain/providers"
)

// BcryptHashProvider implements the HashProvider interface with bcrypt
type BcryptHashProvider struct {
	cost int
}

// NewBcryptHashProvider creates a hash provider with the default bcrypt cost
func NewBcryptHashProvider() domainproviders.HashProvider {
	return &BcryptHashProvider{cost: bcrypt.DefaultCost}
}

// GenerateHash hashes a plain-text password
func (p *BcryptHashProvider) GenerateHash(payload string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(payload), p.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CompareHash checks a plain-text password against a hash
func (p *BcryptHashProvider) CompareHash(payload, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(payload)) == nil
}
