package providers

// HashProvider defines the interface for password hashing
type HashProvider interface {
	// GenerateHash hashes a plain-text password
	GenerateHash(payload string) (string, error)

	// CompareHash checks a plain-text password against a hash
	CompareHash(payload, hashed string) bool
}
