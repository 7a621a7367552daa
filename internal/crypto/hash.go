package crypto

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a password using bcrypt with the given cost factor.
// A cost outside bcrypt's supported range falls back to the default cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword checks whether a password matches the given bcrypt hash.
// Any mismatch, including a malformed hash, is reported as no-match.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
