package utils

import "golang.org/x/crypto/bcrypt"

// Stored credentials use a fixed bcrypt cost. Raising it only affects new
// hashes; existing ones keep the cost they were minted with.
const bcryptCost = 12

// HashPassword derives the bcrypt hash stored in users.password_hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword reports whether password matches the stored hash. Any
// bcrypt failure reads as a mismatch, so a malformed hash can never log in.
func ComparePassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
