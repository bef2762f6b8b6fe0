package crypt

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost balances brute-force resistance against request latency.
const bcryptCost = 12

func HashPassword(plaintext string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hashedPassword), nil
}

// CheckPassword fails closed: a malformed stored hash reports a mismatch
// instead of surfacing an error to the caller.
func CheckPassword(plaintext, hashedPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plaintext))
	return err == nil
}
