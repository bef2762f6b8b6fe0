package crypt

import (
	"crypto/rand"
	"encoding/hex"
)

// opaqueTokenBytes gives 256 bits of entropy per token.
const opaqueTokenBytes = 32

// GenerateOpaqueToken returns an unguessable random string used as a
// one-time lookup key for email verification and password resets.
func GenerateOpaqueToken() (string, error) {
	buffer := make([]byte, opaqueTokenBytes)
	_, err := rand.Read(buffer)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(buffer), nil
}
