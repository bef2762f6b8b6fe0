//go:build unit

package crypt

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const TestPassword = "Str0ngPass!"

func TestHashPassword(t *testing.T) {
	t.Run("hash should never equal plaintext", func(t *testing.T) {
		hashedPassword, err := HashPassword(TestPassword)

		assert.NoError(t, err)
		assert.NotEqual(t, TestPassword, hashedPassword)
	})

	t.Run("repeated calls should produce different hashes", func(t *testing.T) {
		firstHash, err := HashPassword(TestPassword)
		require.NoError(t, err)

		secondHash, err := HashPassword(TestPassword)
		require.NoError(t, err)

		assert.NotEqual(t, firstHash, secondHash)
	})

	t.Run("hash should carry the fixed work factor", func(t *testing.T) {
		hashedPassword, err := HashPassword(TestPassword)
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(hashedPassword))

		assert.NoError(t, err)
		assert.Equal(t, 12, cost)
	})
}

func TestCheckPassword(t *testing.T) {
	t.Run("matching password should verify", func(t *testing.T) {
		hashedPassword, err := HashPassword(TestPassword)
		require.NoError(t, err)

		assert.True(t, CheckPassword(TestPassword, hashedPassword))
	})

	t.Run("wrong password should not verify", func(t *testing.T) {
		hashedPassword, err := HashPassword(TestPassword)
		require.NoError(t, err)

		assert.False(t, CheckPassword("wrong-password", hashedPassword))
	})

	t.Run("malformed hash should fail closed", func(t *testing.T) {
		assert.False(t, CheckPassword(TestPassword, "not-a-bcrypt-hash"))
	})
}

func TestGenerateOpaqueToken(t *testing.T) {
	t.Run("token should be 256 bits hex encoded", func(t *testing.T) {
		token, err := GenerateOpaqueToken()

		assert.NoError(t, err)
		assert.Len(t, token, 64)

		decoded, err := hex.DecodeString(token)
		assert.NoError(t, err)
		assert.Len(t, decoded, 32)
	})

	t.Run("consecutive tokens should differ", func(t *testing.T) {
		firstToken, err := GenerateOpaqueToken()
		require.NoError(t, err)

		secondToken, err := GenerateOpaqueToken()
		require.NoError(t, err)

		assert.NotEqual(t, firstToken, secondToken)
	})
}
