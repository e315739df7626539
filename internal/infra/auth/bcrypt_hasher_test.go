package auth

import (
	"strings"
	"testing"

	"authgate/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_FreshSaltPerCall(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("same-password")
	require.NoError(t, err)
	second, err := hasher.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("same-password", first))
	assert.True(t, hasher.Check("same-password", second))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPassword123!", hash))
	assert.False(t, hasher.Check("", hash))

	// Malformed hashes fail closed.
	assert.False(t, hasher.Check(password, "invalid_hash"))
	assert.False(t, hasher.Check(password, ""))
	assert.False(t, hasher.Check(password, password))
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	for _, password := range []string{"a", "hunter2", "Pässphräse123!", "with spaces and 🙂"} {
		t.Run(password, func(t *testing.T) {
			hash, err := hasher.Hash(password)
			require.NoError(t, err)

			assert.True(t, hasher.Check(password, hash))
			assert.False(t, hasher.Check(password+"x", hash))
		})
	}
}

func TestBcryptHasher_LongPasswordsAreTruncated(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	long := strings.Repeat("a", 73)

	hash, err := hasher.Hash(long)
	require.NoError(t, err)

	assert.True(t, hasher.Check(long, hash))
	assert.True(t, hasher.Check(long[:72], hash))
	assert.True(t, hasher.Check(long+"suffix", hash))
	assert.False(t, hasher.Check(long[:71], hash))

	multiByte := strings.Repeat("é", 100)
	hash, err = hasher.Hash(multiByte)
	require.NoError(t, err)
	assert.True(t, hasher.Check(multiByte, hash))
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want int
	}{
		{name: "configured", cfg: &config.Config{Auth: &config.AuthConfig{BcryptCost: 6}}, want: 6},
		{name: "missing auth section", cfg: &config.Config{}, want: bcrypt.DefaultCost},
		{name: "nil config", cfg: nil, want: bcrypt.DefaultCost},
		{name: "below minimum is clamped", cfg: &config.Config{Auth: &config.AuthConfig{BcryptCost: 1}}, want: bcrypt.MinCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewBcryptHasher(tt.cfg)

			hash, err := hasher.Hash("StrongPass123!")
			require.NoError(t, err)

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cost)
		})
	}
}
