package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzasiddiqui/bazaarline-backend/pkg/config"
)

func testHasher() *Hasher {
	// low-cost parameters keep the suite fast
	return NewHasher(config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
}

func TestHashVerifyRoundtrip(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := h.Verify("s3cret-pass", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong-pass", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	h := testHasher()

	a, err := h.Hash("same-pass")
	require.NoError(t, err)
	b, err := h.Hash("same-pass")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyHonoursEmbeddedParams(t *testing.T) {
	encoded, err := testHasher().Hash("pass")
	require.NoError(t, err)

	// verifier configured differently still matches
	other := NewHasher(config.PasswordConfig{
		ArgonMemoryKB:    16384,
		ArgonTime:        2,
		ArgonParallelism: 2,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	ok, err := other.Verify("pass", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyMalformedDigest(t *testing.T) {
	h := testHasher()

	_, err := h.Verify("pass", "not-a-digest")
	assert.Error(t, err)

	_, err = h.Verify("pass", "$bcrypt$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA")
	assert.Error(t, err)
}
