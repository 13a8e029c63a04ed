package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Length(t *testing.T) {
	nonce := []byte("client-entropy-0123456789abcdef0")
	entropy := []byte("server-entropy-0123456789abcdef0")

	for _, bits := range []int{8, 128, 160, 192, 256, 512} {
		key, err := DeriveKey(nonce, entropy, bits)
		require.NoError(t, err)
		assert.Len(t, key, bits/8, "key size %d bits", bits)
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	nonce := []byte{0x01, 0x02, 0x03}
	entropy := []byte{0xaa, 0xbb, 0xcc}

	key1, err := DeriveKey(nonce, entropy, 256)
	require.NoError(t, err)
	key2, err := DeriveKey(nonce, entropy, 256)
	require.NoError(t, err)

	assert.Equal(t, key1, key2)
}

func TestDeriveKey_PrefixProperty(t *testing.T) {
	// P_SHA1 is a stream: a shorter key is a prefix of a longer one
	// derived from the same inputs.
	nonce := []byte("nonce")
	entropy := []byte("entropy")

	short, err := DeriveKey(nonce, entropy, 128)
	require.NoError(t, err)
	long, err := DeriveKey(nonce, entropy, 256)
	require.NoError(t, err)

	assert.Equal(t, short, long[:16])
}

func TestDeriveKey_InputSensitivity(t *testing.T) {
	key1, err := DeriveKey([]byte("nonce-a"), []byte("entropy"), 256)
	require.NoError(t, err)
	key2, err := DeriveKey([]byte("nonce-b"), []byte("entropy"), 256)
	require.NoError(t, err)
	key3, err := DeriveKey([]byte("nonce-a"), []byte("other"), 256)
	require.NoError(t, err)

	assert.NotEqual(t, key1, key2)
	assert.NotEqual(t, key1, key3)
}

func TestDeriveKey_InvalidKeySize(t *testing.T) {
	_, err := DeriveKey([]byte("a"), []byte("b"), 0)
	assert.Error(t, err)

	_, err = DeriveKey([]byte("a"), []byte("b"), -256)
	assert.Error(t, err)

	_, err = DeriveKey([]byte("a"), []byte("b"), 100)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "byte aligned")
}
