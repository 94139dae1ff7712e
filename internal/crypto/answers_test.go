package crypto

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipher_RoundTrip(t *testing.T) {
	c := NewCipher("test-passphrase")

	for idx := 0; idx < 4; idx++ {
		plain := strconv.Itoa(idx)
		encrypted, err := c.Encrypt(plain)
		require.NoError(t, err)

		decrypted, err := c.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, plain, decrypted)
	}
}

func TestCipher_FreshIVPerEncryption(t *testing.T) {
	c := NewCipher("test-passphrase")

	first, err := c.Encrypt("2")
	require.NoError(t, err)
	second, err := c.Encrypt("2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two encryptions must not share an IV")

	for _, encrypted := range []string{first, second} {
		decrypted, err := c.Decrypt(encrypted)
		require.NoError(t, err)
		assert.Equal(t, "2", decrypted)
	}
}

func TestCipher_WireFormat(t *testing.T) {
	c := NewCipher("test-passphrase")

	encrypted, err := c.Encrypt("3")
	require.NoError(t, err)

	// 32 hex chars of IV plus at least one whole hex-encoded block.
	assert.GreaterOrEqual(t, len(encrypted), 32+32)
	assert.Equal(t, 0, (len(encrypted)-32)%32)
}

func TestCipher_DecryptMalformed(t *testing.T) {
	c := NewCipher("test-passphrase")

	cases := map[string]string{
		"empty":            "",
		"too short":        "abcdef",
		"non-hex iv":       "zz" + string(make([]byte, 62)),
		"non-hex body":     "00112233445566778899aabbccddeeff" + "not-hex-at-all-not-hex-at-all!!!",
		"odd block length": "00112233445566778899aabbccddeeff" + "aabb",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decrypt(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecryption)
		})
	}
}

func TestCipher_DecryptWithWrongKeyFails(t *testing.T) {
	encrypted, err := NewCipher("right-key").Encrypt("1")
	require.NoError(t, err)

	decrypted, err := NewCipher("wrong-key").Decrypt(encrypted)
	if err == nil {
		// CBC with a wrong key almost always breaks the padding; on the
		// rare survivor the plaintext still must not match.
		assert.NotEqual(t, "1", decrypted)
	} else {
		assert.ErrorIs(t, err, ErrDecryption)
	}
}
