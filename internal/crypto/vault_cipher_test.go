package crypto

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, KeySize)
}

func TestVaultCipherRoundTrip(t *testing.T) {
	v, err := NewVaultCipher(testKey(0x01))
	require.NoError(t, err)

	for _, plain := range []string{"", "hunter2", "päßwörd with ünicode"} {
		sealed, err := v.Seal(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, sealed)

		got, err := v.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	}
}

func TestVaultCipherSealIsNonDeterministic(t *testing.T) {
	v, err := NewVaultCipher(testKey(0x01))
	require.NoError(t, err)

	a, err := v.Seal("secret")
	require.NoError(t, err)
	b, err := v.Seal("secret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "fresh nonce per seal")
}

func TestVaultCipherRejectsBadKey(t *testing.T) {
	_, err := NewVaultCipher([]byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = NewVaultCipher(bytes.Repeat([]byte{0x01}, KeySize+1))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestVaultCipherWrongKeyFails(t *testing.T) {
	v1, err := NewVaultCipher(testKey(0x01))
	require.NoError(t, err)
	v2, err := NewVaultCipher(testKey(0x02))
	require.NoError(t, err)

	sealed, err := v1.Seal("secret")
	require.NoError(t, err)

	_, err = v2.Open(sealed)
	assert.Error(t, err)
}

func TestVaultCipherTamperFails(t *testing.T) {
	v, err := NewVaultCipher(testKey(0x01))
	require.NoError(t, err)

	sealed, err := v.Seal("secret")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff

	_, err = v.Open(base64.StdEncoding.EncodeToString(raw))
	assert.Error(t, err)
}

func TestVaultCipherRejectsMalformedInput(t *testing.T) {
	v, err := NewVaultCipher(testKey(0x01))
	require.NoError(t, err)

	_, err = v.Open("not base64 !!")
	assert.Error(t, err)

	// valid base64 but shorter than a nonce
	_, err = v.Open(base64.StdEncoding.EncodeToString([]byte("abc")))
	assert.Error(t, err)
}
