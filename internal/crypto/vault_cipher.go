// Package crypto seals password-entry secrets with AES-256-GCM before they
// reach the store. The key comes from configuration; without one the server
// falls back to storing whatever opaque string the caller supplied.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
)

const KeySize = 32

var ErrInvalidKey = errors.New("vault key must be 32 bytes")

type VaultCipher struct {
	aead cipher.AEAD
}

func NewVaultCipher(key []byte) (*VaultCipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &VaultCipher{aead: aead}, nil
}

// Seal encrypts plain and returns base64(nonce || ciphertext).
func (v *VaultCipher) Seal(plain string) (string, error) {
	nonce := make([]byte, v.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := v.aead.Seal(nonce, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal. It fails on truncated input, a foreign key, or any
// tampering with the ciphertext.
func (v *VaultCipher) Open(sealed string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}
	if len(data) < v.aead.NonceSize() {
		return "", errors.New("sealed value too short")
	}
	nonce, ciphertext := data[:v.aead.NonceSize()], data[v.aead.NonceSize():]
	plain, err := v.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
