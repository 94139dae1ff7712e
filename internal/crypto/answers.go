package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// ErrDecryption reports a ciphertext that cannot be decrypted: wrong length,
// non-hex input, or invalid padding. Callers must treat this as fatal for the
// value in question rather than falling back to a default interpretation.
var ErrDecryption = errors.New("answer decryption failed")

// Cipher encrypts and decrypts single answer values (option indices as
// strings) with AES-256-CBC. The wire format is hex(iv) || hex(ciphertext)
// with a random 16-byte IV per encryption, so encrypting the same plaintext
// twice yields different ciphertexts that both decrypt to the same value.
type Cipher struct {
	key []byte
}

// NewCipher derives a 32-byte AES key from the passphrase with SHA-256.
func NewCipher(passphrase string) *Cipher {
	key := sha256.Sum256([]byte(passphrase))
	return &Cipher{key: key[:]}
}

func (c *Cipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return hex.EncodeToString(iv) + hex.EncodeToString(out), nil
}

func (c *Cipher) Decrypt(encrypted string) (string, error) {
	// First 32 hex chars are the 16-byte IV.
	if len(encrypted) <= 2*aes.BlockSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecryption)
	}

	iv, err := hex.DecodeString(encrypted[:2*aes.BlockSize])
	if err != nil {
		return "", fmt.Errorf("%w: invalid iv: %v", ErrDecryption, err)
	}

	data, err := hex.DecodeString(encrypted[2*aes.BlockSize:])
	if err != nil {
		return "", fmt.Errorf("%w: invalid ciphertext: %v", ErrDecryption, err)
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext length not a block multiple", ErrDecryption)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)

	plain, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return string(plain), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("invalid padding byte")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("inconsistent padding")
		}
	}
	return data[:len(data)-n], nil
}
