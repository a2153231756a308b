// Package vault encrypts derived private keys at rest. Each blob carries its
// own random scrypt salt and GCM nonce, so two encryptions of the same key
// never produce the same ciphertext.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

const (
	saltSize = 16
	keySize  = 32 // AES-256

	// scrypt parameters, interactive-login strength. N is a CPU/memory
	// cost knob; changing it invalidates nothing since the salt-derived
	// key is recomputed per blob.
	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

// ErrDecryptionFailed is returned when a blob cannot be authenticated, which
// covers both a wrong passphrase and a tampered ciphertext.
var ErrDecryptionFailed = errors.New("vault: decryption failed")

var randomRead = rand.Read

// Vault wraps a passphrase-derived AES-256-GCM cipher.
type Vault struct {
	passphrase []byte
}

// New creates a vault from the operator passphrase.
func New(passphrase string) (*Vault, error) {
	if passphrase == "" {
		return nil, errors.New("vault: passphrase must not be empty")
	}
	return &Vault{passphrase: []byte(passphrase)}, nil
}

// Encrypt seals plaintext and returns hex(salt || nonce || ciphertext).
// The GCM tag is appended to the ciphertext by Seal.
func (v *Vault) Encrypt(plaintext []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := randomRead(salt); err != nil {
		return "", fmt.Errorf("vault: failed to generate salt: %w", err)
	}

	gcm, err := v.cipherFor(salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := randomRead(nonce); err != nil {
		return "", fmt.Errorf("vault: failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)

	blob := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, sealed...)
	return hex.EncodeToString(blob), nil
}

// Decrypt opens a blob produced by Encrypt. The caller owns the returned
// plaintext and should zero it as soon as it is no longer needed.
func (v *Vault) Decrypt(blob string) ([]byte, error) {
	raw, err := hex.DecodeString(blob)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	if len(raw) < saltSize {
		return nil, ErrDecryptionFailed
	}
	salt := raw[:saltSize]

	gcm, err := v.cipherFor(salt)
	if err != nil {
		return nil, err
	}

	rest := raw[saltSize:]
	if len(rest) < gcm.NonceSize() {
		return nil, ErrDecryptionFailed
	}
	nonce, sealed := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func (v *Vault) cipherFor(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(v.passphrase, salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("vault: key derivation failed: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("vault: cipher init failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("vault: gcm init failed: %w", err)
	}
	return gcm, nil
}

// Zero overwrites a secret buffer in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
