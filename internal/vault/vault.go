// Package vault encrypts JSON-serializable values with a passphrase.
//
// Blobs have the form "v1.<salt>.<sealed>" where both parts are raw URL
// base64. The key is derived with scrypt and the payload sealed with
// XChaCha20-Poly1305, so a wrong passphrase fails authentication instead of
// yielding garbage.
package vault

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// Method identifies the scheme in versioned entries.
const Method = "xchacha20poly1305+scrypt"

const (
	prefix  = "v1"
	saltLen = 16

	// scrypt cost parameters (N=2^15, r=8, p=1).
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

var (
	// ErrDecrypt is returned when the passphrase is wrong or the blob was tampered with.
	ErrDecrypt = errors.New("decryption failed: wrong key or corrupted data")
	// ErrFormat is returned when the blob is not a vault blob.
	ErrFormat = errors.New("malformed encrypted blob")
)

var b64 = base64.RawURLEncoding

// Encrypt serializes v to JSON and seals it with a key derived from passphrase.
func Encrypt(v any, passphrase string) (string, error) {
	if passphrase == "" {
		return "", fmt.Errorf("encrypt: passphrase is required")
	}
	plain, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encrypt: marshal: %w", err)
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("encrypt: salt: %w", err)
	}
	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plain)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("encrypt: nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, plain, []byte(prefix))

	return prefix + "." + b64.EncodeToString(salt) + "." + b64.EncodeToString(sealed), nil
}

// Decrypt opens blob with passphrase and unmarshals the JSON payload into out.
func Decrypt(blob, passphrase string, out any) error {
	parts := strings.Split(strings.TrimSpace(blob), ".")
	if len(parts) != 3 || parts[0] != prefix {
		return ErrFormat
	}
	salt, err := b64.DecodeString(parts[1])
	if err != nil || len(salt) != saltLen {
		return ErrFormat
	}
	sealed, err := b64.DecodeString(parts[2])
	if err != nil {
		return ErrFormat
	}

	aead, err := newAEAD(passphrase, salt)
	if err != nil {
		return err
	}
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return ErrFormat
	}
	nonce, ct := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ct, []byte(prefix))
	if err != nil {
		return ErrDecrypt
	}

	if err := json.Unmarshal(plain, out); err != nil {
		return fmt.Errorf("decrypt: unmarshal: %w", err)
	}
	return nil
}

func newAEAD(passphrase string, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return aead, nil
}
