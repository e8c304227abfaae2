// Package fieldcrypt encrypts, decrypts, and masks individual sensitive
// scalar fields (SSNs, bank account numbers) independently of the record
// shape they live in.
//
// Values are stored either as self-describing ciphertext tokens or, for rows
// written before encryption existed, as raw plaintext. The token marker makes
// the two distinguishable without catching errors: Reveal is the normal-branch
// replacement for try-decrypt-catch-fallback.
package fieldcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	// tokenPrefix marks a value as ciphertext produced by this codec. The
	// version segment allows a future key or cipher rotation to coexist with
	// old tokens.
	tokenPrefix = "enc:v1:"

	keySize  = 32
	hkdfInfo = "lendfold-field-key"
)

var (
	// ErrNotEncrypted reports that a value carries no ciphertext marker.
	// Callers treat this as legacy plaintext, not as a failure.
	ErrNotEncrypted = errors.New("value is not in encrypted format")

	// ErrCiphertextInvalid reports a value that carries the marker but cannot
	// be decoded or authenticated. Read paths fall back to masking the raw
	// value; they never surface this to the client.
	ErrCiphertextInvalid = errors.New("malformed ciphertext")
)

// Codec performs AES-256-GCM field encryption with a key derived from the
// configured master secret via HKDF-SHA256.
type Codec struct {
	aead cipher.AEAD
}

// New derives the data key from the master secret and prepares the AEAD.
func New(masterSecret string) (*Codec, error) {
	if masterSecret == "" {
		return nil, errors.New("fieldcrypt: master secret is required")
	}
	key := make([]byte, keySize)
	kdf := hkdf.New(sha256.New, []byte(masterSecret), nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("fieldcrypt: derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("fieldcrypt: create GCM: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// IsEncrypted reports whether value is in the codec's token format. Write
// paths must consult this before Encrypt: encrypting an existing token would
// corrupt it into double ciphertext.
func (c *Codec) IsEncrypted(value string) bool {
	return strings.HasPrefix(value, tokenPrefix)
}

// Encrypt produces a ciphertext token for the plaintext. The caller is
// responsible for the IsEncrypted check; Encrypt does not second-guess its
// input.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("fieldcrypt: generate nonce: %w", err)
	}
	ciphertext := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	return tokenPrefix +
		base64.RawURLEncoding.EncodeToString(nonce) + ":" +
		base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. A value without the marker yields ErrNotEncrypted;
// a marked value that fails decoding or authentication yields
// ErrCiphertextInvalid.
func (c *Codec) Decrypt(token string) (string, error) {
	if !c.IsEncrypted(token) {
		return "", ErrNotEncrypted
	}
	parts := strings.Split(strings.TrimPrefix(token, tokenPrefix), ":")
	if len(parts) != 2 {
		return "", ErrCiphertextInvalid
	}
	nonce, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil || len(nonce) != c.aead.NonceSize() {
		return "", ErrCiphertextInvalid
	}
	ciphertext, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", ErrCiphertextInvalid
	}
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrCiphertextInvalid
	}
	return string(plaintext), nil
}

// Reveal returns the plaintext behind a stored value. Tokens are decrypted;
// anything else, including a token that fails to decrypt, is returned as-is
// and reported as legacy plaintext. This is the read-path branch that lets
// pre-encryption rows round-trip through masking without raising errors.
func (c *Codec) Reveal(value string) (plaintext string, wasEncrypted bool) {
	if !c.IsEncrypted(value) {
		return value, false
	}
	decrypted, err := c.Decrypt(value)
	if err != nil {
		return value, false
	}
	return decrypted, true
}
