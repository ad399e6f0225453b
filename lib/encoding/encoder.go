// Package encoding packs component option maps into attribute-safe strings.
//
// Two modes are supported:
//   - Signed: msgpack + base64 + truncated HMAC. Readable, tamper-proof.
//   - Sealed: msgpack + AES-256-GCM. Opaque.
//
// The signed form always contains a '.' separator and the sealed form never
// does (the raw URL base64 alphabet has no '.'), so Decode detects the mode.
package encoding

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Sentinel errors returned by Decode.
var (
	ErrInvalidFormat    = errors.New("pulse: invalid props format")
	ErrSignatureInvalid = errors.New("pulse: props signature verification failed")
	ErrDecryptFailed    = errors.New("pulse: props decryption failed")
)

const sigLen = 16

// Encoder encodes and decodes option maps under one key.
type Encoder struct {
	key []byte
	gcm cipher.AEAD
}

// NewEncoder creates an encoder. Keys shorter than 32 bytes are stretched
// with SHA-256.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Encoder{key: key, gcm: gcm}, nil
}

// EncodeOptions packs opts. sealed selects AES-GCM over signing.
func (e *Encoder) EncodeOptions(opts map[string]string, sealed bool) (string, error) {
	if opts == nil {
		opts = map[string]string{}
	}
	packed, err := msgpack.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("pack options: %w", err)
	}
	if sealed {
		return e.seal(packed)
	}
	return e.sign(packed), nil
}

// DecodeOptions reverses EncodeOptions for either mode.
func (e *Encoder) DecodeOptions(encoded string) (map[string]string, error) {
	var (
		packed []byte
		err    error
	)
	if strings.Contains(encoded, ".") {
		packed, err = e.verify(encoded)
	} else {
		packed, err = e.open(encoded)
	}
	if err != nil {
		return nil, err
	}

	var opts map[string]string
	if err := msgpack.Unmarshal(packed, &opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if opts == nil {
		opts = map[string]string{}
	}
	return opts, nil
}

// sign produces base64(data) + "." + base64(hmac[:16]).
func (e *Encoder) sign(data []byte) string {
	mac := hmac.New(sha256.New, e.key)
	mac.Write(data)
	return base64.RawURLEncoding.EncodeToString(data) + "." +
		base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:sigLen])
}

func (e *Encoder) verify(encoded string) ([]byte, error) {
	body, sig, ok := strings.Cut(encoded, ".")
	if !ok {
		return nil, ErrInvalidFormat
	}
	data, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	mac := hmac.New(sha256.New, e.key)
	mac.Write(data)
	if !hmac.Equal(got, mac.Sum(nil)[:sigLen]) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

func (e *Encoder) seal(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(e.gcm.Seal(nonce, nonce, data, nil)), nil
}

func (e *Encoder) open(encoded string) ([]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	n := e.gcm.NonceSize()
	if len(raw) < n {
		return nil, ErrInvalidFormat
	}
	data, err := e.gcm.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return data, nil
}
