package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

var (
	// ErrMalformedEnvelope is returned when an envelope is not valid base64
	// or is shorter than a nonce.
	ErrMalformedEnvelope = errors.New("malformed custody envelope")
	// ErrEnvelopeRejected is returned when GCM authentication fails: wrong key
	// or tampered ciphertext.
	ErrEnvelopeRejected = errors.New("custody envelope rejected")
)

const custodyKDFInfo = "casino-wallet custody v1"

// AESKeyCustody implements ports.KeyCustody using AES-256-GCM.
// Envelope layout: base64(nonce(12) || ciphertext || tag).
type AESKeyCustody struct {
	aead cipher.AEAD
}

// NewAESKeyCustody builds the custody from process configuration.
// A 64-character hex key is used as the raw AES-256 key; any other
// non-empty value is treated as a passphrase and stretched with HKDF-SHA256.
func NewAESKeyCustody(key string) (*AESKeyCustody, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("custody key is empty")
	}

	raw, err := deriveCustodyKey(key)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return &AESKeyCustody{aead: aead}, nil
}

func deriveCustodyKey(key string) ([]byte, error) {
	if len(key) == 64 {
		if raw, err := hex.DecodeString(key); err == nil {
			return raw, nil
		}
	}
	raw := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(key), nil, []byte(custodyKDFInfo)), raw); err != nil {
		return nil, fmt.Errorf("deriving custody key: %w", err)
	}
	return raw, nil
}

// Encrypt seals secret under a fresh random nonce.
func (c *AESKeyCustody) Encrypt(secret string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(secret), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an envelope produced by Encrypt.
func (c *AESKeyCustody) Decrypt(envelope string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize+c.aead.Overhead() {
		return "", fmt.Errorf("%w: envelope too short", ErrMalformedEnvelope)
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEnvelopeRejected, err)
	}
	return string(plaintext), nil
}
