package security

import (
	"crypto/rand"
	"encoding/hex"
)

// SecretSize is the length in bytes of generated CSRF secrets.
const SecretSize = 32

// GenerateSecret creates a random 32-byte secret, hex encoded.
func GenerateSecret() (string, error) {
	bytes := make([]byte, SecretSize)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// DecodeSecret turns a configured secret into key bytes. Hex strings are
// decoded; anything else is used as raw bytes.
func DecodeSecret(secret string) []byte {
	if key, err := hex.DecodeString(secret); err == nil {
		return key
	}
	return []byte(secret)
}
