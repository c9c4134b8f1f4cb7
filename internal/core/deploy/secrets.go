package deploy

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"io"
)

// =============================================================================
// Secret Generation
// =============================================================================

// secretLen is the raw byte length of generated secrets (256 bits).
const secretLen = 32

// GenerateEncryptionKey returns 32 random bytes, base64-encoded, suitable
// for use as an AES-256 key by the deployed application.
func GenerateEncryptionKey() (string, error) {
	raw := make([]byte, secretLen)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// GenerateSharedSecret returns 32 random bytes, hex-encoded, used as the
// shared authentication token between the private and public instances.
func GenerateSharedSecret() (string, error) {
	raw := make([]byte, secretLen)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
