package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength    = 16
	keyLength     = 32
	hashIters     = 120000
	tokenLength   = 32
	hashSeparator = "$"
)

// HashPassword derives a PBKDF2-SHA256 hash with a fresh random salt and
// returns it as "hexSalt$hexHash". Plaintext is never stored.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, hashIters, keyLength, sha256.New)
	return hex.EncodeToString(salt) + hashSeparator + hex.EncodeToString(key), nil
}

// CheckPassword recomputes the derived key and compares in constant time.
func CheckPassword(stored, password string) bool {
	parts := strings.SplitN(stored, hashSeparator, 2)
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(parts[1])
	if err != nil || len(expected) == 0 {
		return false
	}
	key := pbkdf2.Key([]byte(password), salt, hashIters, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(key, expected) == 1
}

// NewSessionToken returns an unguessable opaque token. The raw value is shown
// to the caller exactly once and only its row in the sessions table can
// authenticate it afterwards.
func NewSessionToken() (string, error) {
	raw := make([]byte, tokenLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
