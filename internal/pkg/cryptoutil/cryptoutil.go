package cryptoutil

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLen     = 32
	kdfRounds  = 4096
	nonceSize  = 12
	tokenBytes = 32
)

// Key derivation salt is a module constant: two processes must derive the
// same AES key from the same string key, or records written by one instance
// would be unreadable by another.
var kdfSalt = []byte("campusgate.credential.v1")

func deriveKey(key string) []byte {
	return pbkdf2.Key([]byte(key), kdfSalt, kdfRounds, keyLen, sha256.New)
}

// Encrypt seals value under the given string key with AES-256-GCM and
// returns hex(nonce || ciphertext). It returns "" on any failure; callers
// treat an empty result as "no ciphertext available".
func Encrypt(key, value string) string {
	block, err := aes.NewCipher(deriveKey(key))
	if err != nil {
		return ""
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return ""
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return ""
	}

	sealed := aesgcm.Seal(nonce, nonce, []byte(value), nil)
	return hex.EncodeToString(sealed)
}

// Decrypt reverses Encrypt. A wrong key, malformed hex, or a tampered
// ciphertext all yield "", never an error: the credential protocol uses the
// empty result as its "does not match" signal.
func Decrypt(key, value string) string {
	raw, err := hex.DecodeString(value)
	if err != nil || len(raw) <= nonceSize {
		return ""
	}

	block, err := aes.NewCipher(deriveKey(key))
	if err != nil {
		return ""
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return ""
	}

	plain, err := aesgcm.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return ""
	}
	return string(plain)
}

// Hash returns the sha256 hex digest of value.
func Hash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// NewToken mints a fresh 256-bit session token, hex-encoded.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
