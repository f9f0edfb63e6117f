package helper

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"topic-board/models"
)

const (
	defaultIterations = 200_000
	defaultKeyLen     = 32
	defaultSaltBytes  = 16
)

// PasswordManager derives, verifies and rotates password hashes using
// PBKDF2-HMAC-SHA256 with a per-user random salt. The iteration count is an
// intentional cost parameter; every call burns real CPU time.
type PasswordManager struct {
	Iterations int
	KeyLen     int
	SaltBytes  int
}

func NewPasswordManager() *PasswordManager {
	return &PasswordManager{
		Iterations: defaultIterations,
		KeyLen:     defaultKeyLen,
		SaltBytes:  defaultSaltBytes,
	}
}

// GenerateSalt returns length random bytes as a hex string. A non-positive
// length falls back to the configured default.
func (m *PasswordManager) GenerateSalt(length int) (string, error) {
	if length <= 0 {
		length = m.SaltBytes
	}
	salt := make([]byte, length)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(salt), nil
}

// HashPassword derives the key for password+salt and returns it hex-encoded.
// The same (password, salt) pair always yields the same hash.
func (m *PasswordManager) HashPassword(password, saltHex string) (string, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", models.ErrInvalidInput)
	}
	key := pbkdf2.Key([]byte(password), salt, m.Iterations, m.KeyLen, sha256.New)
	return hex.EncodeToString(key), nil
}

// VerifyPassword recomputes the hash and compares it against expectedHex in
// constant time. It reports only a boolean, never why the hashes differ.
func (m *PasswordManager) VerifyPassword(password, saltHex, expectedHex string) bool {
	computed, err := m.HashPassword(password, saltHex)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(expectedHex)) == 1
}

// ChangePassword verifies oldPassword against the stored material and, on
// success, returns a fresh salt and hash for newPassword. The old salt is
// never reused across rotations.
func (m *PasswordManager) ChangePassword(oldPassword, newPassword, saltHex, storedHex string) (string, string, error) {
	if !m.VerifyPassword(oldPassword, saltHex, storedHex) {
		return "", "", models.ErrInvalidCredential
	}
	newSalt, err := m.GenerateSalt(0)
	if err != nil {
		return "", "", err
	}
	newHash, err := m.HashPassword(newPassword, newSalt)
	if err != nil {
		return "", "", err
	}
	return newSalt, newHash, nil
}
