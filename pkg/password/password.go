// Package password hashes and verifies user credentials. New hashes are
// always bcrypt; verification also accepts the legacy passlib
// pbkdf2-sha256 format so existing accounts keep working.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const maxPasswordBytes = 72

type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a salted bcrypt hash. Passwords longer than 72 bytes of
// UTF-8 are truncated silently; this is an explicit contract, entropy past
// 72 bytes is lost.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compares a plain password against a stored hash. It never panics
// on a malformed stored hash; it just reports false.
func (h *Hasher) Verify(password, hashed string) bool {
	if strings.HasPrefix(hashed, "$pbkdf2-sha256$") {
		return verifyPBKDF2SHA256(truncate(password), hashed)
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), truncate(password)) == nil
}

// truncate cuts the password at 72 bytes, dropping a trailing partial
// UTF-8 sequence the way a lossy decode would.
func truncate(password string) []byte {
	b := []byte(password)
	if len(b) <= maxPasswordBytes {
		return b
	}
	b = b[:maxPasswordBytes]
	for len(b) > 0 && !utf8.Valid(b) {
		b = b[:len(b)-1]
	}
	return b
}

// verifyPBKDF2SHA256 checks a passlib-style hash:
// $pbkdf2-sha256$<rounds>$<salt>$<checksum>, salt and checksum in
// adapted base64 ("." instead of "+", no padding).
func verifyPBKDF2SHA256(password []byte, hashed string) bool {
	parts := strings.Split(hashed, "$")
	if len(parts) != 5 || parts[1] != "pbkdf2-sha256" {
		return false
	}

	rounds, err := strconv.Atoi(parts[2])
	if err != nil || rounds <= 0 {
		return false
	}

	salt, err := adaptedBase64Decode(parts[3])
	if err != nil {
		return false
	}
	checksum, err := adaptedBase64Decode(parts[4])
	if err != nil || len(checksum) == 0 {
		return false
	}

	derived := pbkdf2.Key(password, salt, rounds, len(checksum), sha256.New)
	return subtle.ConstantTimeCompare(derived, checksum) == 1
}

func adaptedBase64Decode(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.ReplaceAll(s, ".", "+"))
}
