package password

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/pbkdf2"
)

func TestHashAndVerify(t *testing.T) {
	hasher := NewHasher(4) // minimum bcrypt cost keeps the test fast

	hashed, err := hasher.Hash("s3cret-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hashed, "$2") {
		t.Errorf("expected bcrypt hash, got %q", hashed)
	}

	if !hasher.Verify("s3cret-password", hashed) {
		t.Error("correct password should verify")
	}
	if hasher.Verify("wrong-password", hashed) {
		t.Error("wrong password should not verify")
	}
}

func TestLongPasswordsTruncateConsistently(t *testing.T) {
	hasher := NewHasher(4)

	base := strings.Repeat("a", 72)
	hashed, err := hasher.Hash(base + "tail-that-is-dropped")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// Everything past 72 bytes is ignored, so any password sharing the
	// first 72 bytes verifies.
	if !hasher.Verify(base, hashed) {
		t.Error("first 72 bytes alone should verify")
	}
	if !hasher.Verify(base+"different-tail", hashed) {
		t.Error("different tail past 72 bytes should still verify")
	}
	if hasher.Verify(strings.Repeat("b", 72), hashed) {
		t.Error("different prefix should not verify")
	}
}

func TestTruncateDropsPartialUTF8(t *testing.T) {
	// 23 three-byte runes plus one more crosses the 72-byte boundary
	// mid-rune; the partial sequence must be dropped, not split.
	password := strings.Repeat("世", 24)
	got := truncate(password)
	if len(got) != 69 {
		t.Errorf("truncate() kept %d bytes, want 69", len(got))
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	hasher := NewHasher(4)

	malformed := []string{
		"",
		"not-a-hash",
		"$pbkdf2-sha256$",
		"$pbkdf2-sha256$abc$salt$checksum",
		"$pbkdf2-sha256$29000$!!!$!!!",
		"$pbkdf2-sha256$0$c2FsdA$c2FsdA",
	}
	for _, hash := range malformed {
		if hasher.Verify("password", hash) {
			t.Errorf("malformed hash %q should not verify", hash)
		}
	}
}

func TestVerifyLegacyPBKDF2(t *testing.T) {
	hasher := NewHasher(4)

	password := "legacy-password"
	salt := []byte("0123456789abcdef")
	rounds := 29000

	derived := pbkdf2.Key([]byte(password), salt, rounds, 32, sha256.New)
	legacyHash := fmt.Sprintf("$pbkdf2-sha256$%d$%s$%s",
		rounds, adaptedBase64Encode(salt), adaptedBase64Encode(derived))

	if !hasher.Verify(password, legacyHash) {
		t.Error("legacy pbkdf2 hash should verify with the right password")
	}
	if hasher.Verify("other-password", legacyHash) {
		t.Error("legacy pbkdf2 hash should reject a wrong password")
	}
}

func adaptedBase64Encode(b []byte) string {
	return strings.ReplaceAll(base64.RawStdEncoding.EncodeToString(b), "+", ".")
}
