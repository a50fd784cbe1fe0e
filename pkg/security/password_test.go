package security

import (
	"errors"
	"strings"
	"testing"

	"github.com/jordanvasquez/threadline-backend/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	// Small parameters keep the test fast.
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("s3cret-pass", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format %q", encoded)
	}

	ok, err := VerifyPassword("s3cret-pass", encoded)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}

	ok, err = VerifyPassword("wrong-pass", encoded)
	if err != nil {
		t.Fatalf("verify wrong: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch for wrong password")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("", testPasswordConfig()); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("whatever", "not-a-hash"); !errors.Is(err, ErrInvalidHash) {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}

func TestHashesAreSalted(t *testing.T) {
	cfg := testPasswordConfig()
	first, err := HashPassword("same-password", cfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("same-password", cfg)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct salted hashes")
	}
}
