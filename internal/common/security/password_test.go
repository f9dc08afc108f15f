package security_test

import (
	"testing"

	"blogql/internal/common/security"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := security.HashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !security.CheckPasswordHash("secret", hash) {
		t.Fatal("expected correct password to verify")
	}
}

func TestCheckPasswordHash_WrongPassword(t *testing.T) {
	hash, err := security.HashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if security.CheckPasswordHash("not-secret", hash) {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestCheckPasswordHash_ForeignHash(t *testing.T) {
	other, err := security.HashPassword("otherPassword")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if security.CheckPasswordHash("secret", other) {
		t.Fatal("expected hash of a different password to fail verification")
	}
}
