package auth

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(hash, hashSeparator) {
		t.Fatalf("expected salt separator in hash: %s", hash)
	}
	if !CheckPassword(hash, "secret1") {
		t.Fatalf("expected password to verify")
	}
	if CheckPassword(hash, "secret2") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct salts to produce distinct hashes")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	for _, stored := range []string{"", "no-separator", "zz$zz", "abcd$"} {
		if CheckPassword(stored, "secret1") {
			t.Fatalf("expected malformed hash %q to fail", stored)
		}
	}
}

func TestNewSessionToken(t *testing.T) {
	first, err := NewSessionToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != tokenLength*2 {
		t.Fatalf("expected %d hex chars, got %d", tokenLength*2, len(first))
	}
	second, err := NewSessionToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Fatalf("expected tokens to be unique")
	}
}
