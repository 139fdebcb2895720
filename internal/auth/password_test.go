package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPasswordRejectsEmptyAndOversized(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
	if _, err := HashPassword(strings.Repeat("x", 73)); err == nil {
		t.Fatal("expected error for password over 72 bytes")
	}
	if _, err := HashPassword(strings.Repeat("x", 72)); err != nil {
		t.Fatalf("72-byte password should hash: %v", err)
	}
}

func TestVerifyPasswordMissingHash(t *testing.T) {
	if err := VerifyPassword("", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
	if err := VerifyPassword("$2a$10$somehash", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}
