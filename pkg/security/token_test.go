package security

import (
	"testing"
	"time"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	m := NewTokenMaker("super-secret")

	tok, err := m.Issue(Claims{UserID: 42, Email: "a@x.com", Username: "alice"}, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("UserID mismatch: got %d want 42", claims.UserID)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("Email mismatch: got %q", claims.Email)
	}
	if claims.Username != "alice" {
		t.Fatalf("Username mismatch: got %q", claims.Username)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	m := NewTokenMaker("secret")

	tok, err := m.Issue(Claims{UserID: 1, Email: "a@x.com"}, -1*time.Second)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := m.Verify(tok); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenMaker("right-secret").Issue(Claims{UserID: 1, Email: "a@x.com"}, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := NewTokenMaker("wrong-secret").Verify(tok); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	m := NewTokenMaker("k")

	if _, err := m.Verify("not.a.jwt"); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for malformed token, got %v", err)
	}

	if _, err := m.Verify(""); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for empty token, got %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	t.Parallel()

	m := NewTokenMaker("secret")

	tok, err := m.Issue(Claims{UserID: 7, Email: "a@x.com"}, time.Hour)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	tampered := tok[:len(tok)-2] + "xx"

	if _, err := m.Verify(tampered); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
}
