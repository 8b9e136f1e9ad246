package security

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateAndVerify_Success(t *testing.T) {
	t.Parallel()

	a := NewArgon()

	encoded, err := a.GenerateFromPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("GenerateFromPassword error: %v", err)
	}

	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected hash encoding: %q", encoded)
	}

	ok, err := a.VerifyPasswd("correct horse battery staple", encoded)
	if err != nil {
		t.Fatalf("VerifyPasswd error: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}
}

func TestVerifyPasswd_WrongPassword(t *testing.T) {
	t.Parallel()

	a := NewArgon()

	encoded, err := a.GenerateFromPassword("right-password")
	if err != nil {
		t.Fatalf("GenerateFromPassword error: %v", err)
	}

	ok, err := a.VerifyPasswd("wrong-password", encoded)
	if err != nil {
		t.Fatalf("VerifyPasswd error: %v", err)
	}
	if ok {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestGenerateFromPassword_Empty(t *testing.T) {
	t.Parallel()

	a := NewArgon()

	_, err := a.GenerateFromPassword("")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestVerifyPasswd_MalformedHash(t *testing.T) {
	t.Parallel()

	a := NewArgon()

	if _, err := a.VerifyPasswd("whatever", "not-a-phc-string"); err == nil {
		t.Fatalf("expected error for malformed hash, got nil")
	}

	if _, err := a.VerifyPasswd("whatever", "$argon2id$v=19$m=bad$salt$hash"); err == nil {
		t.Fatalf("expected error for malformed parameters, got nil")
	}
}

func TestGenerateFromPassword_SaltedOutput(t *testing.T) {
	t.Parallel()

	a := NewArgon()

	h1, err := a.GenerateFromPassword("same-password")
	if err != nil {
		t.Fatalf("GenerateFromPassword error: %v", err)
	}

	h2, err := a.GenerateFromPassword("same-password")
	if err != nil {
		t.Fatalf("GenerateFromPassword error: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("expected two hashes of the same password to differ")
	}
}
