package validators

import (
	"strings"
	"testing"
)

func TestEmailValidator(t *testing.T) {
	t.Parallel()

	if err := EmailValidator("user@example.com"); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}

	if err := EmailValidator(""); err != ErrEmailEmpty {
		t.Fatalf("expected ErrEmailEmpty, got %v", err)
	}

	if err := EmailValidator("not-an-email"); err != ErrEmailInvalid {
		t.Fatalf("expected ErrEmailInvalid, got %v", err)
	}
}

func TestPasswordValidator(t *testing.T) {
	t.Parallel()

	if err := PasswordValidator("long-enough-password"); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}

	if err := PasswordValidator(""); err != ErrPasswordEmpty {
		t.Fatalf("expected ErrPasswordEmpty, got %v", err)
	}

	if err := PasswordValidator("short"); err != ErrPasswordTooShort {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}

	if err := PasswordValidator(strings.Repeat("a", 256)); err != ErrPasswordTooLong {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
}
