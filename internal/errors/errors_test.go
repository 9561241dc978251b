package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("test error")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "test error" {
		t.Errorf("expected 'test error', got '%s'", err.Error())
	}
}

func TestWrap(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(baseErr, "wrapped")
		if wrapped == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		expected := "wrapped: base error"
		if wrapped.Error() != expected {
			t.Errorf("expected '%s', got '%s'", expected, wrapped.Error())
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("expected wrapped error to wrap baseErr")
		}
	})

	t.Run("wrap nil error", func(t *testing.T) {
		if wrapped := Wrap(nil, "wrapped"); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestWrapf(t *testing.T) {
	baseErr := errors.New("base error")

	wrapped := Wrapf(baseErr, "user %s", "42")
	if wrapped.Error() != "user 42: base error" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
	if !errors.Is(wrapped, baseErr) {
		t.Error("expected wrapped error to wrap baseErr")
	}
	if Wrapf(nil, "x %d", 1) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestValidationError(t *testing.T) {
	t.Run("matches ErrInvalidInput", func(t *testing.T) {
		err := Wrap(NewValidationError(map[string]string{"email": "is required"}), "register")
		if !Is(err, ErrInvalidInput) {
			t.Error("expected validation error to match ErrInvalidInput")
		}

		var vErr *ValidationError
		if !As(err, &vErr) {
			t.Fatal("expected As to find *ValidationError")
		}
		if vErr.Fields["email"] != "is required" {
			t.Errorf("unexpected fields %v", vErr.Fields)
		}
	})

	t.Run("stable message", func(t *testing.T) {
		err := NewValidationError(map[string]string{"phone": "bad", "email": "bad"})
		if err.Error() != "email: bad; phone: bad" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("empty fields", func(t *testing.T) {
		if NewValidationError(nil).Error() != "invalid input" {
			t.Error("expected generic message")
		}
	})

	t.Run("does not match other kinds", func(t *testing.T) {
		if Is(NewValidationError(nil), ErrNotFound) {
			t.Error("validation error must not match ErrNotFound")
		}
	})
}
