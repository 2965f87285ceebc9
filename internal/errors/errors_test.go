package errors

import (
	"errors"
	"testing"
)

type codedError struct {
	Msg string
}

func (e codedError) Error() string { return e.Msg }

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
		wrapped := Wrap(nil, "wrapped")
		if wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestWrapf(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrapf non-nil error", func(t *testing.T) {
		wrapped := Wrapf(baseErr, "wrapped %d", 123)
		if wrapped == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		expected := "wrapped 123: base error"
		if wrapped.Error() != expected {
			t.Errorf("expected '%s', got '%s'", expected, wrapped.Error())
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("expected wrapped error to wrap baseErr")
		}
	})

	t.Run("wrapf nil error", func(t *testing.T) {
		wrapped := Wrapf(nil, "wrapped %d", 123)
		if wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestIs(t *testing.T) {
	if !Is(ErrUnauthorized, ErrUnauthorized) {
		t.Error("expected ErrUnauthorized to be ErrUnauthorized")
	}

	wrapped := Wrap(ErrUnauthorized, "context")
	if !Is(wrapped, ErrUnauthorized) {
		t.Error("expected wrapped ErrUnauthorized to be ErrUnauthorized")
	}

	if Is(ErrUnauthorized, ErrForbidden) {
		t.Error("expected ErrUnauthorized NOT to be ErrForbidden")
	}
}

func TestAs(t *testing.T) {
	custom := codedError{Msg: "custom"}
	wrapped := Wrap(custom, "context")

	var target codedError
	if !As(wrapped, &target) {
		t.Fatal("expected wrapped error to be able to extract target")
	}
	if target.Msg != "custom" {
		t.Errorf("expected 'custom', got '%s'", target.Msg)
	}
}
