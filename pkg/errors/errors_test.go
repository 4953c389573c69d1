package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidInput, "num_rows must be positive, got %d", 0),
			want: "INVALID_INPUT: num_rows must be positive, got 0",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeInvalidFormat, fmt.Errorf("unexpected EOF"), "decode %s", "wh.json"),
			want: "INVALID_FORMAT: decode wh.json: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsThroughWrapping(t *testing.T) {
	base := New(ErrCodeGeometryOverflow, "side width is negative")
	wrapped := fmt.Errorf("workstation 2: %w", base)

	if !Is(wrapped, ErrCodeGeometryOverflow) {
		t.Error("Is should find the code through fmt wrapping")
	}
	if Is(wrapped, ErrCodeInvalidInput) {
		t.Error("Is should not match a different code")
	}
	if got := GetCode(wrapped); got != ErrCodeGeometryOverflow {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeGeometryOverflow)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidUnit, "unknown unit %q", "furlong")); got != `unknown unit "furlong"` {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestIsConfigError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeInvalidInput, "x"), true},
		{New(ErrCodeInvalidUnit, "x"), true},
		{New(ErrCodeGeometryOverflow, "x"), true},
		{New(ErrCodeNetwork, "x"), false},
		{errors.New("x"), false},
	}
	for _, tt := range tests {
		if got := IsConfigError(tt.err); got != tt.want {
			t.Errorf("IsConfigError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
