package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDoor, "width %v exceeds wall %d", 48.0, 2)
	if err.Code != ErrCodeInvalidDoor {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidDoor)
	}
	want := "INVALID_DOOR: width 48 exceeds wall 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidPlan, cause, "decode plan.json")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if !Is(err, ErrCodeInvalidPlan) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is should not match a different code")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodePlanNotFound, "plan abc")
	outer := fmt.Errorf("load: %w", inner)
	if !Is(outer, ErrCodePlanNotFound) {
		t.Error("Is should unwrap through fmt.Errorf")
	}
	if GetCode(outer) != ErrCodePlanNotFound {
		t.Errorf("GetCode = %s, want %s", GetCode(outer), ErrCodePlanNotFound)
	}
}

func TestGetCodePlainError(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidShape, "cut larger than shape")
	if got := UserMessage(err); got != "cut larger than shape" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("boom")); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidDoor, http.StatusBadRequest},
		{ErrCodePlanNotFound, http.StatusNotFound},
		{ErrCodeNoValidPosition, http.StatusConflict},
		{ErrCodeUnsupported, http.StatusUnprocessableEntity},
		{ErrCodeInternal, http.StatusInternalServerError},
		{Code(""), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.code); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
