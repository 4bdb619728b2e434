package errors

import (
	"fmt"
	"testing"
)

func TestNumwordsError_Error(t *testing.T) {
	err := &NumwordsError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "conversion not found",
	}

	expected := "NOT_FOUND: conversion not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("text is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "text is required" {
		t.Errorf("Message = %q, want %q", err.Message, "text is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("01HZX")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["id"] != "01HZX" {
		t.Errorf("Details[id] = %v, want %q", err.Details["id"], "01HZX")
	}
}

func TestNewInputTooLarge(t *testing.T) {
	err := NewInputTooLarge(10000, 15000)

	if err.Code != ErrInputTooLarge {
		t.Errorf("Code = %q, want %q", err.Code, ErrInputTooLarge)
	}
	if err.Status != 413 {
		t.Errorf("Status = %d, want 413", err.Status)
	}
	if err.Details["max_chars"] != 10000 {
		t.Errorf("Details[max_chars] = %v, want 10000", err.Details["max_chars"])
	}
	if err.Details["actual_chars"] != 15000 {
		t.Errorf("Details[actual_chars] = %v, want 15000", err.Details["actual_chars"])
	}
}

func TestNewBatchTooLarge(t *testing.T) {
	err := NewBatchTooLarge(100, 101)

	if err.Code != ErrBatchTooLarge {
		t.Errorf("Code = %q, want %q", err.Code, ErrBatchTooLarge)
	}
	if err.Status != 413 {
		t.Errorf("Status = %d, want 413", err.Status)
	}
	if err.Details["max_items"] != 100 {
		t.Errorf("Details[max_items] = %v, want 100", err.Details["max_items"])
	}
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := NewInternal(fmt.Errorf("database connection failed"))

		if err.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
		}
		if err.Details["internal_error"] != "database connection failed" {
			t.Errorf("Details[internal_error] = %q, want %q", err.Details["internal_error"], "database connection failed")
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)

		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
		}
		if err.Details == nil {
			t.Error("Details should not be nil")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		if !Is(NewNotFound("x"), ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		if Is(NewNotFound("x"), ErrInputTooLarge) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if Is(fmt.Errorf("plain error"), ErrNotFound) {
			t.Error("Is() = true, want false for plain error")
		}
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("texts[3]: %w", NewInputTooLarge(10, 20))
		if !Is(wrapped, ErrInputTooLarge) {
			t.Error("Is() = false, want true for wrapped error")
		}
	})
}

func TestFrom(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    ErrorCode
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "direct",
			err:         NewInvalidRequest("text is required"),
			wantCode:    ErrInvalidRequest,
			wantStatus:  400,
			wantMessage: "text is required",
		},
		{
			name:        "wrapped keeps prefix",
			err:         fmt.Errorf("texts[3]: %w", NewInputTooLarge(10, 20)),
			wantCode:    ErrInputTooLarge,
			wantStatus:  413,
			wantMessage: "texts[3]: input exceeds maximum size: 20 chars (max 10)",
		},
		{
			name:        "plain error",
			err:         fmt.Errorf("disk on fire"),
			wantCode:    ErrInternal,
			wantStatus:  500,
			wantMessage: "an internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nErr, message := From(tt.err)
			if nErr.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", nErr.Code, tt.wantCode)
			}
			if nErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", nErr.Status, tt.wantStatus)
			}
			if message != tt.wantMessage {
				t.Errorf("message = %q, want %q", message, tt.wantMessage)
			}
		})
	}
}
