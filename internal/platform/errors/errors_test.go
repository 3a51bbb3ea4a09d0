package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("create prompt: %w", New(CodePromptNameEmpty, "prompt name is required"))
	if !stderrors.Is(err, New(CodePromptNameEmpty, "")) {
		t.Fatal("expected match by code")
	}
	if stderrors.Is(err, New(CodeNotFound, "")) {
		t.Fatal("expected mismatch for other code")
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeUnknown, "insert user", cause)
	if got := err.Error(); got != "insert user: disk full" {
		t.Fatalf("Error() = %q", got)
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: New(CodeUserEmailInvalid, "bad email"), want: http.StatusBadRequest},
		{err: New(CodeUnauthenticated, "no token"), want: http.StatusUnauthorized},
		{err: New(CodeNotFound, "missing"), want: http.StatusNotFound},
		{err: fmt.Errorf("wrapped: %w", New(CodePromptExists, "dup")), want: http.StatusConflict},
		{err: stderrors.New("plain"), want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestLocalizedMessage(t *testing.T) {
	err := WithMetadata(CodePromptVersionInvalid, "bad version", map[string]string{"Version": "1.0"})
	if got := LocalizedMessage(err, "en-US"); got != `Version "1.0" must look like v1.2.3.` {
		t.Fatalf("LocalizedMessage() = %q", got)
	}
	if got := LocalizedMessage(stderrors.New("boom"), "en-US"); got != "Something went wrong. Please try again." {
		t.Fatalf("LocalizedMessage(plain) = %q", got)
	}
}
