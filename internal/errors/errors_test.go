package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindInput, "invalid input"},
		{KindNetwork, "network error"},
		{KindAuth, "authentication error"},
		{KindConfig, "configuration error"},
		{KindIO, "I/O error"},
		{KindTimeout, "timeout"},
		{Kind(999), "unknown error"}, // Unknown kind
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{Op: "test.Op", Err: underlying}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", got, underlying)
	}
}

func TestE(t *testing.T) {
	tests := []struct {
		name       string
		args       []interface{}
		wantKind   Kind
		wantOp     Op
		wantSubstr string
	}{
		{
			name:       "all argument types",
			args:       []interface{}{Op("pkg.Func"), KindNetwork, "context text", errors.New("boom")},
			wantKind:   KindNetwork,
			wantOp:     "pkg.Func",
			wantSubstr: "boom",
		},
		{
			name:       "context only becomes error",
			args:       []interface{}{Op("pkg.Func"), KindInput, "no file selected"},
			wantKind:   KindInput,
			wantOp:     "pkg.Func",
			wantSubstr: "no file selected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := E(tt.args...)
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("E() did not return *Error")
			}
			if e.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", e.Kind, tt.wantKind)
			}
			if e.Op != tt.wantOp {
				t.Errorf("Op = %v, want %v", e.Op, tt.wantOp)
			}
			if !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("Error() = %q, want substring %q", err.Error(), tt.wantSubstr)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := UploadFailed(errors.New("connection refused"))
	if !Is(err, KindNetwork) {
		t.Errorf("UploadFailed should be KindNetwork")
	}
	if Is(err, KindInput) {
		t.Errorf("UploadFailed should not be KindInput")
	}
	if Is(errors.New("plain"), KindNetwork) {
		t.Errorf("plain error should not match any kind")
	}
}

func TestGetKind(t *testing.T) {
	if got := GetKind(LoginRequired()); got != KindAuth {
		t.Errorf("GetKind(LoginRequired()) = %v, want KindAuth", got)
	}
	if got := GetKind(errors.New("plain")); got != KindUnknown {
		t.Errorf("GetKind(plain) = %v, want KindUnknown", got)
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "structured with context",
			err:      UploadFailed(errors.New("timeout")),
			expected: "upload/initial-analysis failed: timeout",
		},
		{
			name:     "structured without context",
			err:      E(Op("x.Y"), KindInput, errors.New("bad value")),
			expected: "bad value",
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "plain",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.expected {
				t.Errorf("Message() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionLabels(t *testing.T) {
	cause := fmt.Errorf("503 Service Unavailable")
	tests := []struct {
		name  string
		err   error
		label string
		kind  Kind
	}{
		{"upload", UploadFailed(cause), "upload/initial-analysis failed", KindNetwork},
		{"chat", ChatFailed(cause), "message send failed", KindNetwork},
		{"finalize", FinalizeFailed(cause), "final report generation failed", KindNetwork},
		{"no file", NoFileSelected(), "no file selected", KindInput},
		{"empty message", EmptyMessage(), "empty message", KindInput},
		{"no conversation", NoActiveConversation(), "no active conversation", KindInput},
		{"nothing to finalize", NothingToFinalize(), "no conversation to finalize", KindInput},
		{"login required", LoginRequired(), "please log in again", KindAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.err.Error(), tt.label) {
				t.Errorf("error %q missing label %q", tt.err.Error(), tt.label)
			}
			if GetKind(tt.err) != tt.kind {
				t.Errorf("kind = %v, want %v", GetKind(tt.err), tt.kind)
			}
		})
	}
}
