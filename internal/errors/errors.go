// Package errors provides structured error types for the mise application.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInput        // invalid local precondition, detected before any network call
	KindNetwork      // transport failure or backend-reported business error
	KindAuth         // stored credential invalid or expired
	KindConfig
	KindIO
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "invalid input"
	case KindNetwork:
		return "network error"
	case KindAuth:
		return "authentication error"
	case KindConfig:
		return "configuration error"
	case KindIO:
		return "I/O error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for mise.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the human-readable text of err with the Op prefix stripped,
// suitable for surfacing to the user. Falls back to err.Error() for plain errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Context != "" {
			return fmt.Sprintf("%s: %s", e.Context, e.Err)
		}
		return e.Err.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// Input precondition errors

func NoFileSelected() error {
	return E(Op("conversation.StartUpload"), KindInput, "no file selected")
}

func EmptyMessage() error {
	return E(Op("conversation.SendMessage"), KindInput, "empty message")
}

func NoActiveConversation() error {
	return E(Op("conversation.SendMessage"), KindInput, "no active conversation")
}

func NothingToFinalize() error {
	return E(Op("conversation.Finalize"), KindInput, "no conversation to finalize")
}

// Network errors

func UploadFailed(err error) error {
	return E(Op("api.Upload"), KindNetwork, "upload/initial-analysis failed", err)
}

func ChatFailed(err error) error {
	return E(Op("api.Chat"), KindNetwork, "message send failed", err)
}

func FinalizeFailed(err error) error {
	return E(Op("api.Finalize"), KindNetwork, "final report generation failed", err)
}

// Auth errors

func LoginRequired() error {
	return E(Op("api.Request"), KindAuth, "session expired, please log in again")
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindConfig, reason)
}
