package store

import "fmt"

// Error is a store failure identified by a stable Code.
//
// Two Errors match with errors.Is when their codes are equal, so callers compare against the
// sentinels below whatever the wrapped cause.
type Error struct {
	Code     string
	Message  string
	Internal error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *Error) Unwrap() error { return e.Internal }

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Wrap creates a new Error with the same code and message as sentinel wrapping internal.
func Wrap(sentinel *Error, internal error) *Error {
	return &Error{Code: sentinel.Code, Message: sentinel.Message, Internal: internal}
}

// WithMessage creates a new Error with the code of sentinel and a custom message.
func WithMessage(sentinel *Error, message string) *Error {
	return &Error{Code: sentinel.Code, Message: message, Internal: sentinel.Internal}
}

var (
	ErrVersionMismatch = &Error{Code: "VERSION_MISMATCH", Message: "File format version mismatch"}
	ErrLegacyFormat    = &Error{Code: "LEGACY_FORMAT", Message: "unsupported legacy file format, re-save required"}
	ErrCorrupt         = &Error{Code: "CORRUPT", Message: "file is incomplete or corrupted"}
	ErrWrite           = &Error{Code: "WRITE_FAILED", Message: "cannot write project"}
	ErrEngine          = &Error{Code: "ENGINE_UNAVAILABLE", Message: "storage engine unavailable"}
	ErrClosed          = &Error{Code: "CLOSED", Message: "store is closed"}
)

// VersionMismatchError reports a store written with another schema version.
// It matches ErrVersionMismatch.
type VersionMismatchError struct {
	Found    string
	Expected string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("%s: found schema version %q, expected %q", ErrVersionMismatch.Message, e.Found, e.Expected)
}

func (e *VersionMismatchError) Is(target error) bool { return target == ErrVersionMismatch }
