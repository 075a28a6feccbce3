package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig  = "CONFIG"
	ErrExec    = "EXEC"
	ErrParse   = "PARSE"
	ErrPerm    = "PERM"
	ErrMonitor = "MONITOR"
)

// Kind identifies one failure class at the ddcutil boundary. Codes group
// errors for display; Kind is what retry and fallback logic dispatches on.
type Kind int

const (
	KindUnknown Kind = iota
	KindBinaryNotFound
	KindTimeout
	KindDiscoveryFailed
	KindNoMonitors
	KindNotFound
	KindOutOfRange
	KindUnsupportedFeature
	KindPermissionDenied
	KindElevationCancelled
	KindElevationDenied
	KindUnparseableOutput
)

// String returns a stable identifier for the kind, used in logs and --json output.
func (k Kind) String() string {
	switch k {
	case KindBinaryNotFound:
		return "binary_not_found"
	case KindTimeout:
		return "timeout"
	case KindDiscoveryFailed:
		return "discovery_failed"
	case KindNoMonitors:
		return "no_monitors_detected"
	case KindNotFound:
		return "monitor_not_found"
	case KindOutOfRange:
		return "out_of_range"
	case KindUnsupportedFeature:
		return "unsupported_feature"
	case KindPermissionDenied:
		return "permission_denied"
	case KindElevationCancelled:
		return "elevation_cancelled"
	case KindElevationDenied:
		return "elevation_denied"
	case KindUnparseableOutput:
		return "unparseable_output"
	default:
		return "unknown"
	}
}

// code returns the display code a kind belongs to.
func (k Kind) code() string {
	switch k {
	case KindBinaryNotFound, KindTimeout, KindDiscoveryFailed:
		return ErrExec
	case KindNoMonitors, KindNotFound, KindOutOfRange, KindUnsupportedFeature:
		return ErrMonitor
	case KindPermissionDenied, KindElevationCancelled, KindElevationDenied:
		return ErrPerm
	case KindUnparseableOutput:
		return ErrParse
	default:
		return ErrExec
	}
}

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Kind       Kind
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewKind creates a structured error classified under a taxonomy kind.
// The display code is derived from the kind.
func NewKind(kind Kind, message, suggestion string) *Error {
	return &Error{
		Code:       kind.code(),
		Kind:       kind,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrExec code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrExec,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// WrapKind wraps an existing error under a taxonomy kind.
func WrapKind(err error, kind Kind, message, suggestion string) *Error {
	return &Error{
		Code:       kind.code(),
		Kind:       kind,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface with formatted output.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	// Include cause if present (why it failed)
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	// Include suggestion if present (how to fix)
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var mErr *Error
	if errors.As(err, &mErr) {
		return mErr.Code == code
	}
	return false
}

// IsKind checks if an error is a structured Error with the given kind.
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	var mErr *Error
	if errors.As(err, &mErr) {
		return mErr.Kind == kind
	}
	return false
}

// GetKind extracts the taxonomy kind from an error, or KindUnknown if the
// error is nil or carries no kind.
func GetKind(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var mErr *Error
	if errors.As(err, &mErr) {
		return mErr.Kind
	}
	return KindUnknown
}

// ExitError carries a child process exit code up to main without extra wrapping.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError for the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// GetExitCode extracts the exit code from an error if it is an ExitError.
func GetExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
