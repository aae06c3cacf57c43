// Package errors provides domain-specific error types for the binding.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
)

// CallError represents a native procedure call that completed with a
// non-zero status code. Message carries the engine's last error text
// when it could be retrieved.
type CallError struct {
	Procedure string
	Status    int
	Message   string
}

func (e *CallError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Procedure, e.Status, e.Message)
	}
	return fmt.Sprintf("%s returned status %d", e.Procedure, e.Status)
}

// AsCallError returns the *CallError in err's chain, if any.
func AsCallError(err error) (*CallError, bool) {
	var ce *CallError
	ok := stdErrors.As(err, &ce)
	return ce, ok
}

// IsCallError reports whether err's chain contains a *CallError.
func IsCallError(err error) bool {
	var ce *CallError
	return stdErrors.As(err, &ce)
}

// MissingProcedureError represents a procedure name that is not exported
// by the loaded engine library.
type MissingProcedureError struct {
	Procedure string
}

func (e *MissingProcedureError) Error() string {
	return fmt.Sprintf("procedure %s is not exported by the engine library; check for an updated engine build", e.Procedure)
}

// LoadError represents a failure to open the engine library.
type LoadError struct {
	Err  error
	Path string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load engine library %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ClosedError represents a use of a session, model or file handle after
// it was closed, or a second Close of a handle that must be closed
// exactly once.
type ClosedError struct {
	Resource string
}

func (e *ClosedError) Error() string {
	return fmt.Sprintf("%s is closed", e.Resource)
}

// IsClosed reports whether err's chain contains a *ClosedError.
func IsClosed(err error) bool {
	var ce *ClosedError
	return stdErrors.As(err, &ce)
}

// UnsupportedPlatformError represents an attempt to load the engine on a
// platform the native runtime does not support.
type UnsupportedPlatformError struct {
	GOOS string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("the IWFM engine library cannot be loaded on %s; it is distributed as a Windows DLL", e.GOOS)
}

// UnsupportedError represents an operation the engine cannot perform
// for the given target kind.
type UnsupportedError struct {
	Operation string
	Target    string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not supported for %s", e.Operation, e.Target)
}

// TimeStampError represents a malformed IWFM timestamp.
type TimeStampError struct {
	Value  string
	Reason string
}

func (e *TimeStampError) Error() string {
	return fmt.Sprintf("invalid timestamp %q: %s (expected MM/DD/YYYY_hh:mm)", e.Value, e.Reason)
}

// IntervalError represents a time interval token outside the set the
// engine recognizes.
type IntervalError struct {
	Value string
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("invalid time interval %q", e.Value)
}

// TimeWindowError represents a read window whose begin timestamp falls
// after its end timestamp.
type TimeWindowError struct {
	Begin string
	End   string
}

func (e *TimeWindowError) Error() string {
	return fmt.Sprintf("time window begin %s falls after end %s", e.Begin, e.End)
}

// NotFoundError represents an identifier that is absent from the model
// or file being queried.
type NotFoundError struct {
	ID   any
	Kind string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Kind, e.ID)
}

// DimensionError represents paired slices or matrices whose lengths do
// not agree.
type DimensionError struct {
	What string
	Want int
	Got  int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: expected length %d, got %d", e.What, e.Want, e.Got)
}

// ManifestError represents a run-manifest that failed decoding or
// validation. Fields lists the offending field paths when known.
type ManifestError struct {
	Err    error
	Fields []string
}

func (e *ManifestError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("manifest validation failed for %s: %v", strings.Join(e.Fields, ", "), e.Err)
	}
	return fmt.Sprintf("manifest validation failed: %v", e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}
