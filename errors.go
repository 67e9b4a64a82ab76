package bitcointx

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure categories. Use errors.Is to classify an
// error, and errors.As to retrieve the concrete value.
var (
	ErrValidation = errors.New("validation failed")
	ErrParse      = errors.New("cannot parse value")
	ErrTransport  = errors.New("transport failed")
	ErrLogic      = errors.New("logic error")
)

// ValidationError reports a field that is missing, not applicable, or
// inconsistent with the rest of the entry.
type ValidationError struct {
	Field  Field  // Field is the offending field, empty when the failure concerns the whole entry.
	Reason string // Reason is a human readable explanation.
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// missing returns the ValidationError for a required field left empty.
func missing(f Field) *ValidationError {
	return &ValidationError{Field: f, Reason: "is required"}
}

// ParseError reports a field value that cannot be normalized.
type ParseError struct {
	Field Field
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error        { return e.Err }
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// TransportError reports a failed submission to the ledger API.
type TransportError struct {
	Status int            // Status is the HTTP status code, 0 when no response was received.
	Detail string         // Detail is the server supplied message, if any.
	Errors map[string]any // Errors holds the server supplied field errors, if any.
	Err    error          // Err is the underlying failure.
}

// Error returns the server detail verbatim when present.
func (e *TransportError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "transport failure"
}

func (e *TransportError) Unwrap() error        { return e.Err }
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// LogicError reports an entry that resolved to an impossible posting. It is
// fatal to the submission, and matches ErrValidation as well as ErrLogic.
type LogicError struct {
	Type    TransactionType
	Posting Posting
}

func (e *LogicError) Error() string {
	return fmt.Sprintf("transaction type %q resolved to unusable posting %s", e.Type, e.Posting)
}

func (e *LogicError) Is(target error) bool { return target == ErrLogic || target == ErrValidation }
