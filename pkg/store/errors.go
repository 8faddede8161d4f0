package store

import (
	"errors"
	"fmt"
)

// Code classifies a storage failure.
type Code string

const (
	// Reported once retries are exhausted, by operation kind.
	CodeLoadFailed  Code = "load-failed"
	CodeSaveFailed  Code = "save-failed"
	CodeClearFailed Code = "clear-failed"

	// Reported by backends for a single attempt.
	CodeUnavailable     Code = "storage-not-available"
	CodeOperationFailed Code = "storage-operation-failed"
	// CodeDecodeFailed marks stored data that cannot be read back. It is
	// never retried.
	CodeDecodeFailed Code = "decode-failed"
)

// Operation names.
const (
	OpSaveEntries  = "saveEntries"
	OpLoadEntries  = "loadEntries"
	OpSaveDraft    = "saveDraft"
	OpLoadDraft    = "loadDraft"
	OpClearAll     = "clearAll"
	OpClearEntries = "clearEntries"
	OpClearDraft   = "clearDraft"
)

// Error is a storage failure that callers can branch on.
type Error struct {
	Op      string
	Code    Code
	Message string
	Details error
}

func (e *Error) Error() string {
	if e.Details == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Details)
}

func (e *Error) Unwrap() error {
	return e.Details
}

// HasCode reports whether any *Error in err's chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var se *Error
		if !errors.As(err, &se) {
			return false
		}
		if se.Code == code {
			return true
		}
		err = se.Details
	}
	return false
}

func codeFor(op string) Code {
	switch op {
	case OpLoadEntries, OpLoadDraft:
		return CodeLoadFailed
	case OpClearAll, OpClearEntries, OpClearDraft:
		return CodeClearFailed
	default:
		return CodeSaveFailed
	}
}

func unavailable(op string, err error) error {
	return &Error{Op: op, Code: CodeUnavailable, Message: "storage is not available", Details: err}
}

func operationFailed(op string, err error) error {
	return &Error{Op: op, Code: CodeOperationFailed, Message: "storage operation failed: " + op, Details: err}
}

func decodeFailed(op string, err error) error {
	return &Error{Op: op, Code: CodeDecodeFailed, Message: "stored entries are unreadable", Details: err}
}
