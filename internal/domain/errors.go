package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when a record to delete does not exist
	ErrNotFound = errors.New("record not found")

	// ErrNotReady is returned when a mutation is attempted outside the Ready phase
	ErrNotReady = errors.New("ledger is not ready")
)

// ConnectivityError reports that the store could not be reached at startup.
// It is fatal to the session.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("ledger store unreachable: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// OperationError reports that a single store operation failed.
// Op names the store operation, e.g. "insertAsset".
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

// PersistenceError reports that a history entry could not be appended
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to record net worth snapshot: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// MalformedRecordError reports a store record that failed shape validation
type MalformedRecordError struct {
	Kind  string // asset, liability or history
	Field string // Empty when the whole record is unusable
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed %s record: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("malformed %s record: field %s: %v", e.Kind, e.Field, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// ValidationError reports invalid user input
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}
