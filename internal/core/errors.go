package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEnvironmentMissing is returned when an environment required for a
	// sync is not present on this machine.
	ErrEnvironmentMissing = errors.New("environment not found")

	// ErrBackupFailed is returned when the pre-sync backup cannot be created.
	ErrBackupFailed = errors.New("backup failed")
)

// ErrorKind classifies failures by how far they reach.
type ErrorKind string

const (
	// KindSkip marks an item that is valid but incompatible with the target.
	KindSkip ErrorKind = "skip"
	// KindItem marks a failure isolated to one item.
	KindItem ErrorKind = "item"
	// KindEnvironment marks an unreadable or missing environment file.
	KindEnvironment ErrorKind = "environment"
	// KindFatal aborts the whole operation before any mutation.
	KindFatal ErrorKind = "fatal"
)

// SyncError attaches a kind and optional item id to an error.
type SyncError struct {
	Kind   ErrorKind
	ItemID string
	Err    error
}

func (e *SyncError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("%s: %v", e.ItemID, e.Err)
	}
	return e.Err.Error()
}

func (e *SyncError) Unwrap() error { return e.Err }

// KindOf returns the kind of the first SyncError in err's chain. Errors
// without one are treated as item errors; nil has no kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var se *SyncError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindItem
}

func fatalError(err error) error {
	return &SyncError{Kind: KindFatal, Err: err}
}

func itemError(id string, err error) error {
	return &SyncError{Kind: KindItem, ItemID: id, Err: err}
}
