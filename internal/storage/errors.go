// Package storage holds the flat-file primitives shared by the ledger,
// the roster and the hook installer.
package storage

import (
	"errors"
	"fmt"
)

// Sentinel errors for flat-file storage. Callers match them with errors.Is.
var (
	// ErrNotFound indicates a lookup matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique key is already present.
	ErrAlreadyExists = errors.New("already exists")

	// ErrIO indicates a read, write, rename or permission failure.
	ErrIO = errors.New("i/o error")
)

// WrapIOError wraps a filesystem error with operation context and ErrIO.
// If err is nil, nil is returned.
func WrapIOError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrIO, err)
}
