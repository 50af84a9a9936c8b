package pair

import (
	"errors"
	"fmt"
)

// ErrNotInitialized matches any NotInitializedError via errors.Is.
var ErrNotInitialized = errors.New("git-pair not initialized")

// NotInitializedError reports a branch with no ledger.
type NotInitializedError struct {
	Branch string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("git-pair not initialized for branch '%s'. Please run 'git-pair init' first", e.Branch)
}

// Is makes errors.Is(err, ErrNotInitialized) true.
func (e *NotInitializedError) Is(target error) bool {
	return target == ErrNotInitialized
}

// ErrEmptyIdentifier is returned by Remove for a blank identifier, which
// would otherwise match every record.
var ErrEmptyIdentifier = errors.New("identifier must not be empty")
