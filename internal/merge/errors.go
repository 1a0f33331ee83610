package merge

import (
	"errors"
	"fmt"
)

// AbortedError stops a merge before it completes. It is the only error the
// operation raises itself.
type AbortedError struct {
	Reason string
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("merge aborted: %s", e.Reason)
}

func abort(reason string) error {
	return &AbortedError{Reason: reason}
}

// IsAborted reports whether err (or anything it wraps) is an AbortedError.
func IsAborted(err error) bool {
	var aborted *AbortedError
	return errors.As(err, &aborted)
}
