package orchestrator

import (
	"errors"
	"fmt"
)

// ErrWrite matches every IOError via errors.Is.
var ErrWrite = errors.New("orchestrator: write failed")

// IOError reports a failure of the sink the generated source was written
// to. It never wraps a metadata problem.
type IOError struct {
	Op    string
	Cause error
}

func (e *IOError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("orchestrator: %s failed", e.Op)
	}
	return fmt.Sprintf("orchestrator: %s: %v", e.Op, e.Cause)
}

func (e *IOError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrWrite.
func (e *IOError) Is(target error) bool {
	return target == ErrWrite
}
