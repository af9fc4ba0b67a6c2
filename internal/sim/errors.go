package sim

import (
	"errors"
	"fmt"
)

// ErrInvariant is the sentinel for every engine invariant violation; match
// with errors.Is. The input hierarchy is closed and fully controlled, so any
// of these indicates a construction bug, not a recoverable runtime state.
var ErrInvariant = errors.New("invariant violated")

// Cause names what went wrong inside an InvariantError.
type Cause string

const (
	CauseLookupMiss          Cause = "lookup miss"
	CauseUnreachableParent   Cause = "unreachable parent"
	CauseDegenerateNormalize Cause = "degenerate normalize"
	CauseNoStaticBody        Cause = "no static body"
)

// InvariantError is the single error kind the engine surfaces.
type InvariantError struct {
	Cause  Cause
	Detail string
}

func (e *InvariantError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invariant violated: %s", e.Cause)
	}
	return fmt.Sprintf("invariant violated: %s: %s", e.Cause, e.Detail)
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}
