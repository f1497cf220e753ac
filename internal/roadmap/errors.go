package roadmap

import (
	"errors"
	"fmt"
)

var (
	// ErrPhase matches every *PhaseError.
	ErrPhase            = errors.New("roadmap: operation out of order")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidRange     = errors.New("invalid date range")
	ErrOutOfRange       = errors.New("date outside allowed range")
	ErrInvalidItemCount = errors.New("timeline item count must be positive")
	ErrUnknownMode      = errors.New("unknown timeline mode")
	ErrUnknownArea      = errors.New("unknown print area")
	ErrGroupOpen        = errors.New("a group is still open; commit it first")
	ErrGroupNotOpen     = errors.New("group is not the open group")
	ErrGroupCommitted   = errors.New("group already committed")
)

// PhaseError reports an operation invoked while the roadmap was in a phase
// that does not allow it.
type PhaseError struct {
	Op    string
	Phase Phase
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("roadmap: %s not allowed in phase %s", e.Op, e.Phase)
}

// Is reports whether target is ErrPhase.
func (e *PhaseError) Is(target error) bool {
	return target == ErrPhase
}
