package engine

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/solitaire/internal/pile"
)

var (
	// ErrNotMovable: the source container is unknown or the run at the offset
	// cannot be picked up.
	ErrNotMovable = errors.New("not movable")
	// ErrIllegalMove: the variation does not allow the move.
	ErrIllegalMove = errors.New("illegal move")
	// ErrRejectedByContainer: the destination does not take the run.
	ErrRejectedByContainer = errors.New("rejected by container")
	// ErrAutoMoveDivergence: automoves did not settle within the limit.
	ErrAutoMoveDivergence = errors.New("automove divergence")
)

// MoveError is an expected failure of a player move. The table is unchanged.
type MoveError struct {
	Reason error
	Move   pile.Move
	Detail string
}

func (e *MoveError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v: %s", e.Reason, e.Move)
	}
	return fmt.Sprintf("%v: %s: %s", e.Reason, e.Move, e.Detail)
}

func (e *MoveError) Unwrap() error { return e.Reason }

// EngineFault reports that the variation's automove rules kept producing
// moves past the limit. The table keeps every move applied before the fault.
type EngineFault struct {
	Limit   int
	Applied []pile.Move
}

func (e *EngineFault) Error() string {
	return fmt.Sprintf("%v: still moving after %d automoves", ErrAutoMoveDivergence, e.Limit)
}

func (e *EngineFault) Unwrap() error { return ErrAutoMoveDivergence }
