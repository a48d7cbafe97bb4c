package session

import (
	"errors"
	"fmt"
)

type Turn int

const (
	AutomatedToMove Turn = iota
	LearnerToMove
	Complete
)

func (t Turn) String() string {
	switch t {
	case AutomatedToMove:
		return "automated to move"
	case LearnerToMove:
		return "learner to move"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("Turn(%d)", int(t))
	}
}

var (
	ErrPrefixNotFound   = errors.New("starting prefix is not part of the tree")
	ErrUnknownVariation = errors.New("not a reply at the first branch point")
)

// IllegalTransitionError is returned when an operation is invoked in a turn
// that forbids it. It signals misuse by the caller, not a learner mistake.
type IllegalTransitionError struct {
	Op   string
	Turn Turn
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition: %s while %s", e.Op, e.Turn)
}
