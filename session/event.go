package session

import (
	"drill/book"
	"drill/metrics"
)

type EventKind int

const (
	EventAutomatedMoved EventKind = iota
	EventLearnerMoved
	EventRejected  // Learner move is not in the book
	EventExhausted // No authored reply left for the automated side
	EventReset
	EventVariationToggled
)

func (k EventKind) String() string {
	switch k {
	case EventAutomatedMoved:
		return "automated moved"
	case EventLearnerMoved:
		return "learner moved"
	case EventRejected:
		return "rejected"
	case EventExhausted:
		return "exhausted"
	case EventReset:
		return "reset"
	case EventVariationToggled:
		return "variation toggled"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	SessionID      string
	Path           []string
	Node           *book.MoveNode
	Turn           Turn
	AllowedReplies []string
	Epoch          uint64
}

// Event is delivered to listeners after each transition and each rejection.
type Event struct {
	Kind     EventKind
	Move     string
	Snapshot Snapshot
	Record   *metrics.DrillMetric // Set when the drill has just completed
}

type Listener func(Event)

// Result reports the outcome of a learner submission.
type Result struct {
	Accepted bool
	Move     string
	Complete bool
	// ReplyDue tells the orchestrator to schedule AdvanceAutomated.
	ReplyDue bool
}

// Variation describes one automated reply at the first branch point.
type Variation struct {
	Move        string
	Annotation  string
	Weight      float64
	Probability float64
	Enabled     bool
}
