package session

import (
	"drill/book"
	"drill/metrics"
	"drill/selector"
	"drill/utils"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Selector chooses the automated side's reply. *selector.Selector implements it.
type Selector interface {
	Select(children map[string]*book.MoveNode, allowed []string) (string, bool)
}

type Option func(e *Engine)

func WithSelector(s Selector) Option {
	return func(e *Engine) {
		if s != nil {
			e.selector = s
		}
	}
}

func WithMetrics(c metrics.Collector) Option {
	return func(e *Engine) {
		if c != nil {
			e.metrics = c
		}
	}
}

func WithListener(l Listener) Option {
	return func(e *Engine) {
		e.Subscribe(l)
	}
}

// Engine drives one learner's drill through an opening tree. The automated
// side moves first after the prefix; the learner must then answer with a book
// move, and so on until the line ends.
//
// Engine is not safe for concurrent use. Callers that defer automated replies
// onto timers must serialize access and go through AdvanceAutomatedAt.
type Engine struct {
	id        string
	prefix    []string
	start     *book.MoveNode // Node at the end of the prefix, the first branch point
	path      []string
	node      *book.MoveNode
	turn      Turn
	allowed   []string
	epoch     uint64
	selector  Selector
	metrics   metrics.Collector
	listeners []Listener
	logger    zerolog.Logger
}

// Start creates a session positioned after prefix with the automated side to move.
// Every reply at the first branch point starts out enabled.
func Start(tree *book.MoveNode, prefix []string, options ...Option) (*Engine, error) {
	start, ok := book.NavigateToPath(tree, prefix)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPrefixNotFound, strings.Join(prefix, " "))
	}

	e := &Engine{
		id:       uuid.NewString(),
		prefix:   slices.Clone(prefix),
		start:    start,
		path:     slices.Clone(prefix),
		node:     start,
		turn:     AutomatedToMove,
		allowed:  book.PossibleMoves(start),
		selector: selector.New(),
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	e.logger = log.With().Str("session", e.id).Logger()

	e.metrics.Start(e.id)
	e.logger.Info().Msgf("drill started after %d prefix moves with %d replies", len(e.prefix), len(e.allowed))
	return e, nil
}

func (e *Engine) Subscribe(l Listener) {
	if l != nil {
		e.listeners = append(e.listeners, l)
	}
}

func (e *Engine) SessionID() string {
	return e.id
}

func (e *Engine) Turn() Turn {
	return e.turn
}

func (e *Engine) Epoch() uint64 {
	return e.epoch
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		SessionID:      e.id,
		Path:           slices.Clone(e.path),
		Node:           e.node,
		Turn:           e.turn,
		AllowedReplies: slices.Clone(e.allowed),
		Epoch:          e.epoch,
	}
}

// AdvanceAutomated plays the automated side's reply. The allowed replies only
// restrict the first reply after the prefix. It returns "" when the book has
// no reply left, which completes the drill.
func (e *Engine) AdvanceAutomated() (string, error) {
	if e.turn != AutomatedToMove {
		return "", &IllegalTransitionError{Op: "advance automated", Turn: e.turn}
	}

	var allowed []string
	if len(e.path) == len(e.prefix) {
		allowed = slices.Clone(e.allowed)
	}

	move, ok := e.selector.Select(e.node.Children(), allowed)
	if !ok {
		e.turn = Complete
		e.logger.Info().Msgf("line exhausted after %d moves", len(e.path))
		e.emit(EventExhausted, "", e.complete())
		return "", nil
	}

	child, ok := e.node.Child(move)
	if !ok {
		return "", fmt.Errorf("selector returned %q which is not a reply from the current node", move)
	}

	e.path = append(e.path, move)
	e.node = child
	e.metrics.AddAutomatedMove()

	var record *metrics.DrillMetric
	e.turn = LearnerToMove
	if child.Ends() {
		e.turn = Complete
		record = e.complete()
	}

	e.logger.Debug().Msgf("automated side played %s, now %s", move, e.turn)
	e.emit(EventAutomatedMoved, move, record)
	return move, nil
}

// AdvanceAutomatedAt is the entry point for deferred replies: epoch is the
// value of Epoch() when the reply was scheduled. A reply that outlived a Reset
// is dropped and reported as not applied.
func (e *Engine) AdvanceAutomatedAt(epoch uint64) (string, bool, error) {
	if epoch != e.epoch {
		e.logger.Warn().Msgf("dropping automated reply scheduled at epoch %d, session is at epoch %d", epoch, e.epoch)
		return "", false, nil
	}

	move, err := e.AdvanceAutomated()
	if err != nil {
		return "", false, err
	}
	return move, true, nil
}

// SubmitPlayerMove checks a learner move against the book. The move must
// already be legal in the game itself; a move missing from the book is
// rejected without changing any state.
func (e *Engine) SubmitPlayerMove(move string) (Result, error) {
	if e.turn != LearnerToMove {
		return Result{}, &IllegalTransitionError{Op: "submit player move", Turn: e.turn}
	}

	child, ok := e.node.Child(move)
	if !ok {
		e.metrics.AddAttempt(false)
		e.logger.Debug().Msgf("learner move %s is not in the book", move)
		e.emit(EventRejected, move, nil)
		return Result{Accepted: false, Move: move}, nil
	}

	e.path = append(e.path, move)
	e.node = child
	e.metrics.AddAttempt(true)

	var record *metrics.DrillMetric
	result := Result{Accepted: true, Move: move}
	if child.Ends() {
		e.turn = Complete
		result.Complete = true
		record = e.complete()
	} else {
		e.turn = AutomatedToMove
		result.ReplyDue = true
	}

	e.logger.Debug().Msgf("learner played %s, now %s", move, e.turn)
	e.emit(EventLearnerMoved, move, record)
	return result, nil
}

// ToggleVariation enables or disables one reply at the first branch point.
// Disabling the last enabled reply is ignored. Toggling is allowed in every
// turn, Complete included; it only affects the next first reply.
func (e *Engine) ToggleVariation(move string) error {
	replies := book.PossibleMoves(e.start)
	if !utils.Contains(replies, move) {
		return fmt.Errorf("%w: %s", ErrUnknownVariation, move)
	}

	if utils.Contains(e.allowed, move) {
		if len(e.allowed) == 1 {
			return nil
		}
		e.allowed = utils.Without(e.allowed, move)
	} else {
		e.allowed = utils.Intersect(replies, append(slices.Clone(e.allowed), move))
	}

	e.emit(EventVariationToggled, move, nil)
	return nil
}

// Reset restarts the drill from the prefix. Enabled variations are kept.
// It is allowed in every turn and is the only way out of Complete.
func (e *Engine) Reset() {
	e.path = slices.Clone(e.prefix)
	e.node = e.start
	e.turn = AutomatedToMove
	e.epoch++

	e.metrics.Start(e.id)
	e.logger.Info().Msgf("drill reset, epoch %d", e.epoch)
	e.emit(EventReset, "", nil)
}

// Variations lists the replies at the first branch point.
func (e *Engine) Variations() []Variation {
	children := e.start.Children()
	probabilities := selector.Probabilities(children)

	variations := make([]Variation, 0, len(children))
	for _, move := range book.PossibleMoves(e.start) {
		child := children[move]
		variations = append(variations, Variation{
			Move:        move,
			Annotation:  child.Annotation(),
			Weight:      child.EffectiveWeight(),
			Probability: probabilities[move],
			Enabled:     utils.Contains(e.allowed, move),
		})
	}
	return variations
}

func (e *Engine) complete() *metrics.DrillMetric {
	record := e.metrics.Complete(e.path)
	e.logger.Info().Msgf("drill complete: %s", strings.Join(e.path[len(e.prefix):], " "))
	return &record
}

func (e *Engine) emit(kind EventKind, move string, record *metrics.DrillMetric) {
	if len(e.listeners) == 0 {
		return
	}
	event := Event{
		Kind:     kind,
		Move:     move,
		Snapshot: e.Snapshot(),
		Record:   record,
	}
	for _, l := range e.listeners {
		l(event)
	}
}
