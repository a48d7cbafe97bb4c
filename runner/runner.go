package runner

import (
	"drill/metrics"
	"drill/oracle"
	"drill/session"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Scheduler defers a call. The default runs f on its own goroutine after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

type Option func(r *Runner)

// WithDelay sets how long the automated side waits before replying.
func WithDelay(delay time.Duration) Option {
	return func(r *Runner) {
		if delay >= 0 {
			r.delay = delay
		}
	}
}

func WithScheduler(s Scheduler) Option {
	return func(r *Runner) {
		if s != nil {
			r.scheduler = s
		}
	}
}

func WithOracle(o oracle.Oracle) Option {
	return func(r *Runner) {
		if o != nil {
			r.oracle = o
		}
	}
}

// Runner orchestrates a session for a presentation layer: it checks learner
// input with the legality oracle, and schedules the automated side's replies
// after a delay. All calls into the engine are serialized.
type Runner struct {
	mu           sync.Mutex
	engine       *session.Engine
	oracle       oracle.Oracle
	scheduler    Scheduler
	delay        time.Duration
	pending      bool
	pendingEpoch uint64
	records      []metrics.DrillMetric
}

func New(engine *session.Engine, options ...Option) *Runner {
	r := &Runner{
		engine:    engine,
		oracle:    oracle.Notation{},
		scheduler: timerScheduler{},
	}
	for _, option := range options {
		option(r)
	}
	engine.Subscribe(func(ev session.Event) {
		if ev.Record != nil {
			r.records = append(r.records, *ev.Record)
		}
	})
	return r
}

// Subscribe registers a listener on the underlying session. Listeners run
// while the runner holds its lock and must not call back into the runner.
func (r *Runner) Subscribe(l session.Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.engine.Subscribe(l)
}

// Begin schedules the automated side's first reply.
func (r *Runner) Begin() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scheduleReply()
}

// Submit normalizes input through the oracle and plays it for the learner.
// Oracle rejections are returned as errors wrapping oracle.ErrRejected; book
// misses come back as a result that was not accepted.
func (r *Runner) Submit(input string) (session.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	move, err := r.oracle.Normalize(input)
	if err != nil {
		return session.Result{Move: input}, err
	}

	result, err := r.engine.SubmitPlayerMove(move)
	if err != nil {
		return result, fmt.Errorf("failed to submit %s: %w", move, err)
	}
	if result.ReplyDue {
		r.scheduleReply()
	}
	return result, nil
}

func (r *Runner) ToggleVariation(move string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.engine.ToggleVariation(move)
}

// Reset restarts the drill. A reply still pending from before the reset is
// dropped when it fires.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.engine.Reset()
	r.scheduleReply()
}

func (r *Runner) Snapshot() session.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.engine.Snapshot()
}

func (r *Runner) Variations() []session.Variation {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.engine.Variations()
}

// Records returns the statistics of every drill completed so far.
func (r *Runner) Records() []metrics.DrillMetric {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]metrics.DrillMetric{}, r.records...)
}

// scheduleReply must be called with r.mu held.
func (r *Runner) scheduleReply() {
	if r.engine.Turn() != session.AutomatedToMove {
		return
	}
	epoch := r.engine.Epoch()
	if r.pending && r.pendingEpoch == epoch { // At most one reply per epoch in flight
		return
	}
	r.pending = true
	r.pendingEpoch = epoch

	r.scheduler.AfterFunc(r.delay, func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		if r.pendingEpoch == epoch {
			r.pending = false
		}
		if _, _, err := r.engine.AdvanceAutomatedAt(epoch); err != nil {
			log.Error().Err(err).Msg("automated reply failed")
		}
	})
}
