package metrics

import (
	"slices"
	"sync/atomic"
	"time"
)

// DrillMetric summarizes one drill, from start or reset to completion.
type DrillMetric struct {
	Session        string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	Attempts       int // Learner submissions, accepted or not
	Rejections     int
	AutomatedMoves int
	Line           []string
}

type Collector interface {
	Start(session string)
	AddAttempt(accepted bool)
	AddAutomatedMove()
	Complete(line []string) DrillMetric
}

type collector struct {
	session        atomic.Value
	startTime      atomic.Int64
	attempts       atomic.Int32
	rejections     atomic.Int32
	automatedMoves atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

// Start begins a new drill and clears the counters of the previous one.
func (m *collector) Start(session string) {
	m.session.Store(session)
	m.startTime.Store(time.Now().UnixNano())
	m.attempts.Store(0)
	m.rejections.Store(0)
	m.automatedMoves.Store(0)
}

func (m *collector) AddAttempt(accepted bool) {
	m.attempts.Add(1)
	if !accepted {
		m.rejections.Add(1)
	}
}

func (m *collector) AddAutomatedMove() {
	m.automatedMoves.Add(1)
}

func (m *collector) Complete(line []string) DrillMetric {
	start := time.Unix(0, m.startTime.Load())
	end := time.Now()
	session, _ := m.session.Load().(string)
	return DrillMetric{
		Session:        session,
		StartTime:      start,
		EndTime:        end,
		Duration:       end.Sub(start),
		Attempts:       int(m.attempts.Load()),
		Rejections:     int(m.rejections.Load()),
		AutomatedMoves: int(m.automatedMoves.Load()),
		Line:           slices.Clone(line),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(session string)               {}
func (m *dummyCollector) AddAttempt(accepted bool)           {}
func (m *dummyCollector) AddAutomatedMove()                  {}
func (m *dummyCollector) Complete(line []string) DrillMetric { return DrillMetric{} }
