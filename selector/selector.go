package selector

import (
	"drill/book"
	"drill/utils"
	"sort"

	"golang.org/x/exp/rand"
)

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

type Option func(s *Selector)

// WithSeed makes selection reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Selector) {
		s.source = rand.New(rand.NewSource(seed))
	}
}

func WithSource(source Source) Option {
	return func(s *Selector) {
		if source != nil {
			s.source = source
		}
	}
}

// Selector picks the automated side's reply among weighted sibling moves.
// It is not safe for concurrent use when built with WithSeed.
type Selector struct {
	source Source
}

func New(options ...Option) *Selector {
	s := &Selector{source: globalSource{}}
	for _, option := range options {
		option(s)
	}
	return s
}

// Select returns one label of children, restricted to allowed when allowed is
// non-nil. It returns false when no candidate remains, which callers treat as
// the end of the line.
func (s *Selector) Select(children map[string]*book.MoveNode, allowed []string) (string, bool) {
	candidates := make([]string, 0, len(children))
	for _, move := range sortedLabels(children) {
		if allowed == nil || utils.Contains(allowed, move) {
			candidates = append(candidates, move)
		}
	}

	if len(candidates) == 0 {
		return "", false
	}
	if len(candidates) == 1 { // No draw when the choice is moot
		return candidates[0], true
	}

	total := 0.0
	cumulative := make([]float64, len(candidates))
	for i, move := range candidates {
		total += weightOf(children[move])
		cumulative[i] = total
	}

	sampled := s.source.Float64() * total
	for i, move := range candidates {
		if cumulative[i] >= sampled {
			return move, true
		}
	}
	return candidates[len(candidates)-1], true // Fallback in case of rounding errors
}

// Probabilities normalizes the children's weights into selection probabilities.
func Probabilities(children map[string]*book.MoveNode) map[string]float64 {
	probabilities := make(map[string]float64, len(children))
	if len(children) == 0 {
		return probabilities
	}

	total := 0.0
	for _, child := range children {
		total += weightOf(child)
	}

	for move, child := range children {
		if total == 0 {
			probabilities[move] = 1 / float64(len(children))
			continue
		}
		probabilities[move] = weightOf(child) / total
	}
	return probabilities
}

func sortedLabels(children map[string]*book.MoveNode) []string {
	labels := make([]string, 0, len(children))
	for move := range children {
		labels = append(labels, move)
	}
	sort.Strings(labels)
	return labels
}

func weightOf(child *book.MoveNode) float64 {
	if child == nil {
		return book.DefaultWeight
	}
	return child.EffectiveWeight()
}
