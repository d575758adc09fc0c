// Package script lets a tengo script rank lock-on candidates.
//
// A selection script defines a global function
//
//	score := func(c) { ... }
//
// which receives one candidate as a map with the keys index, id, distance,
// angle, dot and radius and returns a number. The highest score wins; equal
// scores keep the earlier candidate.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/lockon/lockon"
)

var (
	ErrNoScoreFunc    = errors.New("script: no score function")
	ErrScoreNotNumber = errors.New("script: score is not a number")
)

const scoreDispatchScript = `
__score = score(__candidate)
`

const defaultBudget = 5 * time.Millisecond

type Option func(s *Selector)

// WithFallback sets the selector used when the script fails at runtime.
func WithFallback(f lockon.Selector) Option {
	return func(s *Selector) {
		if f != nil {
			s.fallback = f
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBudget bounds the run time of a single score call.
func WithBudget(d time.Duration) Option {
	return func(s *Selector) {
		if d > 0 {
			s.budget = d
		}
	}
}

// Selector is a lockon.Selector backed by a compiled script. It is not safe
// for concurrent use.
type Selector struct {
	name     string
	compiled *tengo.Compiled
	fallback lockon.Selector
	logger   *log.Logger
	budget   time.Duration
}

// New compiles src. name is only used in errors and logs.
func New(name string, src []byte, opts ...Option) (*Selector, error) {
	if err := checkScoreFunc(name, src); err != nil {
		return nil, err
	}

	script := tengo.NewScript(append(append([]byte{}, src...), scoreDispatchScript...))
	_ = script.Add("__candidate", map[string]any{})
	_ = script.Add("__score", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}

	s := &Selector{
		name:     name,
		compiled: compiled,
		fallback: lockon.NearestSelector{},
		logger:   log.New(io.Discard),
		budget:   defaultBudget,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// checkScoreFunc runs the script body on its own and makes sure it leaves a
// callable score behind.
func checkScoreFunc(name string, src []byte) error {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", name, err)
	}
	if err := compiled.Run(); err != nil {
		return fmt.Errorf("script: run %s: %w", name, err)
	}
	if !compiled.IsDefined("score") || !compiled.Get("score").Object().CanCall() {
		return fmt.Errorf("%w in %s", ErrNoScoreFunc, name)
	}
	return nil
}

func (s *Selector) Name() string {
	return s.name
}

// Score runs the script for one candidate.
func (s *Selector) Score(index int, c lockon.Candidate, radius float64) (float64, error) {
	candidate := map[string]any{
		"index":    int64(index),
		"id":       int64(c.ID),
		"distance": c.Distance,
		"angle":    c.Angle,
		"dot":      c.Dot,
		"radius":   radius,
	}
	if err := s.compiled.Set("__candidate", candidate); err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.budget)
	defer cancel()
	if err := s.compiled.RunContext(ctx); err != nil {
		return 0, fmt.Errorf("script: run %s: %w", s.name, err)
	}

	switch v := s.compiled.Get("__score").Object().(type) {
	case *tengo.Float:
		return v.Value, nil
	case *tengo.Int:
		return float64(v.Value), nil
	default:
		return 0, fmt.Errorf("%w: %s returned %s", ErrScoreNotNumber, s.name, v.TypeName())
	}
}

// Select implements lockon.Selector. A script error hands the whole decision
// to the fallback selector for this scan.
func (s *Selector) Select(candidates []lockon.Candidate, radius float64) (lockon.Candidate, bool) {
	var best lockon.Candidate
	bestScore := 0.0
	found := false
	for i, c := range candidates {
		score, err := s.Score(i, c, radius)
		if err != nil {
			s.logger.Warn("selection script failed, using fallback", "script", s.name, "err", err)
			return s.fallback.Select(candidates, radius)
		}
		if !found || score > bestScore {
			best, bestScore, found = c, score, true
		}
	}
	return best, found
}
