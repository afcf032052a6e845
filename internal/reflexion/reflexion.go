// Package reflexion implements the lookup-or-investigate-then-learn loop
// that avoids repeating root-cause analysis for previously solved errors.
package reflexion

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Fixed token charges per cycle step. The constants make cache-hit cycles
// provably cheaper than cache-miss cycles.
const (
	costStop            = 10
	costMindbaseLookup  = 500
	costGrepLookup      = 200
	costInvestigation   = 1500
	costHypothesis      = 100
	costSolutionDesign  = 200
	costLearningCapture = 100
)

// LookupSource identifies which search strategy produced a lookup result.
type LookupSource string

// Lookup sources.
const (
	SourceMindbase LookupSource = "mindbase"
	SourceGrep     LookupSource = "grep"
	SourceNone     LookupSource = "none"
)

// LookupResult is the outcome of the past-error search.
type LookupResult struct {
	Found             bool
	PastErrors        []PastError
	SolutionAvailable bool
	Solution          string
	Source            LookupSource
}

// Investigation is the (simulated) root-cause analysis produced for novel
// errors. The real search calls live outside the engine boundary.
type Investigation struct {
	RootCause      string
	Evidence       []string
	Hypothesis     string
	SolutionDesign string
	Sources        []string
}

// Result wraps a complete reflexion cycle.
type Result struct {
	ErrorMessage     string
	Lookup           LookupResult
	Investigation    *Investigation
	SolutionApplied  string
	LearningCaptured bool
	TokensUsed       int
	TimeSaved        bool
}

// Engine runs reflexion cycles against a learning store. The store is the
// only mutable state; everything else is deterministic.
type Engine struct {
	store             Store
	mindbaseAvailable bool
	now               func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithMindbase selects the semantic-search-capable lookup strategy. The
// fallback is a category-agnostic substring search.
func WithMindbase(available bool) Option {
	return func(e *Engine) { e.mindbaseAvailable = available }
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine backed by the given store.
func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{store: store, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MindbaseAvailable reports the active lookup strategy.
func (e *Engine) MindbaseAvailable() bool { return e.mindbaseAvailable }

// ExecuteCycle runs one full reflexion cycle: stop, look up past errors,
// and either apply a cached solution or investigate, design a fix, and
// capture the learning for next time.
func (e *Engine) ExecuteCycle(ctx context.Context, errorMessage string, category Category) (Result, error) {
	tokensUsed := 0

	// Step 1: stop and ask why, never retry blindly.
	tokensUsed += costStop

	lookup, err := e.Lookup(ctx, errorMessage, category)
	if err != nil {
		return Result{}, fmt.Errorf("lookup past errors: %w", err)
	}
	tokensUsed += lookupCost(lookup.Source)

	if lookup.SolutionAvailable {
		log.Debug().Str("error", errorMessage).Str("source", string(lookup.Source)).
			Msg("reflexion: cached solution found")
		return Result{
			ErrorMessage:     errorMessage,
			Lookup:           lookup,
			Investigation:    nil,
			SolutionApplied:  lookup.Solution,
			LearningCaptured: false,
			TokensUsed:       tokensUsed,
			TimeSaved:        true,
		}, nil
	}

	// No past solution: root-cause investigation is mandatory.
	investigation := investigate(errorMessage)
	tokensUsed += costInvestigation
	tokensUsed += costHypothesis
	tokensUsed += costSolutionDesign

	solution := investigation.SolutionDesign
	record := PastError{
		ErrorMessage: errorMessage,
		Category:     category,
		RootCause:    investigation.RootCause,
		Solution:     solution,
		Timestamp:    e.now().UTC(),
		Metadata:     map[string]string{"source": "reflexion"},
	}
	if err := e.store.Append(ctx, record); err != nil {
		return Result{}, fmt.Errorf("capture learning: %w", err)
	}
	tokensUsed += costLearningCapture

	log.Debug().Str("error", errorMessage).Str("category", string(category)).
		Int("tokens", tokensUsed).Msg("reflexion: learning captured")

	return Result{
		ErrorMessage:     errorMessage,
		Lookup:           lookup,
		Investigation:    &investigation,
		SolutionApplied:  solution,
		LearningCaptured: true,
		TokensUsed:       tokensUsed,
		TimeSaved:        false,
	}, nil
}

// Lookup searches the learning store for prior occurrences of the error.
// With mindbase the search additionally filters by exact category; the grep
// fallback matches on message alone.
func (e *Engine) Lookup(ctx context.Context, errorMessage string, category Category) (LookupResult, error) {
	source := SourceGrep
	if e.mindbaseAvailable {
		source = SourceMindbase
	}

	matches, err := e.store.Search(ctx, errorMessage, category, e.mindbaseAvailable)
	if err != nil {
		return LookupResult{}, err
	}
	if len(matches) == 0 {
		return LookupResult{Source: source}, nil
	}
	return LookupResult{
		Found:             true,
		PastErrors:        matches,
		SolutionAvailable: true,
		Solution:          matches[0].Solution,
		Source:            source,
	}, nil
}

func lookupCost(source LookupSource) int {
	switch source {
	case SourceMindbase:
		return costMindbaseLookup
	case SourceGrep:
		return costGrepLookup
	default:
		return 0
	}
}

func investigate(errorMessage string) Investigation {
	return Investigation{
		RootCause: fmt.Sprintf("Root cause of %s: [Identified through investigation]", errorMessage),
		Evidence: []string{
			"Official documentation: [Finding 1]",
			"Stack Overflow: [Similar issue resolved]",
			"Codebase analysis: [Pattern identified]",
		},
		Hypothesis:     fmt.Sprintf("Hypothesis: %s caused by [X] based on [evidence]", errorMessage),
		SolutionDesign: "Solution: Apply [specific fix] based on root cause understanding",
		Sources: []string{
			"WebSearch: official docs",
			"WebFetch: stackoverflow.com/questions/...",
			"Grep: codebase patterns",
		},
	}
}

// RecurrenceRate returns repeated/total as a percentage. Zero totals are
// defined as a zero rate.
func RecurrenceRate(totalErrors, repeatedErrors int) float64 {
	if totalErrors == 0 {
		return 0.0
	}
	return float64(repeatedErrors) / float64(totalErrors) * 100
}
