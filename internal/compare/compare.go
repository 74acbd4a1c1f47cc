// Package compare runs several algorithms against identical input and ranks
// them by the work they did.
package compare

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/logger"
	"github.com/kazumasamatsumoto/algo/internal/monitor"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// ErrNoAlgorithms is returned when a session is given nothing to compare
var ErrNoAlgorithms = errors.New("no algorithms to compare")

// Result is the outcome of one algorithm, averaged over every round
type Result struct {
	Rank        int    `json:"rank" yaml:"rank"`
	Algorithm   string `json:"algorithm" yaml:"algorithm"`
	Name        string `json:"name" yaml:"name"`
	Steps       int    `json:"steps" yaml:"steps"`
	Comparisons int    `json:"comparisons" yaml:"comparisons"`
	Swaps       int    `json:"swaps" yaml:"swaps"`
	TimeMs      int64  `json:"time_ms" yaml:"time_ms"`
}

// Option configures a Session
type Option func(*Session)

// WithSeed fixes the seed of the first round; round i uses seed+i
func WithSeed(seed uint64) Option {
	return func(s *Session) {
		s.seed = seed
	}
}

// WithRounds repeats the comparison on n different inputs
func WithRounds(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.rounds = n
		}
	}
}

// WithConcurrency bounds how many runners execute at once
func WithConcurrency(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger replaces the discarding logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// Session compares algorithms under one set of settings
type Session struct {
	settings settings.Settings
	seed     uint64
	rounds   int
	workers  int
	log      *logger.Logger
	history  *monitor.Recorder
}

// New creates a session. Without WithSeed the seed is taken from the clock.
func New(s settings.Settings, opts ...Option) *Session {
	session := &Session{
		settings: settings.Clamp(s),
		seed:     uint64(time.Now().UnixNano()),
		rounds:   1,
		workers:  4,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(session)
	}
	session.history = monitor.NewRecorderWithConfig(monitor.Config{MaxRunsPerKind: session.rounds})
	return session
}

// History returns every run of the last Run call
func (s *Session) History() *monitor.Recorder {
	return s.history
}

// Run executes every kind for every round with the instant pacer and returns
// the results ranked by mean steps. Duplicate kinds are compared once.
func (s *Session) Run(ctx context.Context, kinds []algorithm.Kind) ([]Result, error) {
	kinds, err := normalize(kinds)
	if err != nil {
		return nil, err
	}
	s.history.Clear()

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for round := 0; round < s.rounds; round++ {
		seed := s.seed + uint64(round)
		for _, kind := range kinds {
			g.Go(func() error {
				return s.runOnce(gctx, kind, seed)
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := s.rank(kinds)
	s.log.InfoWithFields("Comparison finished", []logger.Field{
		logger.Count(len(kinds)),
		logger.F("rounds", s.rounds),
		logger.Duration(time.Since(start)),
	})
	return results, nil
}

func (s *Session) runOnce(ctx context.Context, kind algorithm.Kind, seed uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r, err := algorithm.New(kind, s.settings,
		algorithm.WithGenerator(generator.NewSeeded(seed)),
		algorithm.WithRunnerOptions(runner.WithPacer(runner.Instant())))
	if err != nil {
		return err
	}
	defer r.Close()

	r.Run(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}

	s.history.RecordRun(string(kind), r.Stats(), false)
	s.log.DebugWithFields("Compared", []logger.Field{
		logger.Algorithm(string(kind)),
		logger.F("seed", seed),
		logger.Count(r.Stats().Steps),
	})
	return nil
}

func (s *Session) rank(kinds []algorithm.Kind) []Result {
	results := make([]Result, 0, len(kinds))
	for _, kind := range kinds {
		sum, ok := s.history.Summary(string(kind))
		if !ok {
			continue
		}
		name := string(kind)
		if d, ok := algorithm.Info(kind); ok {
			name = d.Name
		}
		results = append(results, Result{
			Algorithm:   string(kind),
			Name:        name,
			Steps:       mean(sum.Steps),
			Comparisons: mean(sum.Comparisons),
			Swaps:       mean(sum.Swaps),
			TimeMs:      int64(mean(sum.TimeMs)),
		})
	}
	Rank(results)
	return results
}

// Rank orders results by steps, then time, then tag, and numbers them from 1
func Rank(results []Result) {
	slices.SortStableFunc(results, func(a, b Result) int {
		if a.Steps != b.Steps {
			return a.Steps - b.Steps
		}
		if a.TimeMs != b.TimeMs {
			if a.TimeMs < b.TimeMs {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Algorithm, b.Algorithm)
	})
	for i := range results {
		results[i].Rank = i + 1
	}
}

func mean(a monitor.Aggregates) int {
	return int(math.Round(a.Avg))
}

func normalize(kinds []algorithm.Kind) ([]algorithm.Kind, error) {
	if len(kinds) == 0 {
		return nil, ErrNoAlgorithms
	}
	out := make([]algorithm.Kind, 0, len(kinds))
	for _, k := range kinds {
		if _, err := algorithm.ParseKind(string(k)); err != nil {
			return nil, fmt.Errorf("compare: %w", err)
		}
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out, nil
}
