// Package host owns the single active runner of a session and keeps it in
// step with the settings store.
package host

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/logger"
	"github.com/kazumasamatsumoto/algo/internal/monitor"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// Option configures a Shell
type Option func(*Shell)

// WithObserver receives the notifications of whichever runner is current
func WithObserver(o runner.Observer) Option {
	return func(s *Shell) {
		s.observer = o
	}
}

// WithLogger replaces the discarding logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Shell) {
		s.log = l
	}
}

// WithGenerator makes every runner draw its input from gen
func WithGenerator(gen *generator.Generator) Option {
	return func(s *Shell) {
		s.gen = gen
	}
}

// WithRecorder records the final stats of every run into rec
func WithRecorder(rec *monitor.Recorder) Option {
	return func(s *Shell) {
		s.history = rec
	}
}

// WithRunnerOptions is appended to the options of every runner the shell creates
func WithRunnerOptions(opts ...runner.Option) Option {
	return func(s *Shell) {
		s.runnerOpts = append(s.runnerOpts, opts...)
	}
}

// Shell holds at most one runner at a time
type Shell struct {
	store      *settings.Store
	log        *logger.Logger
	gen        *generator.Generator
	history    *monitor.Recorder
	observer   runner.Observer
	runnerOpts []runner.Option

	mu          sync.Mutex
	current     runner.Runner
	kind        algorithm.Kind
	unsubscribe func()

	// active is the run the shell last started, nil once it returns
	active *activeRun

	// generation identifies the current runner; notifications from older
	// runners are dropped
	generation atomic.Uint64
}

// activeRun tracks one Run call on one runner
type activeRun struct {
	r runner.Runner
	// interrupted is set when anything but completion ends the run
	interrupted atomic.Bool
}

// New creates a shell bound to store. Nothing is selected yet.
func New(store *settings.Store, opts ...Option) *Shell {
	s := &Shell{
		store:   store,
		log:     logger.Discard(),
		history: monitor.NewRecorder(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = generator.New()
	}
	s.unsubscribe = store.Subscribe(s.settingsChanged)
	return s
}

// Select discards the current runner and creates one of kind. An unknown
// kind is logged and leaves the shell untouched.
func (s *Shell) Select(kind algorithm.Kind) error {
	if !kind.Valid() {
		err := unknown(kind)
		s.log.WarnWithFields("Cannot select algorithm", []logger.Field{logger.Algorithm(string(kind)), logger.Error(err)})
		return err
	}

	s.mu.Lock()
	prev := s.current
	s.current = nil
	gen := s.generation.Add(1)
	s.mu.Unlock()

	if prev != nil {
		s.interrupt(prev)
		prev.Close()
	}

	opts := append([]runner.Option{runner.WithObserver(s.forward(gen))}, s.runnerOpts...)
	r, err := algorithm.New(kind, s.store.Current(),
		algorithm.WithGenerator(s.gen),
		algorithm.WithRunnerOptions(opts...))
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.generation.Load() != gen {
		// a concurrent Select won
		s.mu.Unlock()
		r.Close()
		return nil
	}
	s.current = r
	s.kind = kind
	s.mu.Unlock()

	s.log.InfoWithFields("Selected algorithm", []logger.Field{logger.Algorithm(string(kind))})
	return nil
}

// Run executes the current runner on the calling goroutine. It returns
// immediately when nothing is selected or the runner is already running.
func (s *Shell) Run(ctx context.Context) {
	s.mu.Lock()
	r, kind := s.current, s.kind
	if r == nil || (s.active != nil && s.active.r == r) {
		s.mu.Unlock()
		return
	}
	run := &activeRun{r: r}
	s.active = run
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.active == run {
			s.active = nil
		}
		s.mu.Unlock()
	}()

	start := time.Now()
	s.log.DebugWithFields("Run started", []logger.Field{logger.Algorithm(string(kind))})

	if !r.Run(ctx) {
		return
	}

	stats := r.Stats()
	stopped := run.interrupted.Load() || ctx.Err() != nil
	s.history.RecordRun(string(kind), stats, stopped)
	s.log.InfoWithFields("Run finished", []logger.Field{
		logger.Algorithm(string(kind)),
		logger.F("stopped", stopped),
		logger.Count(stats.Steps),
		logger.Duration(time.Since(start)),
	})
}

// Stop asks the current runner to stop
func (s *Shell) Stop() {
	if r, _ := s.snapshot(); r != nil {
		s.interrupt(r)
		r.Stop()
	}
}

// Reset stops the current runner and regenerates its input
func (s *Shell) Reset() {
	if r, _ := s.snapshot(); r != nil {
		s.interrupt(r)
		r.Reset()
	}
}

// Current returns the selected runner, nil before the first Select
func (s *Shell) Current() runner.Runner {
	r, _ := s.snapshot()
	return r
}

// Kind returns the selected algorithm, empty before the first Select
func (s *Shell) Kind() algorithm.Kind {
	_, k := s.snapshot()
	return k
}

// Stats returns the current runner's stats, zero when nothing is selected
func (s *Shell) Stats() runner.Stats {
	if r, _ := s.snapshot(); r != nil {
		return r.Stats()
	}
	return runner.Stats{}
}

// IsRunning reports whether the current runner is executing
func (s *Shell) IsRunning() bool {
	r, _ := s.snapshot()
	return r != nil && r.IsRunning()
}

// History returns the run history
func (s *Shell) History() *monitor.Recorder {
	return s.history
}

// Close discards the current runner and stops following the settings store
func (s *Shell) Close() {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.kind = ""
	s.generation.Add(1)
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if prev != nil {
		s.interrupt(prev)
		prev.Close()
	}
}

// interrupt marks the active run on r as ended by something other than
// completion
func (s *Shell) interrupt(r runner.Runner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && s.active.r == r {
		s.active.interrupted.Store(true)
	}
}

func (s *Shell) snapshot() (runner.Runner, algorithm.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.kind
}

func (s *Shell) settingsChanged(next settings.Settings) {
	r, kind := s.snapshot()
	if r == nil {
		return
	}
	if r.IsRunning() {
		s.interrupt(r)
	}
	s.log.DebugWithFields("Applying settings", []logger.Field{
		logger.Algorithm(string(kind)),
		logger.F("size", next.ArraySize),
		logger.F("speed", next.Speed),
	})
	r.SetSettings(next)
}

func (s *Shell) forward(gen uint64) runner.Observer {
	return runner.ObserverFuncs{
		OnStats: func(st runner.Stats) {
			if s.observer != nil && s.generation.Load() == gen {
				s.observer.StatsChanged(st)
			}
		},
		OnRunning: func(running bool) {
			if s.observer != nil && s.generation.Load() == gen {
				s.observer.RunningChanged(running)
			}
		},
	}
}

func unknown(kind algorithm.Kind) error {
	_, err := algorithm.ParseKind(string(kind))
	return err
}
