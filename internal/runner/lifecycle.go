package runner

import (
	"context"
	"sync"
	"time"

	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// Runner is one algorithm instance with its own working data.
//
// Lifecycle: Reset moves it to Ready, Run executes the body until it completes
// or is stopped, Stop requests cooperative cancellation, Close is Stop for a
// runner that is being discarded.
type Runner interface {
	Kind() string
	Reset()
	// Run reports false when another run already holds the runner
	Run(ctx context.Context) bool
	Stop()
	Close()
	Stats() Stats
	IsRunning() bool
	Settings() settings.Settings
	SetSettings(settings.Settings)
	Observe(Observer)

	// Render draws the current working data as text
	Render() string
	// Summary describes the result (or progress) in one line
	Summary() string
}

// Option configures a Lifecycle
type Option func(*Lifecycle)

// WithObserver registers o before the first notification
func WithObserver(o Observer) Option {
	return func(l *Lifecycle) {
		l.observers = append(l.observers, o)
	}
}

// WithPacer replaces the real time pacer
func WithPacer(p Pacer) Option {
	return func(l *Lifecycle) {
		l.pacer = p
	}
}

// WithClock replaces time.Now for elapsed time measurement
func WithClock(now func() time.Time) Option {
	return func(l *Lifecycle) {
		l.now = now
	}
}

// Lifecycle carries the state every runner shares: running flag, stats,
// settings, the current token and the observers. Concrete runners embed it and
// supply Reset, Run, Render and Summary.
type Lifecycle struct {
	kind string

	mu       sync.Mutex
	notifyMu sync.Mutex

	running  bool
	token    *Token
	bodyDone chan struct{} // closed when the latest body returns
	epoch    uint64
	stats    Stats
	settings settings.Settings
	started  time.Time

	observers []Observer
	pacer     Pacer
	now       func() time.Time
}

// NewLifecycle creates the shared state for a runner of kind
func NewLifecycle(kind string, s settings.Settings, opts ...Option) *Lifecycle {
	l := &Lifecycle{
		kind:     kind,
		settings: settings.Clamp(s),
		pacer:    RealTime(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Kind returns the algorithm tag
func (l *Lifecycle) Kind() string {
	return l.kind
}

// Observe registers an additional observer
func (l *Lifecycle) Observe(o Observer) {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()
	l.observers = append(l.observers, o)
}

// Execute runs body under the run protocol. It returns false without side
// effects when a run is already in progress.
func (l *Lifecycle) Execute(ctx context.Context, body func(tok *Token)) bool {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return false
	}
	tok := NewToken()
	prev := l.bodyDone
	done := make(chan struct{})
	l.token = tok
	l.running = true
	l.bodyDone = done
	l.mu.Unlock()
	defer close(done)

	// a stopped body may still be unwinding up to its next poll
	if prev != nil {
		<-prev
	}

	l.mu.Lock()
	l.stats = Stats{}
	l.started = l.now()
	epoch := l.epoch
	l.mu.Unlock()

	l.notifyMu.Lock()
	if !tok.Stopped() {
		l.emitStats(Stats{})
		l.emitRunning(true)
	}
	l.notifyMu.Unlock()

	release := context.AfterFunc(ctx, func() { l.stopToken(tok) })
	defer release()

	body(tok)

	l.mu.Lock()
	if l.token != tok {
		// a newer run owns the stats and the running flag
		l.mu.Unlock()
		return true
	}
	l.running = false
	if l.epoch == epoch {
		l.stats.TimeMs = l.now().Sub(l.started).Milliseconds()
	}
	final := l.stats
	l.mu.Unlock()

	l.notifyMu.Lock()
	l.emitStats(final)
	l.emitRunning(false)
	l.notifyMu.Unlock()
	return true
}

// Stop flips the running flag and stops the current token. The body observes
// it at its next poll. No-op when not running.
func (l *Lifecycle) Stop() {
	l.mu.Lock()
	tok := l.token
	l.mu.Unlock()
	if tok != nil {
		l.stopToken(tok)
	}
}

func (l *Lifecycle) stopToken(tok *Token) {
	l.mu.Lock()
	if l.token != tok || !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	tok.Stop()
	l.mu.Unlock()

	l.notifyMu.Lock()
	l.emitRunning(false)
	l.notifyMu.Unlock()
}

// Close stops any in-flight run
func (l *Lifecycle) Close() {
	l.Stop()
}

// ResetStats zeroes the counters and notifies observers
func (l *Lifecycle) ResetStats() {
	l.mu.Lock()
	l.stats = Stats{}
	l.epoch++
	l.mu.Unlock()

	l.notifyMu.Lock()
	l.emitStats(Stats{})
	l.notifyMu.Unlock()
}

// Stats returns a copy of the counters
func (l *Lifecycle) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// IsRunning reports the running flag
func (l *Lifecycle) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Settings returns the settings the working data was derived from
func (l *Lifecycle) Settings() settings.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings
}

// StoreSettings replaces the settings without resetting. Runners call it from
// their SetSettings before regenerating working data.
func (l *Lifecycle) StoreSettings(s settings.Settings) {
	l.mu.Lock()
	l.settings = settings.Clamp(s)
	l.mu.Unlock()
}

// Step counts one visible iteration
func (l *Lifecycle) Step(tok *Token) {
	l.count(tok, func(s *Stats) { s.Steps++ })
}

// Compare counts one branch deciding comparison
func (l *Lifecycle) Compare(tok *Token) {
	l.count(tok, func(s *Stats) { s.Comparisons++ })
}

// Swap counts one exchange or one update of a stored best value
func (l *Lifecycle) Swap(tok *Token) {
	l.count(tok, func(s *Stats) { s.Swaps++ })
}

func (l *Lifecycle) count(tok *Token, inc func(*Stats)) {
	l.mu.Lock()
	if tok.Stopped() || l.token != tok {
		l.mu.Unlock()
		return
	}
	inc(&l.stats)
	snapshot := l.stats
	l.mu.Unlock()

	l.notifyMu.Lock()
	if !tok.Stopped() {
		l.emitStats(snapshot)
	}
	l.notifyMu.Unlock()
}

// Pause waits factor times the configured speed. It returns false when the
// run has been stopped and the body must return.
func (l *Lifecycle) Pause(tok *Token, factor float64) bool {
	if tok.Stopped() {
		return false
	}
	speed := l.Settings().Speed
	d := time.Duration(float64(speed)*factor) * time.Millisecond
	return l.pacer.Pause(tok, d)
}

func (l *Lifecycle) emitStats(s Stats) {
	for _, o := range l.observers {
		o.StatsChanged(s)
	}
}

func (l *Lifecycle) emitRunning(running bool) {
	for _, o := range l.observers {
		o.RunningChanged(running)
	}
}
