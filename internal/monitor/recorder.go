package monitor

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/kazumasamatsumoto/algo/internal/runner"
)

// Metric names recorded per run, prefixed with "<kind>."
const (
	MetricSteps       = "steps"
	MetricComparisons = "comparisons"
	MetricSwaps       = "swaps"
	MetricTimeMs      = "time_ms"
)

// Config bounds the history
type Config struct {
	// MaxRunsPerKind caps each series; older runs are dropped first
	MaxRunsPerKind int
}

// DefaultConfig keeps the last 100 runs of every algorithm
func DefaultConfig() Config {
	return Config{MaxRunsPerKind: 100}
}

// KindSummary aggregates every recorded run of one algorithm
type KindSummary struct {
	Kind        string     `json:"kind"`
	Runs        int        `json:"runs"`
	Stopped     int        `json:"stopped"`
	Steps       Aggregates `json:"steps"`
	Comparisons Aggregates `json:"comparisons"`
	Swaps       Aggregates `json:"swaps"`
	TimeMs      Aggregates `json:"time_ms"`
}

// Recorder stores the final stats of every run
type Recorder struct {
	store   *MetricsStore
	runs    *Counter
	stopped *Counter
	now     func() time.Time

	mu          sync.Mutex
	stoppedKind map[string]int
	wall        map[string]*Timer
}

// NewRecorder creates a recorder with the default configuration
func NewRecorder() *Recorder {
	return NewRecorderWithConfig(DefaultConfig())
}

// NewRecorderWithConfig creates a recorder
func NewRecorderWithConfig(cfg Config) *Recorder {
	return &Recorder{
		store:       NewMetricsStore(cfg.MaxRunsPerKind),
		runs:        NewCounter("runs"),
		stopped:     NewCounter("stopped"),
		now:         time.Now,
		stoppedKind: make(map[string]int),
		wall:        make(map[string]*Timer),
	}
}

// RecordRun stores one run's final stats. stopped marks a run that was
// cancelled before completing.
func (r *Recorder) RecordRun(kind string, s runner.Stats, stopped bool) {
	at := r.now()
	labels := map[string]string{"algorithm": kind}
	if stopped {
		labels["status"] = "stopped"
	} else {
		labels["status"] = "complete"
	}
	for name, v := range map[string]float64{
		MetricSteps:       float64(s.Steps),
		MetricComparisons: float64(s.Comparisons),
		MetricSwaps:       float64(s.Swaps),
	} {
		r.store.Record(Metric{Name: kind + "." + name, Type: MetricTypeCounter, Value: v, Timestamp: at, Labels: labels})
	}
	r.store.Record(Metric{Name: kind + "." + MetricTimeMs, Type: MetricTypeTiming, Value: float64(s.TimeMs), Timestamp: at, Labels: labels})

	r.runs.Inc()
	r.mu.Lock()
	if stopped {
		r.stopped.Inc()
		r.stoppedKind[kind]++
	}
	t, ok := r.wall[kind]
	if !ok {
		t = NewTimer(kind)
		r.wall[kind] = t
	}
	r.mu.Unlock()
	t.Record(time.Duration(s.TimeMs) * time.Millisecond)
}

// Runs returns the number of runs recorded and how many of them were stopped
func (r *Recorder) Runs() (total, stopped int64) {
	return r.runs.Get(), r.stopped.Get()
}

// Kinds lists the algorithms with at least one recorded run
func (r *Recorder) Kinds() []string {
	var kinds []string
	for _, name := range r.store.Names() {
		if kind, ok := strings.CutSuffix(name, "."+MetricSteps); ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Summary aggregates the recorded runs of kind
func (r *Recorder) Summary(kind string) (KindSummary, bool) {
	steps, ok := r.store.Aggregates(kind + "." + MetricSteps)
	if !ok {
		return KindSummary{}, false
	}
	comparisons, _ := r.store.Aggregates(kind + "." + MetricComparisons)
	swaps, _ := r.store.Aggregates(kind + "." + MetricSwaps)
	timeMs, _ := r.store.Aggregates(kind + "." + MetricTimeMs)

	r.mu.Lock()
	stopped := r.stoppedKind[kind]
	r.mu.Unlock()

	return KindSummary{
		Kind:        kind,
		Runs:        steps.Count,
		Stopped:     stopped,
		Steps:       steps,
		Comparisons: comparisons,
		Swaps:       swaps,
		TimeMs:      timeMs,
	}, true
}

// Summaries returns a summary per recorded algorithm, fewest mean steps first
func (r *Recorder) Summaries() []KindSummary {
	var out []KindSummary
	for _, kind := range r.Kinds() {
		if s, ok := r.Summary(kind); ok {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b KindSummary) int {
		switch {
		case a.Steps.Avg < b.Steps.Avg:
			return -1
		case a.Steps.Avg > b.Steps.Avg:
			return 1
		}
		return strings.Compare(a.Kind, b.Kind)
	})
	return out
}

// WallTime returns the timer of measured run durations for kind
func (r *Recorder) WallTime(kind string) (*Timer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.wall[kind]
	return t, ok
}

// Totals returns the run counters, then the mean wall time of every recorded
// algorithm in name order
func (r *Recorder) Totals() []Metric {
	at := r.now()
	out := []Metric{
		{Name: r.runs.Name(), Type: MetricTypeCounter, Value: float64(r.runs.Get()), Timestamp: at},
		{Name: r.stopped.Name(), Type: MetricTypeCounter, Value: float64(r.stopped.Get()), Timestamp: at},
	}

	r.mu.Lock()
	timers := make([]*Timer, 0, len(r.wall))
	for _, t := range r.wall {
		timers = append(timers, t)
	}
	r.mu.Unlock()
	slices.SortFunc(timers, func(a, b *Timer) int { return strings.Compare(a.Name(), b.Name()) })

	for _, t := range timers {
		out = append(out, Metric{
			Name:      t.Name() + "." + MetricTimeMs,
			Type:      MetricTypeTiming,
			Value:     float64(t.AvgTime().Milliseconds()),
			Timestamp: at,
			Labels:    map[string]string{"algorithm": t.Name(), "aggregate": "avg"},
		})
	}
	return out
}

// Clear drops the whole history
func (r *Recorder) Clear() {
	r.store.Clear()
	r.runs.Reset()
	r.stopped.Reset()
	r.mu.Lock()
	r.stoppedKind = make(map[string]int)
	r.wall = make(map[string]*Timer)
	r.mu.Unlock()
}
