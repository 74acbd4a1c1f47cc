package runner

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kazumasamatsumoto/algo/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	stats   *Stats
	running *bool
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) StatsChanged(s Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{stats: &s})
}

func (r *recorder) RunningChanged(b bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{running: &b})
}

func (r *recorder) snapshot() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event(nil), r.events...)
}

// loop counts n steps, pausing after each one
func loop(l *Lifecycle, n int) func(tok *Token) {
	return func(tok *Token) {
		for i := 0; i < n; i++ {
			if tok.Stopped() {
				return
			}
			l.Step(tok)
			l.Compare(tok)
			if !l.Pause(tok, 1) {
				return
			}
		}
	}
}

func TestExecuteCompletes(t *testing.T) {
	rec := &recorder{}
	l := NewLifecycle("loop", settings.Default(), WithPacer(Instant()), WithObserver(rec))

	ran := l.Execute(context.Background(), loop(l, 5))

	require.True(t, ran)
	assert.False(t, l.IsRunning())
	assert.Equal(t, 5, l.Stats().Steps)
	assert.Equal(t, 5, l.Stats().Comparisons)

	events := rec.snapshot()
	require.NotEmpty(t, events)
	require.NotNil(t, events[0].stats)
	assert.True(t, events[0].stats.IsZero(), "first notification carries zeroed stats")
	last := events[len(events)-1]
	require.NotNil(t, last.running)
	assert.False(t, *last.running)
}

func TestExecuteIsIdempotentWhileRunning(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	pacer := PacerFunc(func(tok *Token, _ time.Duration) bool {
		once.Do(func() { close(entered) })
		select {
		case <-release:
		case <-tok.Done():
		}
		return !tok.Stopped()
	})
	l := NewLifecycle("loop", settings.Default(), WithPacer(pacer))

	done := make(chan bool)
	go func() { done <- l.Execute(context.Background(), loop(l, 1)) }()
	<-entered

	before := l.Stats()
	assert.False(t, l.Execute(context.Background(), loop(l, 100)))
	assert.Equal(t, before, l.Stats())
	assert.True(t, l.IsRunning())

	close(release)
	assert.True(t, <-done)
	assert.Equal(t, 1, l.Stats().Steps)
}

func TestConcurrentExecuteRunsOneBody(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		l := NewLifecycle("loop", settings.Default(), WithPacer(Instant()))

		var bodies atomic.Int32
		release := make(chan struct{})
		body := func(tok *Token) {
			bodies.Add(1)
			l.Step(tok)
			<-release
		}

		start := make(chan struct{})
		results := make(chan bool, 2)
		var ready sync.WaitGroup
		ready.Add(2)
		for i := 0; i < 2; i++ {
			go func() {
				ready.Done()
				<-start
				results <- l.Execute(context.Background(), body)
			}()
		}
		ready.Wait()
		close(start)

		// the loser returns without waiting for the winner's body
		require.False(t, <-results, "trial %d", trial)
		close(release)
		require.True(t, <-results, "trial %d", trial)

		assert.Equal(t, int32(1), bodies.Load(), "trial %d", trial)
		assert.Equal(t, 1, l.Stats().Steps, "trial %d", trial)
		assert.False(t, l.IsRunning())
	}
}

func TestExecuteWaitsForStoppedBodyToUnwind(t *testing.T) {
	rec := &recorder{}
	l := NewLifecycle("loop", settings.Default(), WithPacer(Instant()), WithObserver(rec))

	entered := make(chan struct{})
	unwind := make(chan struct{})
	var firstDone atomic.Bool
	first := make(chan bool)
	go func() {
		first <- l.Execute(context.Background(), func(tok *Token) {
			close(entered)
			<-unwind
			l.Step(tok)
			firstDone.Store(true)
		})
	}()
	<-entered
	l.Stop()

	second := make(chan bool)
	sawFirstDone := make(chan bool, 1)
	go func() {
		second <- l.Execute(context.Background(), func(tok *Token) {
			sawFirstDone <- firstDone.Load()
			l.Step(tok)
			l.Step(tok)
		})
	}()

	// the second run holds the claim while the first body unwinds
	require.Eventually(t, l.IsRunning, time.Second, time.Millisecond)
	assert.False(t, l.Execute(context.Background(), loop(l, 1)))

	close(unwind)
	assert.True(t, <-first)
	assert.True(t, <-second)
	assert.True(t, <-sawFirstDone)
	assert.Equal(t, 2, l.Stats().Steps)
	assert.False(t, l.IsRunning())

	events := rec.snapshot()
	last := events[len(events)-1]
	require.NotNil(t, last.running)
	assert.False(t, *last.running)
}

func TestStopMonotonicity(t *testing.T) {
	rec := &recorder{}
	var l *Lifecycle
	stopAt := 3
	pauses := 0
	var afterStop int
	pacer := PacerFunc(func(tok *Token, _ time.Duration) bool {
		pauses++
		if pauses == stopAt {
			l.Stop()
			afterStop = len(rec.snapshot())
		}
		return !tok.Stopped()
	})
	l = NewLifecycle("loop", settings.Default(), WithPacer(pacer), WithObserver(rec))

	l.Execute(context.Background(), loop(l, 50))

	events := rec.snapshot()
	for _, e := range events[afterStop:] {
		if e.running != nil {
			assert.False(t, *e.running, "running=true emitted after stop")
		}
	}
	assert.Equal(t, stopAt, l.Stats().Steps)
	assert.False(t, l.IsRunning())
}

func TestStatsNonDecreasingAndZeroedPerRun(t *testing.T) {
	rec := &recorder{}
	l := NewLifecycle("loop", settings.Default(), WithPacer(Instant()), WithObserver(rec))

	l.Execute(context.Background(), loop(l, 10))
	first := len(rec.snapshot())
	l.Execute(context.Background(), loop(l, 4))

	events := rec.snapshot()
	second := events[first:]
	require.NotNil(t, second[0].stats)
	assert.True(t, second[0].stats.IsZero())

	var prev Stats
	for _, e := range second {
		if e.stats == nil {
			continue
		}
		assert.GreaterOrEqual(t, e.stats.Steps, prev.Steps)
		assert.GreaterOrEqual(t, e.stats.Comparisons, prev.Comparisons)
		assert.GreaterOrEqual(t, e.stats.Swaps, prev.Swaps)
		prev = *e.stats
	}
	assert.Equal(t, 4, l.Stats().Steps)

	l.ResetStats()
	assert.True(t, l.Stats().IsZero())
}

func TestStopWhenIdleIsNoop(t *testing.T) {
	rec := &recorder{}
	l := NewLifecycle("loop", settings.Default(), WithObserver(rec))

	l.Stop()
	l.Close()

	assert.Empty(t, rec.snapshot())
	assert.False(t, l.IsRunning())
}

func TestContextCancellationStopsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pauses := 0
	pacer := PacerFunc(func(tok *Token, _ time.Duration) bool {
		pauses++
		if pauses == 2 {
			cancel()
			<-tok.Done()
		}
		return !tok.Stopped()
	})
	l := NewLifecycle("loop", settings.Default(), WithPacer(pacer))

	l.Execute(ctx, loop(l, 20))

	assert.Equal(t, 2, l.Stats().Steps)
	assert.False(t, l.IsRunning())
}

func TestElapsedTimeUsesClock(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		return base.Add(time.Duration(calls-1) * 250 * time.Millisecond)
	}
	l := NewLifecycle("loop", settings.Default(), WithPacer(Instant()), WithClock(clock))

	l.Execute(context.Background(), loop(l, 1))

	assert.Equal(t, int64(250), l.Stats().TimeMs)
}

func TestIncrementsIgnoredAfterStop(t *testing.T) {
	l := NewLifecycle("loop", settings.Default(), WithPacer(Instant()))

	l.Execute(context.Background(), func(tok *Token) {
		l.Step(tok)
		l.Stop()
		l.Step(tok)
		l.Swap(tok)
	})

	assert.Equal(t, 1, l.Stats().Steps)
	assert.Zero(t, l.Stats().Swaps)
}

func TestPauseScalesWithSpeed(t *testing.T) {
	var got time.Duration
	pacer := PacerFunc(func(tok *Token, d time.Duration) bool {
		got = d
		return true
	})
	s := settings.Default()
	s.Speed = 400
	l := NewLifecycle("loop", s, WithPacer(pacer))

	l.Execute(context.Background(), func(tok *Token) {
		l.Pause(tok, 0.5)
	})

	assert.Equal(t, 200*time.Millisecond, got)
}
