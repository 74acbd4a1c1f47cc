// Package monitor keeps the history of runs: one series per algorithm and
// counter, with min/max/percentile aggregates over it.
package monitor

import (
	"math"
	"sync/atomic"
	"time"
)

// MetricType is the kind of value a series holds
type MetricType string

const (
	MetricTypeCounter MetricType = "counter"
	MetricTypeTiming  MetricType = "timing"
)

// Metric is a single recorded value
type Metric struct {
	Name      string            `json:"name"`
	Type      MetricType        `json:"type"`
	Value     float64           `json:"value"`
	Timestamp time.Time         `json:"timestamp"`
	Labels    map[string]string `json:"labels,omitempty"`
}

// Counter is a thread-safe counter
type Counter struct {
	value int64
	name  string
}

// NewCounter creates a counter
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc adds one
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Get returns the current value
func (c *Counter) Get() int64 {
	return atomic.LoadInt64(&c.value)
}

// Reset sets the counter back to zero
func (c *Counter) Reset() {
	atomic.StoreInt64(&c.value, 0)
}

// Name returns the counter name
func (c *Counter) Name() string {
	return c.name
}

const noMin = math.MaxInt64

// Timer tracks count, total, min and max of recorded durations
type Timer struct {
	count     int64
	totalTime int64
	minTime   int64
	maxTime   int64
	name      string
}

// NewTimer creates a timer
func NewTimer(name string) *Timer {
	return &Timer{name: name, minTime: noMin}
}

// Record adds one duration
func (t *Timer) Record(d time.Duration) {
	nanos := d.Nanoseconds()
	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.totalTime, nanos)

	for {
		cur := atomic.LoadInt64(&t.minTime)
		if nanos >= cur || atomic.CompareAndSwapInt64(&t.minTime, cur, nanos) {
			break
		}
	}
	for {
		cur := atomic.LoadInt64(&t.maxTime)
		if nanos <= cur || atomic.CompareAndSwapInt64(&t.maxTime, cur, nanos) {
			break
		}
	}
}

// Count returns the number of recorded durations
func (t *Timer) Count() int64 {
	return atomic.LoadInt64(&t.count)
}

// MinTime returns the shortest duration, 0 before the first record
func (t *Timer) MinTime() time.Duration {
	m := atomic.LoadInt64(&t.minTime)
	if m == noMin {
		return 0
	}
	return time.Duration(m)
}

// MaxTime returns the longest duration
func (t *Timer) MaxTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.maxTime))
}

// AvgTime returns the mean duration
func (t *Timer) AvgTime() time.Duration {
	n := atomic.LoadInt64(&t.count)
	if n == 0 {
		return 0
	}
	return time.Duration(atomic.LoadInt64(&t.totalTime) / n)
}

// Reset clears every measurement
func (t *Timer) Reset() {
	atomic.StoreInt64(&t.count, 0)
	atomic.StoreInt64(&t.totalTime, 0)
	atomic.StoreInt64(&t.minTime, noMin)
	atomic.StoreInt64(&t.maxTime, 0)
}

// Name returns the timer name
func (t *Timer) Name() string {
	return t.name
}
