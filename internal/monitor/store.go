package monitor

import (
	"slices"
	"sync"
	"time"
)

// DataPoint is one value of a series
type DataPoint struct {
	Timestamp time.Time         `json:"timestamp"`
	Value     float64           `json:"value"`
	Labels    map[string]string `json:"labels,omitempty"`
}

// TimeSeries is the ordered history of one metric
type TimeSeries struct {
	Name       string      `json:"name"`
	MetricType MetricType  `json:"type"`
	DataPoints []DataPoint `json:"data_points"`
}

// Values returns the recorded values oldest first
func (ts *TimeSeries) Values() []float64 {
	out := make([]float64, len(ts.DataPoints))
	for i, dp := range ts.DataPoints {
		out[i] = dp.Value
	}
	return out
}

// Aggregates summarises a series
type Aggregates struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
}

// Aggregate computes the aggregates of values
func Aggregate(values []float64) Aggregates {
	if len(values) == 0 {
		return Aggregates{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	return Aggregates{
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Avg:   sum / float64(len(sorted)),
		Sum:   sum,
		Count: len(sorted),
		P50:   percentile(sorted, 0.50),
		P95:   percentile(sorted, 0.95),
	}
}

// percentile interpolates linearly between the two closest ranks
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := p * float64(len(sorted)-1)
	lo := int(idx)
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	w := idx - float64(lo)
	return sorted[lo]*(1-w) + sorted[lo+1]*w
}

// MetricsStore holds named series, each capped at maxDataPoints
type MetricsStore struct {
	mu            sync.RWMutex
	series        map[string]*TimeSeries
	maxDataPoints int
}

// NewMetricsStore creates a store. maxDataPoints <= 0 means unbounded.
func NewMetricsStore(maxDataPoints int) *MetricsStore {
	return &MetricsStore{
		series:        make(map[string]*TimeSeries),
		maxDataPoints: maxDataPoints,
	}
}

// Record appends m to its series, dropping the oldest point past the cap
func (ms *MetricsStore) Record(m Metric) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ts, ok := ms.series[m.Name]
	if !ok {
		ts = &TimeSeries{Name: m.Name, MetricType: m.Type}
		ms.series[m.Name] = ts
	}
	ts.DataPoints = append(ts.DataPoints, DataPoint{Timestamp: m.Timestamp, Value: m.Value, Labels: m.Labels})
	if ms.maxDataPoints > 0 && len(ts.DataPoints) > ms.maxDataPoints {
		ts.DataPoints = slices.Delete(ts.DataPoints, 0, len(ts.DataPoints)-ms.maxDataPoints)
	}
}

// Series returns a copy of the named series
func (ms *MetricsStore) Series(name string) (TimeSeries, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	ts, ok := ms.series[name]
	if !ok {
		return TimeSeries{}, false
	}
	return TimeSeries{Name: ts.Name, MetricType: ts.MetricType, DataPoints: slices.Clone(ts.DataPoints)}, true
}

// Names lists every series name, sorted
func (ms *MetricsStore) Names() []string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	names := make([]string, 0, len(ms.series))
	for name := range ms.series {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Aggregates computes the aggregates of the named series
func (ms *MetricsStore) Aggregates(name string) (Aggregates, bool) {
	ts, ok := ms.Series(name)
	if !ok {
		return Aggregates{}, false
	}
	return Aggregate(ts.Values()), true
}

// Clear drops every series
func (ms *MetricsStore) Clear() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.series = make(map[string]*TimeSeries)
}

// Size returns the number of points across all series
func (ms *MetricsStore) Size() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	total := 0
	for _, ts := range ms.series {
		total += len(ts.DataPoints)
	}
	return total
}
