package runner

import "fmt"

// Stats are the counters of a single run. Observers always receive copies.
type Stats struct {
	Steps       int   `json:"steps"`
	Comparisons int   `json:"comparisons"`
	Swaps       int   `json:"swaps"`
	TimeMs      int64 `json:"time_ms"`
}

// IsZero reports whether no counter has moved
func (s Stats) IsZero() bool {
	return s == Stats{}
}

func (s Stats) String() string {
	return fmt.Sprintf("steps=%d comparisons=%d swaps=%d time=%dms", s.Steps, s.Comparisons, s.Swaps, s.TimeMs)
}

// Observer receives synchronous change notifications from a runner.
// Callbacks must not call back into the runner that invoked them.
type Observer interface {
	StatsChanged(Stats)
	RunningChanged(bool)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnStats   func(Stats)
	OnRunning func(bool)
}

func (o ObserverFuncs) StatsChanged(s Stats) {
	if o.OnStats != nil {
		o.OnStats(s)
	}
}

func (o ObserverFuncs) RunningChanged(running bool) {
	if o.OnRunning != nil {
		o.OnRunning(running)
	}
}
