package settings

import (
	"slices"
	"sync"
)

// Store owns the current Settings and notifies subscribers on change.
// Every write goes through Clamp.
type Store struct {
	mu      sync.RWMutex
	current Settings
	nextID  int
	subs    map[int]func(Settings)
}

// NewStore creates a store seeded with initial (clamped)
func NewStore(initial Settings) *Store {
	return &Store{
		current: Clamp(initial),
		subs:    make(map[int]func(Settings)),
	}
}

// Current returns a copy of the current settings
func (s *Store) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update applies fn to a copy, clamps it and publishes the result when it differs
func (s *Store) Update(fn func(*Settings)) Settings {
	s.mu.Lock()
	next := s.current
	fn(&next)
	next = Clamp(next)
	if next == s.current {
		s.mu.Unlock()
		return next
	}
	s.current = next
	subs := s.snapshotSubscribers()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Replace swaps in an entirely new settings value
func (s *Store) Replace(next Settings) Settings {
	return s.Update(func(cur *Settings) { *cur = next })
}

// SetArraySize updates the array size
func (s *Store) SetArraySize(n int) Settings {
	return s.Update(func(cur *Settings) { cur.ArraySize = n })
}

// SetSpeed updates the pause between visible steps
func (s *Store) SetSpeed(ms int) Settings {
	return s.Update(func(cur *Settings) { cur.Speed = ms })
}

// SetDataType updates the array distribution
func (s *Store) SetDataType(d DataType) Settings {
	return s.Update(func(cur *Settings) { cur.DataType = d })
}

// SetGraphType updates the graph topology
func (s *Store) SetGraphType(g GraphType) Settings {
	return s.Update(func(cur *Settings) { cur.GraphType = g })
}

// SetShowStepCount toggles the step counter display
func (s *Store) SetShowStepCount(show bool) Settings {
	return s.Update(func(cur *Settings) { cur.ShowStepCount = show })
}

// ResetDefaults restores Default()
func (s *Store) ResetDefaults() Settings {
	return s.Replace(Default())
}

// Subscribe registers fn for change notifications. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Settings)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) snapshotSubscribers() []func(Settings) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(Settings), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subs[id])
	}
	return out
}
