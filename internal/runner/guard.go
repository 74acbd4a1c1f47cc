package runner

import "sync"

// Guard protects a runner's visible working data. Bodies compute on private
// state and publish through Commit, which refuses writes from a stopped run,
// so nothing a stopped body does can reach the visible state.
type Guard struct {
	mu sync.RWMutex
}

// Commit applies fn unless tok has been stopped and reports whether it did
func (g *Guard) Commit(tok *Token, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if tok.Stopped() {
		return false
	}
	fn()
	return true
}

// Write applies fn unconditionally. Used by Reset.
func (g *Guard) Write(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}

// Read runs fn under the read lock
func (g *Guard) Read(fn func()) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	fn()
}
