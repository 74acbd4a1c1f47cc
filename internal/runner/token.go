package runner

import (
	"sync"
	"sync/atomic"
)

// Token is the cancellation handle of one run. Algorithm bodies receive it
// explicitly and poll it at every loop head, after every pause and before
// every visible commit.
type Token struct {
	stopped atomic.Bool
	once    sync.Once
	done    chan struct{}
}

// NewToken returns a live token
func NewToken() *Token {
	return &Token{done: make(chan struct{})}
}

// Stop marks the token stopped. Safe to call more than once.
func (t *Token) Stop() {
	t.once.Do(func() {
		t.stopped.Store(true)
		close(t.done)
	})
}

// Stopped reports whether Stop has been called
func (t *Token) Stopped() bool {
	return t.stopped.Load()
}

// Done is closed when the token is stopped
func (t *Token) Done() <-chan struct{} {
	return t.done
}
