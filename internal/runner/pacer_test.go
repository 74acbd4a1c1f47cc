package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealTimeZeroDurationReturnsImmediately(t *testing.T) {
	tok := NewToken()
	assert.True(t, RealTime().Pause(tok, 0))

	tok.Stop()
	assert.False(t, RealTime().Pause(tok, 0))
}

func TestRealTimeWakesOnStop(t *testing.T) {
	tok := NewToken()
	go func() {
		time.Sleep(10 * time.Millisecond)
		tok.Stop()
	}()

	start := time.Now()
	ok := RealTime().Pause(tok, time.Minute)

	assert.False(t, ok)
	assert.Less(t, time.Since(start), 30*time.Second)
}

func TestRealTimeSleeps(t *testing.T) {
	tok := NewToken()
	start := time.Now()

	assert.True(t, RealTime().Pause(tok, 5*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestTokenStopIsIdempotent(t *testing.T) {
	tok := NewToken()
	assert.False(t, tok.Stopped())

	tok.Stop()
	tok.Stop()

	assert.True(t, tok.Stopped())
	select {
	case <-tok.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestGuardRefusesStoppedCommit(t *testing.T) {
	var g Guard
	tok := NewToken()
	value := 0

	assert.True(t, g.Commit(tok, func() { value = 1 }))
	tok.Stop()
	assert.False(t, g.Commit(tok, func() { value = 2 }))

	g.Read(func() { assert.Equal(t, 1, value) })
}
