package ui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kazumasamatsumoto/algo/internal/host"
	"github.com/kazumasamatsumoto/algo/internal/runner"
)

// runnerMsg carries the latest stats and running flag of the current runner
type runnerMsg struct {
	stats   runner.Stats
	running bool
}

// runFinishedMsg is sent once Shell.Run returns
type runFinishedMsg struct {
	stats runner.Stats
}

// errorMsg reports a failed action, shown in the status line
type errorMsg struct {
	err error
}

// bridgeClosedMsg ends the listen loop
type bridgeClosedMsg struct{}

type tickMsg time.Time

// Animation command
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// bridge turns runner notifications into tea messages. The observer side
// never blocks: it stores the latest state and pokes a one-slot channel, so
// bursts coalesce into one message carrying the newest values.
type bridge struct {
	mu      sync.Mutex
	stats   runner.Stats
	running bool

	notify chan struct{}
	done   chan struct{}
	once   sync.Once
}

func newBridge() *bridge {
	return &bridge{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Observer is registered with the host shell
func (b *bridge) Observer() runner.Observer {
	return runner.ObserverFuncs{
		OnStats: func(s runner.Stats) {
			b.mu.Lock()
			b.stats = s
			b.mu.Unlock()
			b.poke()
		},
		OnRunning: func(running bool) {
			b.mu.Lock()
			b.running = running
			b.mu.Unlock()
			b.poke()
		},
	}
}

func (b *bridge) poke() {
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// listen waits for the next notification
func (b *bridge) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.done:
			return bridgeClosedMsg{}
		default:
		}

		select {
		case <-b.notify:
			b.mu.Lock()
			defer b.mu.Unlock()
			return runnerMsg{stats: b.stats, running: b.running}
		case <-b.done:
			return bridgeClosedMsg{}
		}
	}
}

func (b *bridge) close() {
	b.once.Do(func() { close(b.done) })
}

// runCommand runs the selected algorithm off the UI goroutine
func runCommand(ctx context.Context, shell *host.Shell) tea.Cmd {
	return func() tea.Msg {
		shell.Run(ctx)
		return runFinishedMsg{stats: shell.Stats()}
	}
}
