package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/host"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

func newTestModel(t *testing.T) (*Model, *settings.Store) {
	t.Helper()
	store := settings.NewStore(settings.Default())
	m := New(context.Background(), store, Options{Theme: "default", ShowHelp: true},
		host.WithGenerator(generator.NewSeeded(7)),
		host.WithRunnerOptions(runner.WithPacer(runner.Instant())),
	)
	t.Cleanup(m.shell.Close)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 60})
	return m, store
}

func press(m *Model, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func TestMenuListsEveryCategory(t *testing.T) {
	m, _ := newTestModel(t)

	view := m.View()
	for _, c := range algorithm.Categories {
		if !strings.Contains(view, strings.ToUpper(string(c))) {
			t.Errorf("Expected menu to contain category %s", c)
		}
	}
	if !strings.Contains(view, "Bubble sort") {
		t.Error("Expected menu to list Bubble sort")
	}
}

func TestSelectOpensVisualizer(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "down")
	press(m, "enter")

	if m.view != ViewVisualizer {
		t.Fatalf("Expected visualizer view, got %d", m.view)
	}
	if m.shell.Kind() != algorithm.SelectionSort {
		t.Errorf("Expected selection sort, got %s", m.shell.Kind())
	}
	if !strings.Contains(m.View(), "Selection sort") {
		t.Error("Expected visualizer title to name the algorithm")
	}
}

func TestTabJumpsToNextCategory(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "tab")
	press(m, "enter")

	if m.shell.Kind() != algorithm.LinearSearch {
		t.Errorf("Expected first search algorithm, got %s", m.shell.Kind())
	}
}

func TestRunKeyRunsToCompletion(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "enter")

	cmd := press(m, "r")
	if cmd == nil {
		t.Fatal("Expected run command")
	}
	if !m.running {
		t.Error("Expected model to show running right away")
	}

	m.Update(cmd())

	if m.running {
		t.Error("Expected run to be finished")
	}
	if m.stats.Steps == 0 || m.stats.Comparisons == 0 {
		t.Errorf("Expected counters after a run, got %+v", m.stats)
	}
	if !strings.HasPrefix(m.status, "Finished") {
		t.Errorf("Expected finished status, got %q", m.status)
	}
	if total, _ := m.shell.History().Runs(); total != 1 {
		t.Errorf("Expected 1 recorded run, got %d", total)
	}
}

func TestRunKeyWhileRunningIsIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "enter")
	m.running = true

	if cmd := press(m, "r"); cmd != nil {
		t.Error("Expected no command while running")
	}
}

func TestRunWithoutSelectionDoesNothing(t *testing.T) {
	m, _ := newTestModel(t)
	m.view = ViewVisualizer

	if cmd := press(m, "r"); cmd != nil {
		t.Error("Expected no command without a selected algorithm")
	}
}

func TestSettingKeysUpdateStore(t *testing.T) {
	tests := []struct {
		key   string
		check func(settings.Settings) bool
	}{
		{"+", func(s settings.Settings) bool { return s.Speed == settings.DefaultSpeed-speedStep }},
		{"-", func(s settings.Settings) bool { return s.Speed == settings.DefaultSpeed+speedStep }},
		{"]", func(s settings.Settings) bool { return s.ArraySize == settings.DefaultArraySize+sizeStep }},
		{"[", func(s settings.Settings) bool { return s.ArraySize == settings.DefaultArraySize-sizeStep }},
		{"d", func(s settings.Settings) bool { return s.DataType == settings.DataSorted }},
		{"g", func(s settings.Settings) bool { return s.GraphType == settings.GraphChain }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, store := newTestModel(t)
			press(m, "enter")
			press(m, tt.key)

			if !tt.check(store.Current()) {
				t.Errorf("Unexpected settings after %q: %+v", tt.key, store.Current())
			}
			if got := m.shell.Current().Settings(); got != store.Current() {
				t.Errorf("Expected runner to follow the store, got %+v", got)
			}
		})
	}
}

func TestSpeedIsClamped(t *testing.T) {
	m, store := newTestModel(t)
	press(m, "enter")

	for i := 0; i < 100; i++ {
		press(m, "+")
	}
	if store.Current().Speed != settings.MinSpeed {
		t.Errorf("Expected speed clamped to %d, got %d", settings.MinSpeed, store.Current().Speed)
	}
}

func TestStopAndResetKeys(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "enter")
	m.Update(press(m, "r")())

	press(m, "x")
	if !m.shell.Stats().IsZero() {
		t.Errorf("Expected reset to clear stats, got %+v", m.shell.Stats())
	}

	press(m, "s")
	if m.status != "Stopped" {
		t.Errorf("Expected stopped status, got %q", m.status)
	}
}

func TestNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "?")
	if m.view != ViewHelp {
		t.Fatalf("Expected help view, got %d", m.view)
	}
	press(m, "esc")
	if m.view != ViewMenu {
		t.Fatalf("Expected menu after esc, got %d", m.view)
	}

	press(m, "enter")
	press(m, "h")
	if m.view != ViewHistory {
		t.Fatalf("Expected history view, got %d", m.view)
	}
	press(m, "esc")
	if m.view != ViewVisualizer {
		t.Fatalf("Expected visualizer after esc, got %d", m.view)
	}
	press(m, "esc")
	if m.view != ViewMenu {
		t.Fatalf("Expected menu after esc, got %d", m.view)
	}
}

func TestHistoryView(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "enter")
	m.Update(press(m, "r")())
	press(m, "h")

	view := m.View()
	if !strings.Contains(view, string(algorithm.BubbleSort)) {
		t.Error("Expected history to list the run")
	}
	if !strings.Contains(view, "runs 1 • stopped 0") {
		t.Error("Expected history to show the run counters")
	}

	press(m, "c")
	if total, _ := m.shell.History().Runs(); total != 0 {
		t.Errorf("Expected cleared history, got %d runs", total)
	}
}

func TestQuitClosesShell(t *testing.T) {
	m, _ := newTestModel(t)
	press(m, "enter")

	if cmd := press(m, "q"); cmd == nil {
		t.Fatal("Expected quit command")
	}
	if !m.quitting {
		t.Error("Expected quitting state")
	}
	if m.shell.Current() != nil {
		t.Error("Expected shell to drop the runner on quit")
	}
	if _, ok := m.bridge.listen()().(bridgeClosedMsg); !ok {
		t.Error("Expected listener to end after quit")
	}
}

func TestBridgeCoalescesNotifications(t *testing.T) {
	b := newBridge()
	obs := b.Observer()

	obs.StatsChanged(runner.Stats{Steps: 1})
	obs.StatsChanged(runner.Stats{Steps: 2})
	obs.RunningChanged(true)

	msg, ok := b.listen()().(runnerMsg)
	if !ok {
		t.Fatal("Expected runner message")
	}
	if msg.stats.Steps != 2 || !msg.running {
		t.Errorf("Expected newest state, got %+v", msg)
	}

	b.close()
	b.close()
	if _, ok := b.listen()().(bridgeClosedMsg); !ok {
		t.Error("Expected closed message")
	}
}

func TestSetThemeByName(t *testing.T) {
	t.Cleanup(func() { SetThemeByName("default") })

	tests := []struct {
		name string
		want bool
	}{
		{"default", true},
		{"high-contrast", true},
		{"minimal", true},
		{"", true},
		{"solarized", false},
	}

	for _, tt := range tests {
		if got := SetThemeByName(tt.name); got != tt.want {
			t.Errorf("SetThemeByName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	SetThemeByName("minimal")
	if GetTheme().Name != "minimal" {
		t.Errorf("Expected minimal theme, got %s", GetTheme().Name)
	}
	if len(GetAvailableThemes()) != 3 {
		t.Errorf("Expected 3 themes, got %d", len(GetAvailableThemes()))
	}
}
