package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/emoji"
	"github.com/kazumasamatsumoto/algo/internal/host"
	"github.com/kazumasamatsumoto/algo/internal/logger"
	"github.com/kazumasamatsumoto/algo/internal/monitor"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
	"github.com/kazumasamatsumoto/algo/internal/ui/components"
)

// Model is the interactive visualizer: a menu of algorithms, the frame of
// the selected runner with its live counters, the run history and help.
type Model struct {
	ctx    context.Context
	shell  *host.Shell
	store  *settings.Store
	bridge *bridge
	log    *logger.Logger
	opts   Options
	styles *Styles

	width    int
	height   int
	ready    bool
	quitting bool

	// Navigation state
	view     View
	previous View

	// Widgets
	menu    *components.List
	viewer  *components.FrameViewer
	spinner *components.Spinner

	// Last notification from the runner
	stats   runner.Stats
	running bool

	status    string
	statusErr bool
	tick      int
}

// New creates the model and the host shell it drives. hostOpts are applied
// after the model's own observer and logger.
func New(ctx context.Context, store *settings.Store, opts Options, hostOpts ...host.Option) *Model {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	if !SetThemeByName(opts.Theme) {
		log.Warn("Unknown theme %q, using default", opts.Theme)
		SetThemeByName("default")
	}

	styles := GetStyles()
	palette := styles.Theme.Palette()
	b := newBridge()

	shellOpts := append([]host.Option{
		host.WithObserver(b.Observer()),
		host.WithLogger(log),
	}, hostOpts...)

	return &Model{
		ctx:     ctx,
		shell:   host.New(store, shellOpts...),
		store:   store,
		bridge:  b,
		log:     log,
		opts:    opts,
		styles:  styles,
		view:    ViewMenu,
		menu:    components.NewAlgorithmList(40, 24, palette),
		viewer:  components.NewFrameViewer("", 60, 20, palette),
		spinner: components.NewSpinner(palette),
		status:  "Select an algorithm",
	}
}

// Shell exposes the host shell the model drives
func (m *Model) Shell() *host.Shell {
	return m.shell
}

// Init starts the notification listener and the animation
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.bridge.listen(),
		tick(),
	)
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	case runnerMsg:
		m.stats = msg.stats
		m.running = msg.running
		return m, m.bridge.listen()
	case runFinishedMsg:
		return m.handleRunFinished(msg)
	case errorMsg:
		m.setError(msg.err)
		return m, nil
	case bridgeClosedMsg:
		return m, nil
	}

	return m, nil
}

// handleWindowResize handles window resize events
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	m.menu.SetSize(min(m.width/2, 48), max(m.height-8, 6))
	m.viewer.SetSize(max(min(m.width-6, 100), 20), max(m.height-16, 6))
	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		return m.handleQuit()
	case "?":
		return m.handleHelp()
	case "esc":
		return m.handleEscape()
	}

	switch m.view {
	case ViewMenu:
		return m.handleMenuKey(key)
	case ViewVisualizer:
		return m.handleVisualizerKey(key)
	case ViewHistory:
		if key == "c" {
			m.shell.History().Clear()
			m.setStatus("History cleared")
		}
	}
	return m, nil
}

func (m *Model) handleMenuKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		m.menu.MoveUp()
	case "down", "j":
		m.menu.MoveDown()
	case "tab":
		m.menu.NextGroup()
	case "h":
		m.switchView(ViewHistory)
	case "enter", " ":
		return m.handleSelection()
	}
	return m, nil
}

func (m *Model) handleVisualizerKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "r", "enter":
		return m.handleRun()
	case "s":
		m.shell.Stop()
		m.setStatus("Stopped")
	case "x":
		m.shell.Reset()
		m.viewer.Offset = 0
		m.setStatus("Reset with fresh input")
	case "+", "=":
		next := m.store.SetSpeed(m.store.Current().Speed - speedStep)
		m.setStatus(fmt.Sprintf("Delay %dms", next.Speed))
	case "-", "_":
		next := m.store.SetSpeed(m.store.Current().Speed + speedStep)
		m.setStatus(fmt.Sprintf("Delay %dms", next.Speed))
	case "]":
		next := m.store.SetArraySize(m.store.Current().ArraySize + sizeStep)
		m.setStatus(fmt.Sprintf("Array size %d", next.ArraySize))
	case "[":
		next := m.store.SetArraySize(m.store.Current().ArraySize - sizeStep)
		m.setStatus(fmt.Sprintf("Array size %d", next.ArraySize))
	case "d":
		next := m.store.SetDataType(m.store.Current().DataType.Next())
		m.setStatus(fmt.Sprintf("Data type %s", next.DataType))
	case "g":
		next := m.store.SetGraphType(m.store.Current().GraphType.Next())
		m.setStatus(fmt.Sprintf("Graph type %s", next.GraphType))
	case "up", "k":
		m.viewer.ScrollUp()
	case "down", "j":
		m.viewer.ScrollDown()
	case "h":
		m.switchView(ViewHistory)
	}
	return m, nil
}

// handleSelection creates the highlighted algorithm's runner
func (m *Model) handleSelection() (tea.Model, tea.Cmd) {
	item := m.menu.GetSelectedItem()
	if item == nil {
		return m, nil
	}

	kind := algorithm.Kind(item.ID)
	if err := m.shell.Select(kind); err != nil {
		m.setError(err)
		return m, nil
	}

	info, _ := algorithm.Info(kind)
	m.viewer.Title = info.Name
	m.viewer.Offset = 0
	m.stats = m.shell.Stats()
	m.running = false
	m.setStatus("Ready: press r to run")
	m.switchView(ViewVisualizer)
	return m, nil
}

// handleRun starts the selected runner. Pressing run while running does nothing.
func (m *Model) handleRun() (tea.Model, tea.Cmd) {
	if m.shell.Current() == nil || m.running || m.shell.IsRunning() {
		return m, nil
	}
	m.running = true
	m.setStatus("Running")
	return m, runCommand(m.ctx, m.shell)
}

func (m *Model) handleRunFinished(msg runFinishedMsg) (tea.Model, tea.Cmd) {
	m.stats = msg.stats
	m.running = m.shell.IsRunning()
	if m.running {
		return m, nil
	}

	if r := m.shell.Current(); r != nil && !m.statusErr && m.status == "Running" {
		m.setStatus("Finished: " + r.Summary())
	}
	return m, nil
}

// handleQuit closes the runner before leaving
func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.shell.Close()
	m.bridge.close()
	return m, tea.Quit
}

// handleEscape goes back one level
func (m *Model) handleEscape() (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewHelp:
		m.view = m.previous
	case ViewHistory:
		if m.shell.Current() != nil && m.previous == ViewVisualizer {
			m.view = ViewVisualizer
		} else {
			m.view = ViewMenu
		}
	case ViewVisualizer:
		m.view = ViewMenu
	}
	return m, nil
}

// handleHelp toggles the help screen
func (m *Model) handleHelp() (tea.Model, tea.Cmd) {
	if m.view == ViewHelp {
		m.view = m.previous
		return m, nil
	}
	m.switchView(ViewHelp)
	return m, nil
}

// handleTick handles timer ticks
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	m.tick++
	if m.running {
		m.spinner.Tick()
	}
	return m, tick()
}

func (m *Model) switchView(v View) {
	if m.view != v {
		m.previous = m.view
		m.view = v
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return m.renderGoodbyeScreen()
	}
	if !m.ready {
		return m.renderLoadingScreen()
	}

	switch m.view {
	case ViewVisualizer:
		return m.renderVisualizer()
	case ViewHistory:
		return m.renderHistory()
	case ViewHelp:
		return m.renderHelpView()
	default:
		return m.renderMainMenu()
	}
}

func (m *Model) renderLoadingScreen() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		m.styles.Title.Render("Starting algo..."))
}

func (m *Model) renderGoodbyeScreen() string {
	return m.styles.Success.Render("Thanks for using algo! "+emoji.GetEmoji("door")) + "\n"
}

func (m *Model) renderMainMenu() string {
	palette := m.styles.Theme.Palette()
	title := m.styles.Title.Render("algo: step-by-step algorithm visualizer")

	details := components.NewSummaryBox("Details", max(m.width-m.menu.Width-8, 30), palette)
	if item := m.menu.GetSelectedItem(); item != nil {
		if info, ok := algorithm.Info(algorithm.Kind(item.ID)); ok {
			details.Title = emoji.GetEmoji(string(info.Category)) + " " + info.Name
			details.AddKeyValue("Category", string(info.Category))
			details.AddKeyValue("Time", info.TimeComplexity)
			details.AddKeyValue("Space", info.SpaceComplexity)
			details.AddLine("")
			details.AddLine(info.Description)
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.menu.Render(), " ", details.Render())

	return m.page(title, body, "↑↓ move • tab next category • enter select • h history • ? help • q quit")
}

func (m *Model) renderVisualizer() string {
	r := m.shell.Current()
	if r == nil {
		return m.renderMainMenu()
	}

	s := m.store.Current()
	palette := m.styles.Theme.Palette()

	state := emoji.Status(m.running, !m.stats.IsZero()) + " " + m.stateLabel()
	if m.running {
		m.spinner.SetLabel("running")
		state = m.spinner.Render()
	}
	title := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Title.Render(m.viewer.Title), "  ", state)

	cards := components.RunCards(m.stats, m.running, s.ShowStepCount, palette).Render()

	m.viewer.SetFrame(r.Render())
	m.viewer.Footer = r.Summary()

	body := lipgloss.JoinVertical(lipgloss.Left,
		cards,
		m.viewer.Render(),
		m.renderSettings(s, palette),
	)

	return m.page(title, body, "r run • s stop • x reset • +/- speed • [/] size • d data • g graph • ↑↓ scroll • esc menu • q quit")
}

func (m *Model) stateLabel() string {
	switch {
	case m.running:
		return "running"
	case !m.stats.IsZero():
		return "done"
	default:
		return "ready"
	}
}

// renderSettings shows the settings the next run will use
func (m *Model) renderSettings(s settings.Settings, palette components.Palette) string {
	size := components.NewProgressBar(20, palette).
		SetRange(settings.MinArraySize, settings.MaxArraySize).
		SetProgress(s.ArraySize).
		SetLabel("Size", "")
	speed := components.NewProgressBar(20, palette).
		SetRange(settings.MinSpeed, settings.MaxSpeed).
		SetProgress(s.Speed).
		SetLabel("Delay", "ms")

	return m.styles.Muted.Render(fmt.Sprintf("%s %s   %s   data %s   graph %s",
		emoji.GetEmoji("settings"), size.Render(), speed.Render(), s.DataType, s.GraphType))
}

func (m *Model) renderHistory() string {
	chart := components.NewHistoryChart(
		emoji.GetEmoji("history")+" Run history",
		m.shell.History().Summaries(),
		max(min(m.width-6, 100), 30),
		m.styles.Theme.Palette(),
	)
	body := chart.Render() + "\n\n" + m.styles.Muted.Render(historyTotals(m.shell.History().Totals()))
	return m.page(m.styles.Title.Render("History"), body, "c clear • esc back • q quit")
}

// historyTotals formats the run counters of metrics on one line
func historyTotals(metrics []monitor.Metric) string {
	var parts []string
	for _, mt := range metrics {
		if mt.Type == monitor.MetricTypeCounter {
			parts = append(parts, fmt.Sprintf("%s %.0f", mt.Name, mt.Value))
		}
	}
	return strings.Join(parts, " • ")
}

func (m *Model) renderHelpView() string {
	helpSections := []struct {
		heading string
		lines   []string
	}{
		{"Menu", []string{
			"↑↓ or j/k    Move between algorithms",
			"tab          Jump to the next category",
			"enter        Open the visualizer",
		}},
		{"Visualizer", []string{
			"r            Run (ignored while running)",
			"s            Stop the run",
			"x            Reset with fresh input",
			"+ / -        Shorter / longer step delay",
			"[ / ]        Smaller / larger input",
			"d / g        Cycle data type / graph type",
			"↑↓           Scroll the frame",
		}},
		{"Anywhere", []string{
			"h            Run history",
			"?            Toggle this help",
			"esc          Go back",
			"q            Quit (stops the current run)",
		}},
	}

	lines := make([]string, 0, 24)
	for _, section := range helpSections {
		lines = append(lines, m.styles.Accent.Render(section.heading))
		for _, line := range section.lines {
			lines = append(lines, "  "+line)
		}
		lines = append(lines, "")
	}
	lines = append(lines, m.styles.Muted.Render("Changing a setting resets the current algorithm."))

	body := m.styles.Box.Render(strings.Join(lines, "\n"))
	return m.page(m.styles.Title.Render(emoji.GetEmoji("help")+" Help"), body, "esc back")
}

// page stacks the title, body, status line and key hints
func (m *Model) page(title, body, hints string) string {
	status := m.styles.Muted.Render(m.status)
	if m.statusErr {
		status = m.styles.Error.Render(emoji.GetEmoji("error") + " " + m.status)
	}

	parts := []string{title, "", body, "", status}
	if m.opts.ShowHelp {
		parts = append(parts, m.styles.Muted.Render(hints))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Run runs the TUI until the user quits or ctx is canceled
func Run(ctx context.Context, store *settings.Store, opts Options, hostOpts ...host.Option) error {
	model := New(ctx, store, opts, hostOpts...)
	defer model.shell.Close()
	defer model.bridge.close()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	_, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil && ctx.Err() != nil {
		// canceled from outside, not a failure
		return nil
	}
	return err
}
