package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/nathoo/retrodungeon/engine"
	"github.com/nathoo/retrodungeon/engine/quest"
	"github.com/nathoo/retrodungeon/engine/state"
	"github.com/nathoo/retrodungeon/engine/world"
	"github.com/nathoo/retrodungeon/types"
)

const (
	// DefaultMaxMessages caps the scrollback.
	DefaultMaxMessages = 35
	// DefaultTickInterval is the real-time frame period.
	DefaultTickInterval = 60 * time.Millisecond

	// maxFrame bounds one Update step after a stall.
	maxFrame = 0.25
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Retro Dungeon TUI.
type Model struct {
	engine *engine.Engine
	defs   *state.Defs
	log    *slog.Logger

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // scrollback, oldest first, capped at maxMessages

	maxMessages  int
	tickInterval time.Duration
	lastTick     time.Time

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
}

// Option configures a Model.
type Option func(*Model)

// WithMaxMessages caps the scrollback at n entries.
func WithMaxMessages(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.maxMessages = n
		}
	}
}

// WithTickInterval sets the real-time frame period.
func WithTickInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// WithLogger sets the structured logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// tickMsg is one real-time frame.
type tickMsg time.Time

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, defs *state.Defs, opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	m := Model{
		engine:       eng,
		defs:         defs,
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		input:        ti,
		history:      NewHistory(100),
		maxMessages:  DefaultMaxMessages,
		tickInterval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, defs *state.Defs, opts ...Option) error {
	m := New(eng, defs, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init shows the intro and the first look, and starts the frame clock.
func (m Model) Init() tea.Cmd {
	msg := m.introOutput()
	return tea.Batch(
		textinput.Blink,
		func() tea.Msg { return msg },
		tick(m.tickInterval),
	)
}

func (m Model) introOutput() gameOutputMsg {
	g := m.defs.Game
	lines := []string{g.Title}
	if g.Version != "" {
		lines[0] += " v" + g.Version
	}
	lines = append(lines, g.Intro...)
	lines = append(lines, "")
	lines = append(lines, m.engine.Step("look").Output...)
	return gameOutputMsg{lines: lines}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages (frames, key presses, mouse, window resize, game
// output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := max(3, m.height-m.topHeight()-2) // status bar + input line

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up", "down", "left", "right":
			m.movePlayer(msg.String())
			return m, nil

		case "delete":
			m = m.appendResult("", m.engine.Attack())
			return m, nil

		case "esc":
			m.engine.Session.MapView = false
			return m, nil

		case "ctrl+p":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "ctrl+n":
			next, _ := m.history.Next()
			m.input.SetValue(next)
			m.input.CursorEnd()
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// handleTick advances the simulation by the time since the previous frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var dt float64
	if !m.lastTick.IsZero() {
		dt = min(now.Sub(m.lastTick).Seconds(), maxFrame)
	}
	m.lastTick = now

	m = m.appendResult("", m.engine.Update(dt))
	if m.engine.Session.ShouldQuit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tick(m.tickInterval)
}

var arrowDeltas = map[string][2]int{
	"up":    {0, -1},
	"down":  {0, 1},
	"left":  {-1, 0},
	"right": {1, 0},
}

func (m Model) movePlayer(arrow string) {
	s := m.engine.Session
	if s.InEnding() || s.MapView {
		return
	}
	d := arrowDeltas[arrow]
	m.engine.MovePlayer(d[0], d[1])
}

// handleMouse scrolls the log on the wheel and teleports on a left click on
// the map.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		return m, vpCmd

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || !m.engine.Session.MapView {
			return m, nil
		}
		if room, ok := m.roomAtScreen(msg.X, msg.Y); ok {
			m.log.Debug("map click", "room", room.Tag, "x", msg.X, "y", msg.Y)
			m = m.appendResult("", m.engine.Teleport(room.ID))
		}
	}
	return m, nil
}

// roomAtScreen maps a screen cell onto the map panel. The panel sits at the
// top-left corner: one border cell, then the title row, then the map body.
func (m Model) roomAtScreen(x, y int) (*world.Room, bool) {
	col, row, ok := mapCellAt(x-1, y-2)
	if !ok {
		return nil, false
	}
	return mapRoomAt(m.engine.Session, col, row)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else if !strings.HasPrefix(input, "/") {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Game command.
	m = m.appendResult(input, m.engine.Step(input))
	if m.engine.Session.ShouldQuit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// appendResult adds engine output, plus trace lines when enabled. Empty
// results from idle frames add nothing.
func (m Model) appendResult(input string, result types.Result) Model {
	output := result.Output
	if m.trace {
		output = append(output, formatTrace(result)...)
	}
	if input == "" && len(output) == 0 {
		return m
	}
	return m.appendOutput(gameOutputMsg{input: input, lines: output})
}

// appendOutput adds lines to the scrollback, drops the oldest entries past
// the cap, and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	if over := len(m.rawLines) - m.maxMessages; over > 0 {
		m.rawLines = append([]rawLine(nil), m.rawLines[over:]...)
	}

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := max(10, m.width)

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordwrap.String(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// leftWidth is the content width of the room/map panel.
func (m Model) leftWidth() int {
	cols, _ := mapSize(m.engine.Session.World)
	return max(world.GridWidth*tileWidth, cols*mapCellWidth)
}

// leftHeight is the content height of the room/map panel, title included.
func (m Model) leftHeight() int {
	_, rows := mapSize(m.engine.Session.World)
	return 1 + max(world.GridHeight, rows*mapRowHeight-1)
}

// topHeight is the height of the panel row, borders included.
func (m Model) topHeight() int {
	return m.leftHeight() + 2
}

// View renders the full TUI layout: panels, log, status bar, input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, m.renderLeftPanel(), m.renderStatsPanel())
	return lipgloss.JoinVertical(lipgloss.Left,
		top,
		m.viewport.View(),
		m.renderStatusBar(),
		m.input.View(),
	)
}

// renderLeftPanel shows the ending overlay, the map, or the current room.
func (m Model) renderLeftPanel() string {
	s := m.engine.Session
	w, h := m.leftWidth(), m.leftHeight()
	panel := stylePanel.Width(w).Height(h)

	if s.Ending.Active() {
		return panel.BorderForeground(endingColors[s.Ending.Phase]).Render(renderEnding(s.Ending.Phase, w, h))
	}

	var title string
	var body []string
	if s.MapView {
		title = "Dungeon Map"
		body = renderMap(s)
	} else {
		room := s.Room()
		title = room.Name
		body = renderRoom(room, s.Player.X, s.Player.Y)
	}
	content := append([]string{stylePanelTitle.Render(title)}, body...)
	return panel.Render(strings.Join(content, "\n"))
}

var endingText = map[quest.Phase]string{
	quest.White:    "A blinding light fills the dungeon...",
	quest.Yellow:   "The walls melt into gold...",
	quest.Red:      "The sky burns red...",
	quest.Black:    "Darkness swallows everything...",
	quest.GameOver: "THE END\n\nThe world has ended. Type 'quit' to exit.",
}

// renderEnding fills the panel with the phase color.
func renderEnding(phase quest.Phase, w, h int) string {
	bg := endingColors[phase]
	fg := lipgloss.Color("16")
	if phase >= quest.Red {
		fg = lipgloss.Color("255")
	}
	text := lipgloss.NewStyle().Background(bg).Foreground(fg).Bold(true).Render(endingText[phase])
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, text,
		lipgloss.WithWhitespaceBackground(bg))
}

func (m Model) renderStatsPanel() string {
	lines := statsLines(m.engine.Session, m.defs)
	content := append([]string{stylePanelTitle.Render("Adventurer")}, lines...)
	return stylePanel.Width(statsWidth).Height(m.leftHeight()).Render(strings.Join(content, "\n"))
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /quit        Exit game",
		"  /help        Show this help",
		"  /state       Debug: dump current state",
		"  /trace       Toggle debug trace output",
		"",
		"Keys:",
		"  Arrow keys   Move inside the room",
		"  Delete       Attack the nearest monster",
		"  Esc          Close the map",
		"  Ctrl+P/N     Command history",
		"  PgUp/PgDn    Scroll the log (or use the mouse wheel)",
		"",
		"Type 'help' for game commands. 'again' (g) repeats your last command.",
	}
}

func (m *Model) cmdState() []string {
	s := m.engine.Session
	room := m.engine.Room()
	output := []string{
		fmt.Sprintf("Session: %s (seed %d, rolls %d)", s.ID, m.engine.RNG.Seed(), m.engine.RNG.Position()),
		fmt.Sprintf("Location: %s (%g, %g)", room.Tag, s.Player.X, s.Player.Y),
		fmt.Sprintf("Health: %d/%d", s.Player.Health, state.MaxHealth),
		fmt.Sprintf("Inventory: %v (weapon %d, armor %d)", s.Inventory.Names(), s.Inventory.WeaponIndex(), s.Inventory.ArmorIndex()),
		fmt.Sprintf("Flags: %+v", s.Flags),
	}
	if s.Ending.Active() {
		output = append(output, fmt.Sprintf("Ending: %s", s.Ending.Phase))
	}
	return output
}

func formatTrace(result types.Result) []string {
	if len(result.Events) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(result.Events))}
	for _, e := range result.Events {
		lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with the arrows disabled
// (they move the player).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
