package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/host"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// keyMap holds the board shortcuts. Up/Down stay with command history.
type keyMap struct {
	CursorLeft  key.Binding
	CursorRight key.Binding
	CursorUp    key.Binding
	CursorDown  key.Binding
	Select      key.Binding
	Reach       key.Binding
	Move        key.Binding
	EndPhase    key.Binding
	Complete    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		CursorLeft:  key.NewBinding(key.WithKeys("alt+left"), key.WithHelp("alt+←", "cursor west")),
		CursorRight: key.NewBinding(key.WithKeys("alt+right"), key.WithHelp("alt+→", "cursor east")),
		CursorUp:    key.NewBinding(key.WithKeys("alt+up"), key.WithHelp("alt+↑", "cursor up a row")),
		CursorDown:  key.NewBinding(key.WithKeys("alt+down"), key.WithHelp("alt+↓", "cursor down a row")),
		Select:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "select unit under cursor")),
		Reach:       key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "show reach of selection")),
		Move:        key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "move selection to cursor")),
		EndPhase:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "end phase")),
		Complete:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete from history")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{
		k.CursorLeft, k.CursorRight, k.CursorUp, k.CursorDown,
		k.Select, k.Reach, k.Move, k.EndPhase, k.Complete,
	}
}

// Model is the Bubble Tea model for the board viewer.
type Model struct {
	host  *host.Host
	title string
	intro string

	viewport viewport.Model
	input    textinput.Model
	history  *History
	keys     keyMap

	rawLines []rawLine // accumulated log lines (unstyled, for re-wrapping)
	overlay  host.Overlay
	cursor   hex.Coord

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	lastCmd  string
}

// gameOutputMsg carries output into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given host.
func New(h *host.Host, title, intro string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	if title == "" {
		title = "titanhunt"
	}
	m := Model{
		host:    h,
		title:   title,
		intro:   intro,
		input:   ti,
		history: NewHistory(100),
		keys:    defaultKeyMap(),
	}
	if coords := h.Engine.State.Map.Coords(); len(coords) > 0 {
		m.cursor = coords[0]
	}
	return m
}

// Run starts the Bubble Tea program.
func Run(h *host.Host, title, intro string) error {
	m := New(h, title, intro)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the intro text.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		lines := []string{m.title}
		if m.intro != "" {
			lines = append(lines, m.intro)
		}
		lines = append(lines, "Type /help for commands. Type start to leave deployment.")
		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.logHeight()
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.CursorLeft):
			return m.moveCursor(-1, 0), nil
		case key.Matches(msg, m.keys.CursorRight):
			return m.moveCursor(1, 0), nil
		case key.Matches(msg, m.keys.CursorUp):
			return m.moveCursor(0, -1), nil
		case key.Matches(msg, m.keys.CursorDown):
			return m.moveCursor(0, 1), nil
		case key.Matches(msg, m.keys.Select):
			return m.runCommand(m.selectAtCursor()), nil
		case key.Matches(msg, m.keys.Reach):
			return m.runCommand("reach"), nil
		case key.Matches(msg, m.keys.Move):
			return m.runCommand(fmt.Sprintf("move %d %d", m.cursor.Q, m.cursor.R)), nil
		case key.Matches(msg, m.keys.EndPhase):
			return m.runCommand("end phase"), nil
		case key.Matches(msg, m.keys.Complete):
			if full, ok := m.history.Complete(m.input.Value()); ok {
				m.input.SetValue(full)
				m.input.CursorEnd()
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
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
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

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
	} else {
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

	return m.runCommand(input), nil
}

// runCommand executes one game command and keeps its overlay.
func (m Model) runCommand(input string) Model {
	result := m.host.Exec(input)
	m.overlay = host.Overlay{}
	if result.Overlay != nil {
		m.overlay = *result.Overlay
	}
	output := result.Output
	if m.trace {
		output = append(output, formatTrace(result)...)
	}
	return m.appendOutput(gameOutputMsg{input: input, lines: output})
}

// selectAtCursor returns the command that selects the unit under the
// cursor, or clears the selection on an empty hex.
func (m Model) selectAtCursor() string {
	if u, ok := m.host.Engine.State.UnitAt(m.cursor); ok {
		return fmt.Sprintf("select %d", u.ID)
	}
	return "deselect"
}

// moveCursor shifts the cursor by dc columns and dr rows of the drawn
// board. The column is kept when changing rows.
func (m Model) moveCursor(dc, dr int) Model {
	col := m.cursor.Q + floorHalf(m.cursor.R)
	r := m.cursor.R + dr
	next := hex.New(col+dc-floorHalf(r), r)
	if m.host.Engine.State.Map.IsValid(next) {
		m.cursor = next
	}
	return m
}

func floorHalf(n int) int {
	if n < 0 {
		return (n - 1) / 2
	}
	return n / 2
}

// appendOutput adds lines to the log and refreshes the viewport.
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

	// Blank line separator between commands.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// boardLines renders the battlefield with the current overlay and cursor.
func (m Model) boardLines() []string {
	ov := m.overlay
	cursor := m.cursor
	ov.Cursor = &cursor
	return renderRows(host.Layout(m.host.Engine.State, ov))
}

// logHeight is the space left for the log under the board, the status
// bar and the input line.
func (m Model) logHeight() int {
	_, rows := m.host.Engine.State.Map.Size()
	h := m.height - rows - 3
	if h < 1 {
		h = 1
	}
	return h
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		// Board lines keep their layout.
		wrapped := rl.text
		if !strings.HasPrefix(rl.text, " ") {
			wrapped = wordWrap(rl.text, width)
		}

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

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full layout: board + log + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return strings.Join(m.boardLines(), "\n") + "\n\n" +
		m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/clear":
		m.overlay = host.Overlay{}
		return []string{"Overlay cleared."}, false

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
	lines := []string{
		"System:",
		"  /quit     Exit",
		"  /help     Show this help",
		"  /state    Game summary",
		"  /clear    Clear the reach/path overlay",
		"  /trace    Toggle event trace output",
		"",
		"Orders:",
		"  start, select <unit>, reach [unit], path [unit] <q> <r>",
		"  move [unit] <q> <r> [facing <dir>], end phase, end turn",
		"  units, info, events, objectives, victory, terrain <q> <r>",
		"",
		"Keys:",
	}
	for _, b := range m.keys.bindings() {
		h := b.Help()
		lines = append(lines, fmt.Sprintf("  %-8s %s", h.Key, h.Desc))
	}
	lines = append(lines, "  PgUp/PgDn scroll the log, Up/Down for command history")
	return lines
}

func (m *Model) cmdState() []string {
	s := m.host.Engine.State
	w, h := s.Map.Size()
	return []string{
		fmt.Sprintf("Game: %s", m.host.Engine.ID),
		fmt.Sprintf("Turn: %d", s.Turn),
		fmt.Sprintf("Phase: %s", s.Phase),
		fmt.Sprintf("Active: %s", s.ActivePlayer),
		fmt.Sprintf("Map: %dx%d", w, h),
		fmt.Sprintf("Units: %d (%d + %d alive)", len(s.Units), s.Alive(1), s.Alive(2)),
		fmt.Sprintf("Events: %d", len(s.Events)),
	}
}

func formatTrace(result host.Result) []string {
	if len(result.Events) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(result.Events))}
	for _, e := range result.Events {
		lines = append(lines, fmt.Sprintf("[trace]   %s %+v", e.Type, e.Data))
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
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
