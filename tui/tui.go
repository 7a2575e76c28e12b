package tui

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/stranded/cli"
	"github.com/nathoo/stranded/config"
	"github.com/nathoo/stranded/engine"
	"github.com/nathoo/stranded/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text string
	kind lineKind
}

// Model is the Bubble Tea model for the stranded TUI. It never touches the
// world directly; everything it shows arrives as messages.
type Model struct {
	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)
	status   engine.Status
	commands []string
	glyph    string

	in    *inbox
	trace *atomic.Bool

	width    int
	height   int
	ready    bool
	quitting bool
	lastCmd  string
	err      error
}

// New creates a TUI model that submits input lines to in.
func New(commands []string, in *inbox, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		input:    ti,
		history:  NewHistory(100),
		commands: commands,
		glyph:    cfg.Continuation,
		in:       in,
		trace:    &atomic.Bool{},
	}
}

// Run starts the Bubble Tea program with the turn loop on its own
// goroutine.
func Run(eng *engine.Engine, cfg *config.Config, trace bool) error {
	in := newInbox(64)
	m := New(eng.Commands.Names(), in, cfg)
	m.trace.Store(trace)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	b := &bridge{send: p.Send, in: in, status: eng.Status, trace: m.trace}
	go func() {
		err := eng.Run(b)
		p.Send(doneMsg{err: err})
	}()

	final, err := p.Run()
	in.stop()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.err
	}
	return nil
}

// Init starts the cursor blinking; the game goroutine produces the intro.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

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
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			m.in.stop()
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

	case outputMsg:
		m = m.appendLines(msg.kind, msg.lines...)
		return m, nil

	case statusMsg:
		m.status = engine.Status(msg)
		return m, nil

	case doneMsg:
		m.quitting = true
		m.err = msg.err
		return m, tea.Quit
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
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
	m = m.appendLines(kindInput, m.input.Prompt+input)

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendLines(kindSystem, output...)
		if quit {
			m.quitting = true
			m.in.stop()
			return m, tea.Quit
		}
		return m, nil
	}

	if strings.EqualFold(input, "again") && !m.hasCommand("again") {
		if m.lastCmd == "" {
			m = m.appendLines(kindSystem, "Nothing to repeat.")
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	if !m.in.submit(input) {
		m = m.appendLines(kindSystem, "Still busy, try again.")
	}
	return m, nil
}

func (m Model) hasCommand(name string) bool {
	for _, c := range m.commands {
		if c == name {
			return true
		}
	}
	return false
}

// appendLines adds lines to the narrative and refreshes the viewport.
func (m Model) appendLines(kind lineKind, lines ...string) Model {
	for _, line := range lines {
		m.rawLines = append(m.rawLines, rawLine{text: line, kind: kind})
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

	width := m.width
	if width < 10 {
		width = 10
	}

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}
		styled = append(styled, renderLine(cli.Wrap(rl.text, width, m.glyph), rl.kind))
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return m.cmdHelp(), false

	case "/status":
		s := m.status
		return []string{fmt.Sprintf("%s | %s | score %d | turn %d | %d instructions | %s",
			s.Title, s.Location, s.Score, s.Turn, s.Instructions, s.State)}, false

	case "/trace":
		on := !m.trace.Load()
		m.trace.Store(on)
		if on {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System: /quit /help /status /trace",
		"Commands: " + strings.Join(m.commands, ", "),
		"Type again to repeat your last command.",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func formatTrace(result types.Result) []string {
	lines := []string{fmt.Sprintf("[trace] input %v -> command %q arg %q scope %d",
		result.Input, result.Command, result.Argument, result.Scope)}
	for _, r := range result.Responses {
		lines = append(lines, fmt.Sprintf("[trace]   response %s %q", r.Key, r.Arg))
	}
	for _, id := range result.Events {
		lines = append(lines, fmt.Sprintf("[trace]   event %s", id))
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
