package tui

import (
	"io"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/stranded/engine"
	"github.com/nathoo/stranded/engine/parser"
	"github.com/nathoo/stranded/types"
)

// Messages from the game goroutine to the program.
type (
	outputMsg struct {
		lines []string
		kind  lineKind
	}
	statusMsg engine.Status
	doneMsg   struct{ err error }
)

// inbox carries submitted input lines from the program to the game
// goroutine. Stopping it releases a blocked reader.
type inbox struct {
	lines chan string
	done  chan struct{}
	once  sync.Once
}

func newInbox(size int) *inbox {
	return &inbox{lines: make(chan string, size), done: make(chan struct{})}
}

// submit queues line without blocking. It reports false when the queue is
// full or the inbox is stopped.
func (in *inbox) submit(line string) bool {
	select {
	case <-in.done:
		return false
	default:
	}
	select {
	case in.lines <- line:
		return true
	default:
		return false
	}
}

// read returns the next line. Queued lines are drained before a stop is
// seen.
func (in *inbox) read() (string, bool) {
	select {
	case line := <-in.lines:
		return line, true
	default:
	}
	select {
	case line := <-in.lines:
		return line, true
	case <-in.done:
		return "", false
	}
}

func (in *inbox) stop() { in.once.Do(func() { close(in.done) }) }

// bridge is the engine's terminal in TUI mode. It runs on the game
// goroutine, which is the only one that touches the world: output and
// status snapshots leave it as messages.
type bridge struct {
	send   func(tea.Msg)
	in     *inbox
	status func() engine.Status
	trace  *atomic.Bool
}

func (b *bridge) Print(text string) {
	b.send(outputMsg{lines: []string{text}, kind: kindNarrative})
}

// Read publishes a fresh status snapshot, then waits for the next line.
func (b *bridge) Read() ([]string, error) {
	b.send(statusMsg(b.status()))
	line, ok := b.in.read()
	if !ok {
		return nil, io.EOF
	}
	return parser.Tokenize(line), nil
}

func (b *bridge) Trace(result types.Result) {
	if b.trace.Load() {
		b.send(outputMsg{lines: formatTrace(result), kind: kindTrace})
	}
}
