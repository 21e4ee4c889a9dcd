// Package terminal owns the status line on the controlling terminal.
//
// The Writer is the single owner of the overlay region: every byte that
// touches the status line goes through it, which is what keeps the
// overlay from interleaving with the child command's own output.
package terminal

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ANSI fragments used to reposition over the previously drawn block.
const (
	// clearLine moves to column 0 and erases to end of line.
	clearLine = "\r\x1b[K"
	// cursorUp moves one line up and erases to end of line.
	cursorUp = "\x1b[A\x1b[K"
)

// Writer draws and erases the status line. All methods are safe for
// concurrent use; the internal mutex is what serializes the scheduler's
// ticks against the PTY relay's pass-through writes.
type Writer struct {
	mu  sync.Mutex
	out io.Writer

	style  lipgloss.Style
	styled bool

	displayed bool
	lines     int // newlines in the displayed text
	// atLineStart tracks whether the cursor sits at column 0 of a fresh
	// line. Painting over a partial child line would destroy it on the
	// next erase, so redraws are suppressed until the line completes.
	atLineStart bool
}

// NewWriter returns a Writer drawing to out, normally the program's
// stderr.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out, atLineStart: true}
}

// SetStyle applies a lipgloss style to all subsequent redraws.
func (w *Writer) SetStyle(s lipgloss.Style) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.style = s
	w.styled = true
}

// Displayed reports whether a status line is currently on screen.
func (w *Writer) Displayed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.displayed
}

// Redraw replaces the current status line with text, overwriting in
// place. Only one status block is ever visible: the previous one is
// cleared first.
func (w *Writer) Redraw(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.atLineStart {
		// Mid-line child output owns the cursor; skip this paint.
		return nil
	}
	var buf bytes.Buffer
	w.clearLocked(&buf)
	w.writeStatusLocked(&buf, text)
	_, err := w.out.Write(buf.Bytes())
	return err
}

// Erase removes the status line, leaving the cursor exactly where the
// child's output left off.
func (w *Writer) Erase() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.displayed {
		return nil
	}
	var buf bytes.Buffer
	w.clearLocked(&buf)
	w.displayed = false
	w.lines = 0
	_, err := w.out.Write(buf.Bytes())
	return err
}

// Detach ends the status line with a newline and forgets it, so the
// final "leave total" text survives whatever is printed next.
func (w *Writer) Detach() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.displayed {
		return nil
	}
	w.displayed = false
	w.lines = 0
	_, err := io.WriteString(w.out, "\n")
	return err
}

// Passthrough forwards a chunk of child output to out with the status
// line lifted out of the way, then repaints it beneath. The whole
// sequence runs under the writer's lock so a concurrent tick can never
// slice into the child's bytes.
func (w *Writer) Passthrough(out io.Writer, p []byte, repaint string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var buf bytes.Buffer
	w.clearLocked(&buf)
	w.displayed = false
	w.lines = 0
	if buf.Len() > 0 {
		if _, err := w.out.Write(buf.Bytes()); err != nil {
			return 0, err
		}
	}

	n, err := out.Write(p)
	if n > 0 {
		w.atLineStart = p[n-1] == '\n'
	}
	if err != nil {
		return n, err
	}

	if w.atLineStart && repaint != "" {
		var again bytes.Buffer
		w.writeStatusLocked(&again, repaint)
		if _, werr := w.out.Write(again.Bytes()); werr != nil {
			return n, werr
		}
	}
	return n, nil
}

// clearLocked appends the sequence that wipes the displayed block and
// leaves the cursor at its first column. Caller holds w.mu.
func (w *Writer) clearLocked(buf *bytes.Buffer) {
	if !w.displayed {
		return
	}
	buf.WriteString(clearLine)
	for i := 0; i < w.lines; i++ {
		buf.WriteString(cursorUp)
	}
}

// writeStatusLocked appends the rendered status text and records its
// shape. Caller holds w.mu.
func (w *Writer) writeStatusLocked(buf *bytes.Buffer, text string) {
	if w.styled {
		text = w.style.Render(text)
	}
	buf.WriteString(text)
	w.displayed = true
	w.lines = strings.Count(text, "\n")
}

// IsTerminal reports whether f is attached to a terminal. The overlay
// is skipped entirely when stderr is redirected.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
