package terminal

import (
	"bytes"
	"os"
	"testing"
)

func TestRedrawFirstDraw(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Redraw("Elapsed: 00:00:01"); err != nil {
		t.Fatalf("Redraw returned error: %v", err)
	}
	if got := buf.String(); got != "Elapsed: 00:00:01" {
		t.Errorf("first Redraw wrote %q, want bare text (nothing to clear yet)", got)
	}
	if !w.Displayed() {
		t.Error("Displayed() = false after Redraw")
	}
}

func TestRedrawOverwritesInPlace(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.Redraw("one")
	buf.Reset()
	w.Redraw("two")

	want := clearLine + "two"
	if got := buf.String(); got != want {
		t.Errorf("second Redraw wrote %q, want %q", got, want)
	}
}

func TestRepeatedRedrawNeverStacksLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	for i := 0; i < 5; i++ {
		w.Redraw("tick")
	}
	// No newline is ever emitted, so the line cannot stack.
	if bytes.ContainsRune(buf.Bytes(), '\n') {
		t.Errorf("redraw sequence emitted a newline: %q", buf.String())
	}
}

func TestEraseRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.Redraw("Elapsed: 00:00:01")
	buf.Reset()
	if err := w.Erase(); err != nil {
		t.Fatalf("Erase returned error: %v", err)
	}
	// Reposition to column 0 and clear: the overlay region is gone and
	// the cursor is back where the command's output left off.
	if got := buf.String(); got != clearLine {
		t.Errorf("Erase wrote %q, want %q", got, clearLine)
	}
	if w.Displayed() {
		t.Error("Displayed() = true after Erase")
	}

	// Erase with nothing displayed writes nothing.
	buf.Reset()
	w.Erase()
	if buf.Len() != 0 {
		t.Errorf("second Erase wrote %q, want nothing", buf.String())
	}
}

func TestEraseMultilineStatus(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.Redraw("line one\nline two\nline three")
	buf.Reset()
	w.Erase()

	want := clearLine + cursorUp + cursorUp
	if got := buf.String(); got != want {
		t.Errorf("Erase of 3-line status wrote %q, want %q", got, want)
	}
}

func TestDetachLeavesLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.Redraw("Elapsed: 00:00:07")
	w.Detach()

	if got := buf.String(); got != "Elapsed: 00:00:07\n" {
		t.Errorf("Redraw+Detach wrote %q, want the line kept with trailing newline", got)
	}
	if w.Displayed() {
		t.Error("Displayed() = true after Detach")
	}

	// Detach with nothing displayed writes nothing.
	buf.Reset()
	w.Detach()
	if buf.Len() != 0 {
		t.Errorf("second Detach wrote %q, want nothing", buf.String())
	}
}

func TestPassthroughLiftsAndRepaints(t *testing.T) {
	var status, out bytes.Buffer
	w := NewWriter(&status)

	w.Redraw("Elapsed: 00:00:01")
	status.Reset()

	n, err := w.Passthrough(&out, []byte("child says hi\n"), "Elapsed: 00:00:01")
	if err != nil {
		t.Fatalf("Passthrough returned error: %v", err)
	}
	if n != len("child says hi\n") {
		t.Errorf("Passthrough wrote %d bytes, want %d", n, len("child says hi\n"))
	}
	if got := out.String(); got != "child says hi\n" {
		t.Errorf("child output = %q, want untouched bytes", got)
	}
	want := clearLine + "Elapsed: 00:00:01"
	if got := status.String(); got != want {
		t.Errorf("status stream = %q, want erase then repaint %q", got, want)
	}
	if !w.Displayed() {
		t.Error("Displayed() = false after repaint")
	}
}

func TestPassthroughSuppressesRepaintMidLine(t *testing.T) {
	var status, out bytes.Buffer
	w := NewWriter(&status)

	w.Redraw("tick")
	status.Reset()

	// Chunk without a trailing newline: status stays hidden.
	w.Passthrough(&out, []byte("partial"), "tick")
	if got := status.String(); got != clearLine {
		t.Errorf("status stream = %q, want erase only while the child line is open", got)
	}

	// A tick landing mid-line must not paint either.
	status.Reset()
	w.Redraw("tick")
	if status.Len() != 0 {
		t.Errorf("Redraw mid-line wrote %q, want nothing", status.String())
	}

	// Completing the line restores painting.
	status.Reset()
	w.Passthrough(&out, []byte(" done\n"), "tick")
	if got := status.String(); got != "tick" {
		t.Errorf("status stream = %q, want repaint after line completes", got)
	}
	if got := out.String(); got != "partial done\n" {
		t.Errorf("child output = %q, want both chunks verbatim", got)
	}
}

func TestPassthroughWithoutStatus(t *testing.T) {
	var status, out bytes.Buffer
	w := NewWriter(&status)

	w.Passthrough(&out, []byte("plain\n"), "")
	if status.Len() != 0 {
		t.Errorf("status stream got %q, want nothing when no status is displayed", status.String())
	}
	if got := out.String(); got != "plain\n" {
		t.Errorf("child output = %q, want %q", got, "plain\n")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("IsTerminal(nil) = true")
	}
	f, err := os.Open(os.DevNull)
	if err != nil {
		t.Skipf("cannot open %s: %v", os.DevNull, err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Errorf("IsTerminal(%s) = true", os.DevNull)
	}
}
