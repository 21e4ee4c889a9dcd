//go:build !windows

package child

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

const ptySupported = true

// openPTY allocates a master/slave pseudo-terminal pair.
func openPTY() (master, slave *os.File, err error) {
	return pty.Open()
}

// isPTYClosed reports whether a master read error is the normal
// end-of-stream for a PTY. Linux reports EIO once the slave side
// closes; other unixes report plain EOF.
func isPTYClosed(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, syscall.EIO) ||
		errors.Is(err, fs.ErrClosed)
}

// watchResize keeps the PTY dimensions in sync with the controlling
// terminal. The initial send seeds the size before the child draws
// anything.
func (c *Child) watchResize() {
	c.winch = make(chan os.Signal, 1)
	signal.Notify(c.winch, syscall.SIGWINCH)
	master := c.master
	go func() {
		for range c.winch {
			if err := pty.InheritSize(os.Stdin, master); err != nil {
				c.logger.Debug("pty_resize_failed", "error", err)
			}
		}
	}()
	c.winch <- syscall.SIGWINCH
}

func (c *Child) stopResizeWatch() {
	if c.winch == nil {
		return
	}
	signal.Stop(c.winch)
	close(c.winch)
	c.winch = nil
}

// decodeOutcome turns the Wait error into a termination outcome,
// distinguishing a normal exit code from death by signal.
func decodeOutcome(err error) Outcome {
	if err == nil {
		return Outcome{}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			if status.Signaled() {
				return Outcome{ExitCode: 1, Signal: status.Signal(), Signaled: true}
			}
			return Outcome{ExitCode: status.ExitStatus()}
		}
		return Outcome{ExitCode: exitErr.ExitCode()}
	}
	// Wait failed for a reason other than the child's exit status.
	return Outcome{ExitCode: 1}
}

// SignalName returns the conventional name for a signal, e.g. SIGKILL.
func SignalName(sig syscall.Signal) string {
	if name := unix.SignalName(sig); name != "" {
		return name
	}
	return sig.String()
}
