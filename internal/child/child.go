// Package child spawns and waits on the wrapped command.
//
// Three execution modes are supported: Inherit hands the program's own
// stdout/stderr to the child; the PTY modes put a pseudo-terminal
// between the child and the program so the child behaves as if it were
// interactive, with a relay goroutine forwarding the PTY master to the
// program's stdout.
package child

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"
)

// Mode selects how the child's output streams are wired.
type Mode int

const (
	// ModeInherit connects the child's stdout/stderr directly to the
	// program's own.
	ModeInherit Mode = iota

	// ModePTY merges the child's stdout and stderr into one
	// pseudo-terminal, relayed to the program's stdout.
	ModePTY

	// ModePTYSplit relays the child's stdout through a pseudo-terminal
	// while its stderr goes directly to the program's stderr.
	ModePTYSplit
)

// UsesPTY reports whether the mode allocates a pseudo-terminal.
func (m Mode) UsesPTY() bool {
	return m == ModePTY || m == ModePTYSplit
}

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeInherit:
		return "inherit"
	case ModePTY:
		return "pty"
	case ModePTYSplit:
		return "pty-split"
	default:
		return "unknown"
	}
}

// Spec names the executable and its arguments. Immutable once
// supervision starts.
type Spec struct {
	Path string
	Args []string
}

// Outcome reports how the child terminated. Produced exactly once per
// run and never mutated.
type Outcome struct {
	ExitCode int
	Signal   syscall.Signal
	Signaled bool
}

// Options configures Spawn.
type Options struct {
	Mode Mode

	// Stdout receives the child's stdout (directly in Inherit mode,
	// through the PTY relay otherwise). Defaults to os.Stdout.
	Stdout io.Writer

	// Stderr receives the child's stderr in Inherit and PTY-split
	// modes. Defaults to os.Stderr.
	Stderr io.Writer

	Logger *slog.Logger
}

// ErrPTYUnsupported is returned when a PTY mode is requested on a
// platform without pseudo-terminal support.
var ErrPTYUnsupported = errors.New("child: pseudo-terminals are not supported on this platform")

// PTYSupported reports whether the PTY modes are available. Evaluated
// at startup so an unsupported request fails as a configuration error,
// never as a silent downgrade.
func PTYSupported() bool {
	return ptySupported
}

// Child is a spawned command. Create with Spawn; call Wait exactly
// once.
type Child struct {
	cmd    *exec.Cmd
	logger *slog.Logger

	// PTY modes only.
	master *os.File
	relay  sync.WaitGroup
	winch  chan os.Signal
}

// Spawn starts the command per the selected mode. On error no process
// is left running, no PTY is left open, and no relay is started.
func Spawn(ctx context.Context, spec Spec, opts Options) (*Child, error) {
	if spec.Path == "" {
		return nil, errors.New("child: empty command")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Stdin = os.Stdin

	c := &Child{cmd: cmd, logger: logger}

	switch opts.Mode {
	case ModeInherit:
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("spawn %s: %w", spec.Path, err)
		}

	case ModePTY, ModePTYSplit:
		master, slave, err := openPTY()
		if err != nil {
			return nil, fmt.Errorf("allocate pty: %w", err)
		}
		cmd.Stdout = slave
		if opts.Mode == ModePTY {
			cmd.Stderr = slave
		} else {
			cmd.Stderr = stderr
		}
		if err := cmd.Start(); err != nil {
			slave.Close()
			master.Close()
			return nil, fmt.Errorf("spawn %s: %w", spec.Path, err)
		}
		// Drop the parent's slave handle: once the child's copies close
		// on exit, the master read returns end-of-stream and the relay
		// terminates on its own.
		slave.Close()
		c.master = master
		c.watchResize()
		c.relay.Add(1)
		go c.relayLoop(stdout)

	default:
		return nil, fmt.Errorf("child: unknown mode %d", opts.Mode)
	}

	logger.Debug("child_started",
		"path", spec.Path,
		"pid", cmd.Process.Pid,
		"mode", opts.Mode.String(),
	)
	return c, nil
}

// relayLoop copies PTY master output to the program's stdout as data
// becomes available, preserving the command's live-output feel. It
// exits on PTY end-of-stream; a genuine I/O error stops the relay but
// never masks the child's real termination outcome.
func (c *Child) relayLoop(out io.Writer) {
	defer c.relay.Done()

	buf := make([]byte, 32*1024)
	for {
		n, err := c.master.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				c.logger.Warn("relay_write_failed", "error", werr)
				return
			}
		}
		if err != nil {
			if !isPTYClosed(err) {
				c.logger.Warn("relay_read_failed", "error", err)
			}
			return
		}
	}
}

// Wait blocks until the child terminates, joins the relay so no output
// leaks after return, and decodes the termination mode.
func (c *Child) Wait() Outcome {
	err := c.cmd.Wait()

	if c.master != nil {
		c.relay.Wait()
		c.stopResizeWatch()
		c.master.Close()
	}

	outcome := decodeOutcome(err)
	c.logger.Debug("child_exited",
		"pid", c.cmd.Process.Pid,
		"exit_code", outcome.ExitCode,
		"signaled", outcome.Signaled,
	)
	return outcome
}

// PID returns the child's process ID.
func (c *Child) PID() int {
	return c.cmd.Process.Pid
}
