// Package supervisor orchestrates a single wrapped command: spawn,
// status-line scheduling, wait, finalize, exit-code policy.
package supervisor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/randomizedcoder/go-elapsed/internal/child"
	"github.com/randomizedcoder/go-elapsed/internal/format"
	"github.com/randomizedcoder/go-elapsed/internal/scheduler"
	"github.com/randomizedcoder/go-elapsed/internal/terminal"
)

// Config holds configuration for creating a new Supervisor.
type Config struct {
	Command    child.Spec
	Mode       child.Mode
	Refresh    time.Duration
	Format     *format.Format
	LeaveTotal bool
	Color      bool

	// Stdout receives the child's stdout. Defaults to os.Stdout.
	Stdout io.Writer

	// Stderr receives the status line, the child's stderr (Inherit and
	// PTY-split modes) and any final messages. Defaults to os.Stderr.
	Stderr io.Writer

	// IsTTY reports whether Stderr is a terminal. When false, every
	// status-line activity is skipped: the overlay is a convenience,
	// never a correctness dependency.
	IsTTY bool

	Logger *slog.Logger
}

// Supervisor runs one command to completion with the elapsed-time
// overlay.
type Supervisor struct {
	cfg    Config
	writer *terminal.Writer
	logger *slog.Logger
	start  time.Time
}

// New creates a Supervisor with the given configuration.
func New(cfg Config) *Supervisor {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Format == nil {
		cfg.Format = format.Default()
	}
	if cfg.Refresh <= 0 {
		cfg.Refresh = time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	writer := terminal.NewWriter(cfg.Stderr)
	if cfg.Color {
		writer.SetStyle(terminal.StatusStyle())
	}

	return &Supervisor{
		cfg:    cfg,
		writer: writer,
		logger: logger,
	}
}

// Run executes the command and returns the process exit code: the
// child's own code on a normal exit, 1 on signal death or spawn
// failure.
func (s *Supervisor) Run(ctx context.Context) int {
	overlay := s.cfg.IsTTY

	// The elapsed clock starts immediately before the spawn.
	s.start = time.Now()

	stdout := s.cfg.Stdout
	if overlay && s.cfg.Mode.UsesPTY() {
		// Route relayed child output through the writer so the status
		// line is lifted out of the way and repainted beneath each
		// completed line.
		stdout = &overlayStdout{sup: s}
	}

	c, err := child.Spawn(ctx, s.cfg.Command, child.Options{
		Mode:   s.cfg.Mode,
		Stdout: stdout,
		Stderr: s.cfg.Stderr,
		Logger: s.logger,
	})
	if err != nil {
		// Fails before any status-line activity: no scheduler started,
		// no PTY left open.
		s.logger.Error("spawn_failed", "path", s.cfg.Command.Path, "error", err)
		fmt.Fprintf(s.cfg.Stderr, "go-elapsed: %v\n", err)
		return 1
	}

	var sched *scheduler.Scheduler
	if overlay {
		sched = scheduler.New(s.cfg.Refresh, func() {
			if err := s.writer.Redraw(s.renderNow()); err != nil {
				s.logger.Warn("status_redraw_failed", "error", err)
			}
		})
		sched.Start()
	}

	outcome := c.Wait()

	if overlay {
		// Synchronous: after Stop returns, no further redraw can land
		// on top of the finalized line.
		sched.Stop()
		if s.cfg.LeaveTotal {
			s.writer.Redraw(s.renderNow())
			s.writer.Detach()
		} else {
			s.writer.Erase()
		}
	}

	if outcome.Signaled {
		s.logger.Warn("child_signaled",
			"pid", c.PID(),
			"signal", int(outcome.Signal),
			"signal_name", child.SignalName(outcome.Signal),
		)
		fmt.Fprintf(s.cfg.Stderr, "go-elapsed: command killed by signal %d (%s)\n",
			int(outcome.Signal), child.SignalName(outcome.Signal))
		return 1
	}

	s.logger.Debug("child_done", "pid", c.PID(), "exit_code", outcome.ExitCode)
	return outcome.ExitCode
}

// renderNow formats the elapsed time as of this instant.
func (s *Supervisor) renderNow() string {
	return s.cfg.Format.Render(time.Since(s.start))
}

// overlayStdout is the PTY relay's destination when the overlay is
// active: each chunk passes through the terminal writer, which erases
// the status line first and repaints it after complete lines.
type overlayStdout struct {
	sup *Supervisor
}

func (w *overlayStdout) Write(p []byte) (int, error) {
	return w.sup.writer.Passthrough(w.sup.cfg.Stdout, p, w.sup.renderNow())
}
