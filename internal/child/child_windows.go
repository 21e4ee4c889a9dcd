//go:build windows

package child

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"syscall"
)

const ptySupported = false

func openPTY() (master, slave *os.File, err error) {
	return nil, nil, ErrPTYUnsupported
}

func isPTYClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, fs.ErrClosed)
}

func (c *Child) watchResize() {}

func (c *Child) stopResizeWatch() {}

func decodeOutcome(err error) Outcome {
	if err == nil {
		return Outcome{}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Outcome{ExitCode: exitErr.ExitCode()}
	}
	return Outcome{ExitCode: 1}
}

// SignalName returns the conventional name for a signal.
func SignalName(sig syscall.Signal) string {
	return sig.String()
}
