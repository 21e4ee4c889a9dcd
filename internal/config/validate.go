package config

import (
	"errors"
	"fmt"

	"github.com/randomizedcoder/go-elapsed/internal/format"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors and inconsistencies.
// ptySupported is the platform capability evaluated at startup; asking
// for a PTY without it is a configuration error, not a silent
// downgrade. Everything here is rejected before any process spawns.
func Validate(cfg *Config, ptySupported bool) error {
	var errs []error

	if len(cfg.Command) == 0 {
		errs = append(errs, ValidationError{
			Field:   "command",
			Message: "a command to run is required",
		})
	}

	if cfg.RefreshMillis < 1 {
		errs = append(errs, ValidationError{
			Field:   "refresh",
			Message: fmt.Sprintf("must be a positive number of milliseconds (got %d)", cfg.RefreshMillis),
		})
	}

	if _, err := format.Parse(cfg.Format); err != nil {
		errs = append(errs, ValidationError{
			Field:   "format",
			Message: err.Error(),
		})
	}

	if cfg.TTY && !ptySupported {
		errs = append(errs, ValidationError{
			Field:   "tty",
			Message: "pseudo-terminals are not supported on this platform",
		})
	}

	if cfg.SplitStderr && !cfg.TTY {
		errs = append(errs, ValidationError{
			Field:   "split_stderr",
			Message: "-split-stderr requires -tty",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.LogFormat] {
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf("must be 'json' or 'text' (got %q)", cfg.LogFormat),
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
