// Package config provides configuration management for go-elapsed.
package config

import "time"

// Config holds all configuration options for a run. Command and the
// flag values come straight from the CLI; everything else defaults
// sensibly.
type Config struct {
	// Command
	Command []string `json:"command"` // executable followed by its arguments, verbatim

	// Status line
	Format        string `json:"format"`         // duration template
	RefreshMillis int    `json:"refresh_millis"` // milliseconds between redraws
	Total         bool   `json:"total"`          // leave the final elapsed line on screen
	Color         bool   `json:"color"`          // style the status line

	// Execution mode
	TTY         bool `json:"tty"`          // run the child on a pseudo-terminal
	SplitStderr bool `json:"split_stderr"` // keep stderr out of the PTY (requires -tty)

	// Observability
	Verbose   bool   `json:"verbose"`
	LogFormat string `json:"log_format"` // json, text
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Format:        "Elapsed: %H:%M:%S",
		RefreshMillis: 1000,

		LogFormat: "text",
	}
}

// Refresh returns the redraw interval as a duration.
func (c *Config) Refresh() time.Duration {
	return time.Duration(c.RefreshMillis) * time.Millisecond
}
