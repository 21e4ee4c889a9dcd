package config

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// ParseFlags parses command-line flags (everything after the program
// name) and returns a Config. Flag parsing stops at the first
// positional argument, so the wrapped command's own flags pass through
// verbatim.
func ParseFlags(args []string) (*Config, error) {
	return parseFlags(args, os.Stderr)
}

// parseFlags is ParseFlags with an injectable output for tests.
func parseFlags(args []string, output io.Writer) (*Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("go-elapsed", flag.ContinueOnError)
	fs.SetOutput(output)

	// Custom usage message
	fs.Usage = func() {
		fmt.Fprintf(output, `go-elapsed - run a command with a live elapsed-time status line

Usage:
  go-elapsed [flags] <command> [args...]

Status Line:
`)
		printFlagCategory(fs, output, []string{"format", "refresh", "total", "color"})

		fmt.Fprintf(output, "\nExecution Mode:\n")
		printFlagCategory(fs, output, []string{"tty", "split-stderr"})

		fmt.Fprintf(output, "\nObservability:\n")
		printFlagCategory(fs, output, []string{"v", "log-format"})

		fmt.Fprintf(output, `
The status line is drawn on stderr and only when stderr is a terminal;
redirecting the command's stdout never captures the overlay.

Format template specifiers:
  %%H %%M %%S   zero-padded hours / minutes / seconds
  %%s          total whole seconds
  %%f          sub-second digits (%%3f for 3 digits)
  %%n %%t %%e   newline, tab, escape; %%%% for a literal percent

Examples:
  # Watch a long build
  go-elapsed make -j8

  # Sub-second resolution, keep the total on screen
  go-elapsed -total -refresh 100 -format "%%s.%%2f sec" ./run-benchmarks.sh

  # Full-fidelity progress bars from the child via a pseudo-terminal
  go-elapsed -tty npm install

`)
	}

	fs.StringVar(&cfg.Format, "format", cfg.Format, "Status line template")
	fs.IntVar(&cfg.RefreshMillis, "refresh", cfg.RefreshMillis, "Milliseconds between redraws")
	fs.BoolVar(&cfg.Total, "total", cfg.Total, "Leave the final elapsed time on screen after exit")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "Style the status line")

	fs.BoolVar(&cfg.TTY, "tty", cfg.TTY, "Attach the command to a pseudo-terminal")
	fs.BoolVar(&cfg.SplitStderr, "split-stderr", cfg.SplitStderr, "Keep the command's stderr out of the pseudo-terminal (requires -tty)")

	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose logging")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `Log format: "json" or "text"`)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Everything after the flags is the command, untouched.
	cfg.Command = fs.Args()

	return cfg, nil
}

// printFlagCategory prints flags matching the given names (helper for usage).
func printFlagCategory(fs *flag.FlagSet, output io.Writer, names []string) {
	fs.VisitAll(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				fmt.Fprintf(output, "  -%s\n    \t%s", f.Name, f.Usage)
				if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
					fmt.Fprintf(output, " (default %s)", f.DefValue)
				}
				fmt.Fprintln(output)
				return
			}
		}
	})
}
