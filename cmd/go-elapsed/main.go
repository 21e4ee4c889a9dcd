// Package main provides the go-elapsed CLI entry point.
//
// go-elapsed runs an arbitrary command and overlays a periodically
// updated elapsed-time status line on the terminal's stderr, without
// corrupting the command's own output. On exit it propagates the
// command's exit status.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/randomizedcoder/go-elapsed/internal/child"
	"github.com/randomizedcoder/go-elapsed/internal/config"
	"github.com/randomizedcoder/go-elapsed/internal/format"
	"github.com/randomizedcoder/go-elapsed/internal/logging"
	"github.com/randomizedcoder/go-elapsed/internal/supervisor"
	"github.com/randomizedcoder/go-elapsed/internal/terminal"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/go-elapsed
var version = "dev"

// usageExitCode is returned for configuration errors, before anything
// spawns.
const usageExitCode = 2

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Handle version flag early (before flag parsing)
	if len(args) > 0 {
		arg := args[0]
		if arg == "-version" || arg == "--version" || arg == "version" {
			fmt.Printf("go-elapsed %s\n", version)
			return 0
		}
	}

	// Parse command-line flags
	cfg, err := config.ParseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return usageExitCode
	}

	isTTY := terminal.IsTerminal(os.Stderr)

	// Initialize logger
	// While the status line owns the terminal, suppress logs to avoid
	// corrupting the overlay unless the user explicitly asked for them.
	var logger *slog.Logger
	if isTTY && !cfg.Verbose {
		logger = logging.Discard()
	} else {
		logger = logging.New(os.Stderr, cfg.LogFormat, cfg.Verbose)
	}
	logging.SetDefault(logger)

	// Validate configuration
	if err := config.Validate(cfg, child.PTYSupported()); err != nil {
		fmt.Fprintf(os.Stderr, "go-elapsed: configuration error: %v\n", err)
		return usageExitCode
	}

	tmpl, err := format.Parse(cfg.Format)
	if err != nil {
		// Unreachable after Validate, but never spawn on a bad template.
		fmt.Fprintf(os.Stderr, "go-elapsed: %v\n", err)
		return usageExitCode
	}

	mode := child.ModeInherit
	if cfg.TTY {
		mode = child.ModePTY
		if cfg.SplitStderr {
			mode = child.ModePTYSplit
		}
	}

	logger.Debug("starting",
		"version", version,
		"command", cfg.Command[0],
		"mode", mode.String(),
		"refresh", cfg.Refresh().String(),
		"total", cfg.Total,
	)

	sup := supervisor.New(supervisor.Config{
		Command:    child.Spec{Path: cfg.Command[0], Args: cfg.Command[1:]},
		Mode:       mode,
		Refresh:    cfg.Refresh(),
		Format:     tmpl,
		LeaveTotal: cfg.Total,
		Color:      cfg.Color,
		IsTTY:      isTTY,
		Logger:     logger,
	})

	return sup.Run(context.Background())
}
