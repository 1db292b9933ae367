// Command chessai-tui plays chess in the terminal.
package main

import (
	"flag"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hailam/chessai/internal/config"
	"github.com/hailam/chessai/internal/engine"
	"github.com/hailam/chessai/internal/storage"
	"github.com/hailam/chessai/internal/tui"
)

func main() {
	var (
		level    = flag.String("level", config.Getenv(config.EnvLevel, engine.Medium.String()), "starting computer strength: easy, medium or hard")
		logLevel = flag.String("log-level", config.Getenv(config.EnvLogLevel, "warn"), "log level")
		logFile  = flag.String("log-file", "", "write logs to this file instead of discarding them")
		noStore  = flag.Bool("no-store", config.GetenvBool(config.EnvNoStore, false), "do not persist preferences and statistics")
	)
	flag.Parse()

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	logger := config.NewLogger(io.Discard, "chessai", *logLevel)
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "chessai")
		if err != nil {
			config.NewLogger(os.Stderr, "chessai", *logLevel).Fatal("opening log file", "err", err)
		}
		defer f.Close()
		logger = config.NewLogger(f, "chessai", *logLevel)
	}

	opts := tui.Options{
		Logger: logger,
		Level:  config.Level(logger, *level),
	}
	if user := os.Getenv("USER"); user != "" {
		opts.Username = user
	}
	if !*noStore {
		store, err := storage.NewStorage(logger)
		if err != nil {
			logger.Warn("storage disabled", "err", err)
		} else {
			defer store.Close()
			opts.Store = store
		}
	}

	if _, err := tea.NewProgram(tui.New(opts), tea.WithAltScreen()).Run(); err != nil {
		logger.Error("running program", "err", err)
		os.Exit(1)
	}
}
