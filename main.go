// ChessAI - a chess game with a minimax computer opponent, built with Ebitengine.
package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessai/internal/config"
	"github.com/hailam/chessai/internal/engine"
	"github.com/hailam/chessai/internal/storage"
	"github.com/hailam/chessai/internal/ui"
)

func main() {
	var (
		level    = flag.String("level", config.Getenv(config.EnvLevel, engine.Medium.String()), "computer strength: easy, medium or hard")
		logLevel = flag.String("log-level", config.Getenv(config.EnvLogLevel, "info"), "log level")
		noStore  = flag.Bool("no-store", config.GetenvBool(config.EnvNoStore, false), "do not persist preferences and statistics")
	)
	flag.Parse()

	logger := config.NewLogger(os.Stderr, "chessai", *logLevel)

	opts := ui.Options{
		Logger: logger,
		Level:  config.Level(logger, *level),
	}
	if !*noStore {
		store, err := storage.NewStorage(logger)
		if err != nil {
			logger.Warn("storage disabled", "err", err)
		} else {
			opts.Store = store
		}
	}

	game := ui.NewGame(opts)
	defer game.Close()

	ebiten.SetWindowSize(ui.BoardSize, ui.BoardSize)
	ebiten.SetWindowTitle(game.Title())

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game loop", "err", err)
		game.Close()
		os.Exit(1)
	}
}
