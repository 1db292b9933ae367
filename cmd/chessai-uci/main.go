// Command chessai-uci runs the engine behind the UCI protocol on stdin/stdout.
package main

import (
	"flag"
	"os"
	"runtime/pprof"

	"github.com/hailam/chessai/internal/config"
	"github.com/hailam/chessai/internal/engine"
	"github.com/hailam/chessai/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	level      = flag.String("level", config.Getenv(config.EnvLevel, "medium"), "AI level: easy, medium or hard")
	logLevel   = flag.String("log-level", config.Getenv(config.EnvLogLevel, "warn"), "log level")
)

func main() {
	flag.Parse()

	// stdout carries the protocol; everything else goes to stderr.
	logger := config.NewLogger(os.Stderr, "chessai-uci", *logLevel)

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			logger.Fatal("could not create CPU profile", "err", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatal("could not start CPU profile", "err", err)
		}
		defer pprof.StopCPUProfile()
		logger.Info("CPU profiling enabled", "path", profilePath)
	}

	eng := engine.NewEngine(config.Level(logger, *level))

	protocol := uci.New(eng, os.Stdin, os.Stdout, logger)
	if err := protocol.Run(); err != nil {
		logger.Error("reading commands", "err", err)
	}
}
