// Package config holds the flag and environment plumbing shared by the binaries.
package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hailam/chessai/internal/engine"
)

// Environment variables read by the binaries.
const (
	EnvLogLevel = "CHESSAI_LOG_LEVEL"
	EnvLevel    = "CHESSAI_LEVEL"
	EnvNoStore  = "CHESSAI_NO_STORE"
)

// Getenv returns the value of key, or def if it is unset or empty.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetenvBool parses key as a boolean, returning def if it is unset or not
// recognised.
func GetenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

// NewLogger builds the process logger writing to w. An unparsable level
// falls back to info and is reported once on the new logger.
func NewLogger(w io.Writer, prefix, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
		Level:           lvl,
	})
	if err != nil {
		logger.Warn("invalid log level, using info", "level", level)
	}
	return logger
}

// Level parses s as an engine level, falling back to Medium with a warning.
func Level(logger *log.Logger, s string) engine.Level {
	level, err := engine.ParseLevel(s)
	if err != nil {
		logger.Warn("invalid level, using medium", "err", err)
		return engine.Medium
	}
	return level
}
