// Package storage provides persistent storage for user preferences and game statistics.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessai"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/chessai/
// - Linux: $XDG_DATA_HOME/chessai/ or ~/.local/share/chessai/
// - Windows: %APPDATA%/chessai/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// GetDatabaseDir returns the directory for the badger database, creating it
// if needed.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
