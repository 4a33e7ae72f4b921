// ABOUTME: File-backed slog logger for the TUI
// ABOUTME: Keeps log output off the terminal while the alt screen is active

package debuglog

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/markalston/workflow-sizer/backend/logger"
)

// FileName is the log file created inside the config directory
const FileName = "tui.log"

var (
	mu      sync.Mutex
	logFile *os.File
	current = slog.New(slog.DiscardHandler)
)

// Init opens configDir/tui.log for appending and routes Logger() to it.
// An empty configDir disables logging.
func Init(configDir, level string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	if configDir == "" {
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(configDir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	logFile = f
	current = logger.New(f, level, "text").With("component", "tui")
	return nil
}

// Close closes the log file and discards further output
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	current = slog.New(slog.DiscardHandler)
}

// Logger returns the active TUI logger
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return current
}
