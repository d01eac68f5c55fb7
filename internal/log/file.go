package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// NewFileLogger creates a structured logger appending to the given log
// file, wrapped in a SecureHandler so the API credential never reaches
// disk. Parent directories are created as needed.
//
// The returned closer must be called when the run ends to flush and close
// the file. The log level is Info by default, Debug when verbose is true:
// the log file is the only record of a scheduled run, so major steps are
// always written.
func NewFileLogger(path string, verbose bool) (*slog.Logger, io.Closer, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // User-provided log path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	return NewSecureLogger(f, verbose), f, nil
}

// NewSecureLogger creates a new slog.Logger with secure handling over an
// arbitrary writer. Useful for tests and for logging to stderr.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Info
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewSecureHandler(textHandler))
}
