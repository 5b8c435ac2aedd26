package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the global structured logger. Commands reconfigure it once
// through Setup; everything else logs through the package functions.
var Logger *slog.Logger

func init() {
	// Default handler so logging works before Setup runs.
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Setup configures the logger. Verbose lowers the level to debug,
// jsonOutput swaps the text handler for JSON lines, and a nil writer
// falls back to stderr.
func Setup(verbose bool, jsonOutput bool, w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if w == nil {
		w = os.Stderr
	}

	if jsonOutput {
		Logger = slog.New(slog.NewJSONHandler(w, opts))
	} else {
		Logger = slog.New(slog.NewTextHandler(w, opts))
	}
}

// Debug logs operational detail, visible only with --verbose.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Warn logs a failure the operation survives. Fatal failures are not
// logged here; they propagate as errors and exit codes.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
