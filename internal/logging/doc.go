// Package logging provides logging utilities for loadout.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("copying asset directory", "name", name, "dest", dest)
//	logging.Warn("failed to copy entry", "entry", name, "error", err)
//
// Debug logs go to stderr so they never mix with hook or command output on
// stdout; the host application only ever reads a hook's exit status and
// stderr.
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Backing up existing assets to %s...", backupDir)
//	logging.UserSuccess("Installed %d asset directories", n)
//	logging.UserWarning("Failed to copy %s: %v", name, err)
//	logging.UserError("Backup snapshot failed: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// # Status Indicators
//
// User functions prepend status indicators:
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
