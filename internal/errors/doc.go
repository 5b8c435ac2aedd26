// Package errors provides typed errors with exit codes for loadout.
//
// # Error Types
//
// LoadoutError is the base error type that wraps an error with an exit code:
//
//	type LoadoutError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess       = 0  // Success (including user-declined confirmation)
//	ExitGeneralError  = 1  // General/unknown errors
//	ExitGuardBlock    = 2  // Pre-exec guard vetoed the command (not a failure)
//	ExitTargetRoot    = 3  // Target root could not be created
//	ExitBackupFailed  = 4  // Backup snapshot could not be created or verified
//	ExitSourceInvalid = 5  // Source tree missing or not an asset tree
//	ExitConfigError   = 6  // Configuration error
//
// ExitGuardBlock is special: it is the distinguished signal the host reads
// as "command vetoed", emitted deliberately by the guard and by nothing
// else. Per-item copy or delete failures during a lifecycle operation are
// reported but do not map to an exit code; only fatal preconditions do.
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.GuardBlock("rm -rf /")
//	errors.TargetRootFailed("/home/u/.claude", err)
//	errors.BackupFailed(err)
//	errors.SourceNotFound("/opt/loadout")
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
