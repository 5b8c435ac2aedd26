package errors

import (
	"errors"
	"fmt"
)

// Exit codes for loadout
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitGuardBlock    = 2
	ExitTargetRoot    = 3
	ExitBackupFailed  = 4
	ExitSourceInvalid = 5
	ExitConfigError   = 6
)

// LoadoutError is the base error type for loadout
type LoadoutError struct {
	Code    int
	Message string
	Cause   error
}

func (e *LoadoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LoadoutError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *LoadoutError) ExitCode() int {
	return e.Code
}

// New creates a new LoadoutError
func New(code int, message string) *LoadoutError {
	return &LoadoutError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a LoadoutError
func Wrap(code int, message string, cause error) *LoadoutError {
	return &LoadoutError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// GuardBlock returns the distinguished block error for the pre-exec guard.
// Exit code 2 is the deliberate "command vetoed" signal consumed by the
// host; it must never be produced by any other failure path.
func GuardBlock(pattern string) *LoadoutError {
	return New(ExitGuardBlock, fmt.Sprintf("blocked: command contains denied pattern %q", pattern))
}

// TargetRootFailed returns an error for a target root that could not be created
func TargetRootFailed(path string, cause error) *LoadoutError {
	return Wrap(ExitTargetRoot, fmt.Sprintf("cannot create target root %s", path), cause)
}

// BackupFailed returns an error for a backup snapshot that could not be taken
func BackupFailed(cause error) *LoadoutError {
	return Wrap(ExitBackupFailed, "backup snapshot failed", cause)
}

// BackupVerifyFailed returns an error for a snapshot item that did not
// survive the copy into the snapshot directory
func BackupVerifyFailed(item string, cause error) *LoadoutError {
	return Wrap(ExitBackupFailed, fmt.Sprintf("backup verification failed for %s", item), cause)
}

// SourceNotFound returns an error for a missing or unusable source tree
func SourceNotFound(path string) *LoadoutError {
	return New(ExitSourceInvalid, fmt.Sprintf("source tree not found: %s", path))
}

// SourceInvalid returns an error for a source tree that exists but does not
// look like an asset tree
func SourceInvalid(path, reason string) *LoadoutError {
	return New(ExitSourceInvalid, fmt.Sprintf("invalid source tree %s: %s", path, reason))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *LoadoutError {
	return Wrap(ExitConfigError, message, cause)
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *LoadoutError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var loadoutErr *LoadoutError
	if errors.As(err, &loadoutErr) {
		return loadoutErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
