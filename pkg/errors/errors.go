// Package errors defines the sentinel errors shared across boardman and small
// helpers for wrapping them with context.
package errors

import "fmt"

// Common error types.
var (
	// Installer preconditions. These abort an operation before any mutation.
	ErrPlatformAlreadyInstalled = fmt.Errorf("platform is already installed")
	ErrToolUnavailable          = fmt.Errorf("tool is not available for your operating system")

	// Download errors.
	ErrDownloadFailed   = fmt.Errorf("download failed")
	ErrChecksumMismatch = fmt.Errorf("checksum mismatch")
	ErrInvalidURL       = fmt.Errorf("invalid URL")
	ErrInvalidPath      = fmt.Errorf("invalid path")

	// Index errors.
	ErrIndexNotFound    = fmt.Errorf("index file not found")
	ErrIndexParse       = fmt.Errorf("failed to parse index")
	ErrPlatformNotFound = fmt.Errorf("platform not found")
	ErrToolNotResolved  = fmt.Errorf("tool reference cannot be resolved")

	// Hook errors.
	ErrHookExecution = fmt.Errorf("error running lifecycle script")
	ErrHookScript    = fmt.Errorf("lifecycle script error")

	// Signature errors.
	ErrKeyringMissing = fmt.Errorf("signature keyring is not available")

	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
