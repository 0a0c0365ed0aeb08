package main

import (
	"errors"
	"os"

	markpad "github.com/quessia/markpad"
)

// Exit codes for the markpad CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors during PDF export
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, markpad.ErrBrowserConnect) ||
		errors.Is(err, markpad.ErrPageCreate) ||
		errors.Is(err, markpad.ErrPageLoad) ||
		errors.Is(err, markpad.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, markpad.ErrWritePDF) ||
		errors.Is(err, markpad.ErrSaveDocument) ||
		errors.Is(err, markpad.ErrLoadDocument) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrBadFlags) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrConfigParse) ||
		errors.Is(err, markpad.ErrUnknownAction) ||
		errors.Is(err, markpad.ErrInvalidPageSize) ||
		errors.Is(err, markpad.ErrInvalidOrientation) ||
		errors.Is(err, markpad.ErrInvalidMargin) {
		return ExitUsage
	}

	return ExitGeneral
}
