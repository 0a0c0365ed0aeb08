package markpad

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrUnknownAction = errors.New("unknown editor action")

	// Persistence errors.
	ErrSaveDocument = errors.New("failed to save document")
	ErrLoadDocument = errors.New("failed to load document")

	// Export errors.
	ErrExport         = errors.New("document export failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrWritePDF       = errors.New("failed to write PDF file")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
)

// ParseError reports that a Transformer rejected its input. The renderer
// recovers from it locally: the message becomes a visible error block in
// the preview, and the buffer is untouched.
type ParseError struct {
	Msg string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Msg
}

// NewParseError builds a ParseError with a formatted message.
func NewParseError(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}
