package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Shorthand placeholders use Unicode Private Use Area characters. They
// cannot collide with document text and pass through Goldmark unchanged,
// so no html.WithUnsafe is needed. Post-processing converts them to real
// tags after HTML generation.
const (
	markStartPlaceholder = "\uE000" // U+E000: Private Use Area
	markEndPlaceholder   = "\uE001"
	uStartPlaceholder    = "\uE002"
	uEndPlaceholder      = "\uE003"
)

// Precompiled patterns for the sanitization passes.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress runs of blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Highlight syntax ==text==
	highlightPattern = regexp.MustCompile(`==(.*?)==`)

	// Underline syntax ++text++
	underlinePattern = regexp.MustCompile(`\+\+(.*?)\+\+`)

	// C0 control characters other than tab and newline
	controlChars = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
)

// Sanitizer cleans raw buffer content before transformation.
type Sanitizer struct{}

// Sanitize applies all cleanup passes. Order matters: line endings first,
// then control stripping, then shorthand conversion, then blank-line
// compression. Multiple passes keep each rule independent; fine for
// buffer-sized inputs.
func (s *Sanitizer) Sanitize(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = stripControlChars(content)
	content = convertHighlights(content)
	content = convertUnderlines(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// stripControlChars removes control characters that break HTML rendering,
// keeping tabs and newlines.
func stripControlChars(content string) string {
	return controlChars.ReplaceAllString(content, "")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights transforms ==text== to placeholder markers, later
// finalized as <mark> tags by ConvertPlaceholders.
func convertHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, markStartPlaceholder+"$1"+markEndPlaceholder)
}

// convertUnderlines transforms ++text++ to placeholder markers, later
// finalized as <u> tags by ConvertPlaceholders.
func convertUnderlines(content string) string {
	return underlinePattern.ReplaceAllString(content, uStartPlaceholder+"$1"+uEndPlaceholder)
}

// ConvertPlaceholders converts shorthand placeholder markers to their
// HTML tags. Called after Goldmark so the converter itself never sees
// raw HTML.
func ConvertPlaceholders(content string) string {
	r := strings.NewReplacer(
		markStartPlaceholder, "<mark>",
		markEndPlaceholder, "</mark>",
		uStartPlaceholder, "<u>",
		uEndPlaceholder, "</u>",
	)
	return r.Replace(content)
}
