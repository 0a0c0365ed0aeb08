package markpad

import (
	"context"
	"errors"

	"github.com/quessia/markpad/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ Transformer = (*MarkupTransformer)(nil)
	_ Sanitizer   = (*MarkupSanitizer)(nil)
)

// MarkupTransformer is the default Transformer: goldmark with GFM
// extensions and fenced-code syntax highlighting.
type MarkupTransformer struct {
	g *pipeline.GoldmarkTransformer
}

// NewMarkupTransformer creates the default transformer.
func NewMarkupTransformer() *MarkupTransformer {
	return &MarkupTransformer{g: pipeline.NewGoldmarkTransformer()}
}

// Transform converts markup to a standalone HTML document. Conversion
// failures surface as *ParseError; context errors pass through as-is so
// callers can distinguish cancellation from rejection.
func (t *MarkupTransformer) Transform(ctx context.Context, content string) (string, error) {
	html, err := t.g.Transform(ctx, content)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", &ParseError{Msg: err.Error()}
	}
	return html, nil
}

// MarkupSanitizer is the default Sanitizer: line-ending normalization,
// control-character stripping, shorthand placeholder conversion, and
// blank-line compression.
type MarkupSanitizer struct {
	p *pipeline.Sanitizer
}

// NewMarkupSanitizer creates the default sanitizer.
func NewMarkupSanitizer() *MarkupSanitizer {
	return &MarkupSanitizer{p: &pipeline.Sanitizer{}}
}

// Sanitize cleans raw buffer content.
func (s *MarkupSanitizer) Sanitize(ctx context.Context, content string) string {
	return s.p.Sanitize(ctx, content)
}

// injectStyle inserts a stylesheet into a rendered document.
func injectStyle(html, css string) string {
	return pipeline.InjectCSS(html, css)
}
