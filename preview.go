package markpad

import (
	"context"
	"fmt"
)

// Transformer converts sanitized markup into HTML. Implementations fail
// with *ParseError (or any error) on malformed input; the Renderer maps
// every failure to a RenderResult rather than letting it escape.
type Transformer interface {
	Transform(ctx context.Context, content string) (string, error)
}

// Sanitizer cleans raw buffer content before transformation.
type Sanitizer interface {
	Sanitize(ctx context.Context, content string) string
}

// RenderResult is the outcome of one render cycle. Exactly one arm is
// populated: HTML on success, Message (with Failed set) on failure.
// Results are produced fresh per cycle and never mutated; callers
// discard and replace.
type RenderResult struct {
	HTML    string
	Failed  bool
	Message string
}

// Rendered builds a successful result.
func Rendered(html string) RenderResult {
	return RenderResult{HTML: html}
}

// RenderFailure builds a failed result. The caller renders the message
// as a visibly-marked error block, replacing any previous preview.
func RenderFailure(message string) RenderResult {
	return RenderResult{Failed: true, Message: message}
}

// Renderer runs one sanitize → transform pass over buffer content and
// maps the outcome to a RenderResult. It never returns an error and
// never panics past its boundary.
type Renderer struct {
	sanitizer   Sanitizer
	transformer Transformer
	style       string
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithSanitizer replaces the default pipeline sanitizer.
func WithSanitizer(s Sanitizer) RendererOption {
	return func(r *Renderer) { r.sanitizer = s }
}

// WithTransformer replaces the default goldmark transformer.
func WithTransformer(t Transformer) RendererOption {
	return func(r *Renderer) { r.transformer = t }
}

// WithPreviewStyle injects a stylesheet into every rendered document.
func WithPreviewStyle(css string) RendererOption {
	return func(r *Renderer) { r.style = css }
}

// NewRenderer creates a Renderer. Without options it uses the pipeline
// sanitizer and the goldmark transformer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.sanitizer == nil {
		r.sanitizer = NewMarkupSanitizer()
	}
	if r.transformer == nil {
		r.transformer = NewMarkupTransformer()
	}
	return r
}

// Render runs one render cycle over raw content. Transform errors and
// panics both degrade to a failed result; an exception never crosses
// this boundary.
func (r *Renderer) Render(ctx context.Context, raw string) (res RenderResult) {
	defer func() {
		if rec := recover(); rec != nil {
			res = RenderFailure(fmt.Sprintf("internal error: %v", rec))
		}
	}()

	input := r.sanitizer.Sanitize(ctx, raw)

	html, err := r.transformer.Transform(ctx, input)
	if err != nil {
		return RenderFailure(err.Error())
	}

	if r.style != "" {
		html = injectStyle(html, r.style)
	}
	return Rendered(html)
}
