// Package pipeline implements the markup-to-HTML stages of the preview
// pipeline:
//
//   - source sanitization (line normalization, ==highlight== and
//     ++underline++ shorthand via placeholder markers)
//   - markup to HTML conversion via Goldmark
//   - stylesheet injection into produced documents
//
// The root markpad package composes these stages behind its Renderer and
// re-exposes them through its Sanitizer and Transformer contracts. PDF
// rendering lives in the root package (go-rod); this package is concerned
// only with document structure and content.
package pipeline
