package markpad

// TextBuffer is the document content plus the current selection.
// Offsets are byte positions into Content. A collapsed selection
// (SelStart == SelEnd) is a plain caret.
//
// TextBuffer is a value type: components receive snapshots and never
// hold references across calls.
type TextBuffer struct {
	Content  string
	SelStart int
	SelEnd   int
}

// NewTextBuffer creates a buffer with the caret at the end of content.
func NewTextBuffer(content string) TextBuffer {
	return TextBuffer{
		Content:  content,
		SelStart: len(content),
		SelEnd:   len(content),
	}
}

// Clamped returns a copy whose selection satisfies the buffer invariant:
// 0 <= SelStart <= SelEnd <= len(Content). Out-of-order endpoints are
// swapped, out-of-range endpoints are bounded. Inputs arriving from UI
// glue are never trusted.
func (b TextBuffer) Clamped() TextBuffer {
	start, end := b.SelStart, b.SelEnd
	if end < start {
		start, end = end, start
	}
	start = clampOffset(start, len(b.Content))
	end = clampOffset(end, len(b.Content))
	return TextBuffer{Content: b.Content, SelStart: start, SelEnd: end}
}

// Selected returns the selected text, which may be empty.
// The receiver is clamped first, so this never panics.
func (b TextBuffer) Selected() string {
	c := b.Clamped()
	return c.Content[c.SelStart:c.SelEnd]
}

// Collapsed reports whether the selection is a plain caret.
func (b TextBuffer) Collapsed() bool {
	c := b.Clamped()
	return c.SelStart == c.SelEnd
}

// WithSelection returns a copy with the given selection, clamped.
func (b TextBuffer) WithSelection(start, end int) TextBuffer {
	b.SelStart = start
	b.SelEnd = end
	return b.Clamped()
}

func clampOffset(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
