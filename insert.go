package markpad

import "strings"

// CaretPolicy selects where the caret lands after wrapping an empty
// selection. The historical behavior places it after the suffix, which
// makes repeated invocations well-defined but forces the user to arrow
// back before typing between the markers.
type CaretPolicy int

const (
	// CaretAfterSuffix places the caret after the inserted suffix.
	CaretAfterSuffix CaretPolicy = iota

	// CaretBetweenMarkers places the caret between prefix and suffix
	// when the selection is empty, ready for typing.
	CaretBetweenMarkers
)

// Inserter computes markup insertions. It is stateless apart from its
// configured caret policy; Insert is pure.
type Inserter struct {
	policy CaretPolicy
}

// InserterOption configures an Inserter.
type InserterOption func(*Inserter)

// WithCaretPolicy sets the caret placement policy for empty-selection wraps.
func WithCaretPolicy(p CaretPolicy) InserterOption {
	return func(ins *Inserter) { ins.policy = p }
}

// WithCaretBetweenMarkers is shorthand for WithCaretPolicy(CaretBetweenMarkers).
func WithCaretBetweenMarkers() InserterOption {
	return WithCaretPolicy(CaretBetweenMarkers)
}

// NewInserter creates an Inserter with the default after-suffix caret policy.
func NewInserter(opts ...InserterOption) *Inserter {
	ins := &Inserter{policy: CaretAfterSuffix}
	for _, opt := range opts {
		opt(ins)
	}
	return ins
}

// Insert wraps the buffer's selection in the rule's markup and returns the
// new buffer plus the caret offset. The input buffer is clamped first, so
// hostile selections cannot panic. Block-level rules with EnsureNewline get
// newline normalization:
//
//   - a leading newline when the insertion point is mid-line (not at the
//     document start and not already after a newline), and
//   - exactly one trailing newline after the suffix.
//
// The caret lands after the suffix, before any trailing newline, so
// repeated invocations do not compound block separators. The result
// selection is collapsed at the caret.
func (ins *Inserter) Insert(buf TextBuffer, rule Rule) (TextBuffer, int) {
	b := buf.Clamped()
	selected := b.Content[b.SelStart:b.SelEnd]

	blockLevel := rule.Kind == KindBlock

	leading := ""
	if rule.EnsureNewline && blockLevel && b.SelStart > 0 && b.Content[b.SelStart-1] != '\n' {
		leading = "\n"
	}

	// Block rules always end the insertion with a newline; the caret
	// stays before it so repeated invocations do not compound block
	// separators. A suffix that already ends in '\n' supplies the
	// trailing newline itself.
	suffix := rule.Suffix
	trailing := ""
	if rule.EnsureNewline && blockLevel {
		suffix = strings.TrimSuffix(suffix, "\n")
		trailing = "\n"
	}

	var sb strings.Builder
	sb.Grow(len(b.Content) + len(leading) + len(rule.Prefix) + len(suffix) + len(trailing))
	sb.WriteString(b.Content[:b.SelStart])
	sb.WriteString(leading)
	sb.WriteString(rule.Prefix)
	sb.WriteString(selected)
	sb.WriteString(suffix)
	sb.WriteString(trailing)
	sb.WriteString(b.Content[b.SelEnd:])

	caret := b.SelStart + len(leading) + len(rule.Prefix) + len(selected) + len(suffix)
	if ins.policy == CaretBetweenMarkers && selected == "" {
		caret = b.SelStart + len(leading) + len(rule.Prefix)
	}

	return TextBuffer{Content: sb.String(), SelStart: caret, SelEnd: caret}, caret
}

// Insert applies a rule to a buffer using the default caret policy.
func Insert(buf TextBuffer, rule Rule) (TextBuffer, int) {
	return NewInserter().Insert(buf, rule)
}
