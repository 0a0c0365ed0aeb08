package markpad

import "regexp"

// Kind classifies a markup rule as inline or block-level.
// Block-level markup must occupy its own line (headings, lists, quotes)
// and triggers newline normalization on insert.
type Kind int

const (
	KindInline Kind = iota
	KindBlock
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	if k == KindBlock {
		return "block"
	}
	return "inline"
}

// Action tags for the closed set of editor actions.
const (
	ActionH1          = "h1"
	ActionH2          = "h2"
	ActionH3          = "h3"
	ActionBold        = "bold"
	ActionItalic      = "italic"
	ActionUnderline   = "underline"
	ActionUList       = "ulist"
	ActionOList       = "olist"
	ActionLink        = "link"
	ActionImage       = "image"
	ActionCode        = "code"
	ActionQuote       = "quote"
	ActionNestedQuote = "nested-quote"
	ActionHRule       = "hr"

	// ActionExportPDF is not an insertion rule; it triggers document export.
	ActionExportPDF = "export-pdf"
)

// Rule is a named insertion template bound to an editor action.
// Rules are immutable; built-in rules are constructed once.
type Rule struct {
	Action        string
	Prefix        string
	Suffix        string
	Kind          Kind
	EnsureNewline bool
}

// blockPrefix matches prefixes that introduce block-level markup:
// ATX headings of variable repetition, unordered-list markers,
// ordered-list markers, and the blockquote family. Anything after the
// marker must be whitespace; a bare marker with no trailing space also
// classifies as block.
var blockPrefix = regexp.MustCompile(`^(#{1,6}|[-*+]|\d+\.|>+)\s*$`)

// KindForPrefix classifies a prefix by pattern. Built-in rules carry an
// explicit Kind; this classifier exists for ad-hoc rules added without
// one, since unseen block markers still follow the marker-plus-space
// shape.
func KindForPrefix(prefix string) Kind {
	if blockPrefix.MatchString(prefix) {
		return KindBlock
	}
	return KindInline
}

// NewRule builds an ad-hoc rule, deriving Kind from the prefix pattern.
func NewRule(action, prefix, suffix string, ensureNewline bool) Rule {
	return Rule{
		Action:        action,
		Prefix:        prefix,
		Suffix:        suffix,
		Kind:          KindForPrefix(prefix),
		EnsureNewline: ensureNewline,
	}
}

// builtinRules maps action tags to their insertion templates.
// Kind is stated explicitly at definition time rather than re-derived,
// so rules whose prefix defeats the pattern (hr) still classify right.
var builtinRules = map[string]Rule{
	ActionH1:          {Action: ActionH1, Prefix: "# ", Suffix: "\n", Kind: KindBlock, EnsureNewline: true},
	ActionH2:          {Action: ActionH2, Prefix: "## ", Suffix: "\n", Kind: KindBlock, EnsureNewline: true},
	ActionH3:          {Action: ActionH3, Prefix: "### ", Suffix: "\n", Kind: KindBlock, EnsureNewline: true},
	ActionBold:        {Action: ActionBold, Prefix: "**", Suffix: "**", Kind: KindInline},
	ActionItalic:      {Action: ActionItalic, Prefix: "*", Suffix: "*", Kind: KindInline},
	ActionUnderline:   {Action: ActionUnderline, Prefix: "++", Suffix: "++", Kind: KindInline},
	ActionUList:       {Action: ActionUList, Prefix: "- ", Suffix: "\n", Kind: KindBlock, EnsureNewline: true},
	ActionOList:       {Action: ActionOList, Prefix: "1. ", Suffix: "\n", Kind: KindBlock, EnsureNewline: true},
	ActionLink:        {Action: ActionLink, Prefix: "[", Suffix: "](url)", Kind: KindInline},
	ActionImage:       {Action: ActionImage, Prefix: "![", Suffix: "](url)", Kind: KindInline},
	ActionCode:        {Action: ActionCode, Prefix: "`", Suffix: "`", Kind: KindInline},
	ActionQuote:       {Action: ActionQuote, Prefix: "> ", Suffix: "\n", Kind: KindBlock, EnsureNewline: true},
	ActionNestedQuote: {Action: ActionNestedQuote, Prefix: ">> ", Suffix: "\n", Kind: KindBlock, EnsureNewline: true},
	ActionHRule:       {Action: ActionHRule, Prefix: "---", Suffix: "\n", Kind: KindBlock, EnsureNewline: true},
}

// LookupRule returns the built-in rule for an action tag.
func LookupRule(action string) (Rule, bool) {
	r, ok := builtinRules[action]
	return r, ok
}

// Actions returns the action tags with built-in insertion rules,
// in no particular order. ActionExportPDF is excluded: it has no rule.
func Actions() []string {
	tags := make([]string, 0, len(builtinRules))
	for tag := range builtinRules {
		tags = append(tags, tag)
	}
	return tags
}
