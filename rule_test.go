package markpad

import "testing"

func TestKindForPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix string
		want   Kind
	}{
		{"# ", KindBlock},
		{"## ", KindBlock},
		{"###### ", KindBlock},
		{"- ", KindBlock},
		{"* ", KindBlock},
		{"+ ", KindBlock},
		{"1. ", KindBlock},
		{"42. ", KindBlock},
		{"> ", KindBlock},
		{">> ", KindBlock},
		{">", KindBlock},
		{"#", KindBlock}, // trailing space after the marker is optional
		{"-", KindBlock},
		{"**", KindInline},
		{"*", KindBlock}, // bare asterisk reads as a list marker; italic carries an explicit Kind instead
		{"`", KindInline},
		{"[", KindInline},
		{"![", KindInline},
		{"++", KindInline},
		{"", KindInline},
		{"####### ", KindInline}, // seven hashes is not a heading
		{"js ", KindInline},
		{"#x ", KindInline}, // marker must be followed by whitespace only
	}

	for _, tt := range tests {
		if got := KindForPrefix(tt.prefix); got != tt.want {
			t.Errorf("KindForPrefix(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}

func TestLookupRule(t *testing.T) {
	t.Parallel()

	actions := []string{
		ActionH1, ActionH2, ActionH3,
		ActionBold, ActionItalic, ActionUnderline,
		ActionUList, ActionOList,
		ActionLink, ActionImage, ActionCode,
		ActionQuote, ActionNestedQuote, ActionHRule,
	}

	for _, tag := range actions {
		rule, ok := LookupRule(tag)
		if !ok {
			t.Errorf("LookupRule(%q) not found", tag)
			continue
		}
		if rule.Action != tag {
			t.Errorf("LookupRule(%q).Action = %q", tag, rule.Action)
		}
		if rule.Prefix == "" {
			t.Errorf("LookupRule(%q) has empty prefix", tag)
		}
	}

	if _, ok := LookupRule("export-pdf"); ok {
		t.Error("LookupRule(export-pdf) should have no insertion rule")
	}
	if _, ok := LookupRule("bogus"); ok {
		t.Error("LookupRule(bogus) should not resolve")
	}
}

func TestBuiltinRuleKinds(t *testing.T) {
	t.Parallel()

	blocks := []string{ActionH1, ActionH2, ActionH3, ActionUList, ActionOList, ActionQuote, ActionNestedQuote, ActionHRule}
	inlines := []string{ActionBold, ActionItalic, ActionUnderline, ActionLink, ActionImage, ActionCode}

	for _, tag := range blocks {
		rule, _ := LookupRule(tag)
		if rule.Kind != KindBlock {
			t.Errorf("rule %q Kind = %v, want block", tag, rule.Kind)
		}
		if !rule.EnsureNewline {
			t.Errorf("rule %q EnsureNewline = false, want true", tag)
		}
	}
	for _, tag := range inlines {
		rule, _ := LookupRule(tag)
		if rule.Kind != KindInline {
			t.Errorf("rule %q Kind = %v, want inline", tag, rule.Kind)
		}
	}
}

func TestBuiltinRule_HRuleKindExplicit(t *testing.T) {
	t.Parallel()

	// "---" defeats the prefix pattern, which is why Kind is stored
	// explicitly on built-ins instead of being re-derived.
	rule, _ := LookupRule(ActionHRule)
	if rule.Kind != KindBlock {
		t.Fatalf("hr rule Kind = %v, want block", rule.Kind)
	}
	if KindForPrefix(rule.Prefix) != KindInline {
		t.Fatal("pattern unexpectedly classifies --- as block; explicit Kind is redundant")
	}
}

func TestNewRule_DerivesKind(t *testing.T) {
	t.Parallel()

	if r := NewRule("chapter", "#### ", "\n", true); r.Kind != KindBlock {
		t.Errorf("NewRule heading prefix Kind = %v, want block", r.Kind)
	}
	if r := NewRule("emph", "~", "~", false); r.Kind != KindInline {
		t.Errorf("NewRule inline prefix Kind = %v, want inline", r.Kind)
	}
}

func TestActions(t *testing.T) {
	t.Parallel()

	tags := Actions()
	if len(tags) != 14 {
		t.Fatalf("Actions() returned %d tags, want 14", len(tags))
	}
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			t.Errorf("Actions() duplicate tag %q", tag)
		}
		seen[tag] = true
		if tag == ActionExportPDF {
			t.Error("Actions() includes export-pdf")
		}
	}
}
