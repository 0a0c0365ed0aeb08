package markpad

import "testing"

func TestInserter_Insert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		buf         TextBuffer
		rule        Rule
		wantContent string
		wantCaret   int
	}{
		{
			name:        "inline wrap at end of content with empty selection",
			buf:         TextBuffer{Content: "hello", SelStart: 5, SelEnd: 5},
			rule:        Rule{Action: "bold", Prefix: "js ", Suffix: " sj", Kind: KindInline},
			wantContent: "hellojs  sj",
			wantCaret:   11,
		},
		{
			name:        "block rule in empty document adds no leading newline",
			buf:         TextBuffer{Content: "", SelStart: 0, SelEnd: 0},
			rule:        Rule{Action: "heading", Prefix: "jf ", Suffix: "\n", Kind: KindBlock, EnsureNewline: true},
			wantContent: "jf \n",
			wantCaret:   3,
		},
		{
			name:        "inline wrap around selection",
			buf:         TextBuffer{Content: "hello world", SelStart: 6, SelEnd: 11},
			rule:        Rule{Action: ActionBold, Prefix: "**", Suffix: "**", Kind: KindInline},
			wantContent: "hello **world**",
			wantCaret:   15,
		},
		{
			name:        "block rule mid-line inserts leading newline",
			buf:         TextBuffer{Content: "intro", SelStart: 5, SelEnd: 5},
			rule:        Rule{Action: ActionH1, Prefix: "# ", Suffix: "\n", Kind: KindBlock, EnsureNewline: true},
			wantContent: "intro\n# \n",
			wantCaret:   8,
		},
		{
			name:        "block rule after newline adds no duplicate",
			buf:         TextBuffer{Content: "intro\n", SelStart: 6, SelEnd: 6},
			rule:        Rule{Action: ActionH1, Prefix: "# ", Suffix: "\n", Kind: KindBlock, EnsureNewline: true},
			wantContent: "intro\n# \n",
			wantCaret:   8,
		},
		{
			name:        "block rule appends trailing newline when suffix lacks one",
			buf:         TextBuffer{Content: "", SelStart: 0, SelEnd: 0},
			rule:        Rule{Action: ActionUList, Prefix: "- ", Suffix: "", Kind: KindBlock, EnsureNewline: true},
			wantContent: "- \n",
			wantCaret:   2,
		},
		{
			name:        "block rule wraps selection",
			buf:         TextBuffer{Content: "a\ntitle\nb", SelStart: 2, SelEnd: 7},
			rule:        Rule{Action: ActionH2, Prefix: "## ", Suffix: "\n", Kind: KindBlock, EnsureNewline: true},
			wantContent: "a\n## title\n\nb",
			wantCaret:   10,
		},
		{
			name:        "inline rule never normalizes newlines",
			buf:         TextBuffer{Content: "mid", SelStart: 1, SelEnd: 1},
			rule:        Rule{Action: ActionCode, Prefix: "`", Suffix: "`", Kind: KindInline},
			wantContent: "m``id",
			wantCaret:   3,
		},
		{
			name:        "hostile selection is clamped before wrapping",
			buf:         TextBuffer{Content: "abc", SelStart: -4, SelEnd: 99},
			rule:        Rule{Action: ActionItalic, Prefix: "*", Suffix: "*", Kind: KindInline},
			wantContent: "*abc*",
			wantCaret:   5,
		},
		{
			name:        "reversed selection wraps the same text",
			buf:         TextBuffer{Content: "hello", SelStart: 5, SelEnd: 0},
			rule:        Rule{Action: ActionBold, Prefix: "**", Suffix: "**", Kind: KindInline},
			wantContent: "**hello**",
			wantCaret:   9,
		},
	}

	ins := NewInserter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, caret := ins.Insert(tt.buf, tt.rule)
			if got.Content != tt.wantContent {
				t.Errorf("content = %q, want %q", got.Content, tt.wantContent)
			}
			if caret != tt.wantCaret {
				t.Errorf("caret = %d, want %d", caret, tt.wantCaret)
			}
			if got.SelStart != caret || got.SelEnd != caret {
				t.Errorf("result selection = [%d,%d], want collapsed at %d", got.SelStart, got.SelEnd, caret)
			}
			if caret > len(got.Content) {
				t.Errorf("caret %d past content length %d", caret, len(got.Content))
			}
		})
	}
}

func TestInserter_LengthGrowth(t *testing.T) {
	t.Parallel()

	// New length is always old length plus inserted markup.
	tests := []struct {
		buf  TextBuffer
		rule Rule
	}{
		{TextBuffer{Content: "hello world", SelStart: 0, SelEnd: 5}, Rule{Prefix: "**", Suffix: "**", Kind: KindInline}},
		{TextBuffer{Content: "x", SelStart: 1, SelEnd: 1}, Rule{Prefix: "# ", Suffix: "\n", Kind: KindBlock, EnsureNewline: true}},
		{TextBuffer{Content: "", SelStart: 0, SelEnd: 0}, Rule{Prefix: "[", Suffix: "](url)", Kind: KindInline}},
	}

	for _, tt := range tests {
		before := tt.buf.Clamped()
		got, _ := Insert(tt.buf, tt.rule)
		grew := len(got.Content) - len(before.Content)
		markup := len(tt.rule.Prefix) + len(tt.rule.Suffix)
		// Block normalization may add at most two newlines beyond the markup.
		if grew < markup || grew > markup+2 {
			t.Errorf("Insert grew content by %d, markup is %d bytes", grew, markup)
		}
	}
}

func TestInserter_CaretBetweenMarkers(t *testing.T) {
	t.Parallel()

	rule := Rule{Action: ActionBold, Prefix: "**", Suffix: "**", Kind: KindInline}

	between := NewInserter(WithCaretBetweenMarkers())
	got, caret := between.Insert(TextBuffer{Content: "hello", SelStart: 5, SelEnd: 5}, rule)
	if got.Content != "hello****" {
		t.Fatalf("content = %q, want %q", got.Content, "hello****")
	}
	if caret != 7 {
		t.Errorf("between-markers caret = %d, want 7", caret)
	}

	// A non-empty selection lands after the suffix under either policy.
	got, caret = between.Insert(TextBuffer{Content: "hello", SelStart: 0, SelEnd: 5}, rule)
	if got.Content != "**hello**" || caret != 9 {
		t.Errorf("selection wrap = %q caret %d, want %q caret 9", got.Content, caret, "**hello**")
	}
}

func TestInsert_BuiltinBoldRoundTrip(t *testing.T) {
	t.Parallel()

	rule, _ := LookupRule(ActionBold)
	got, caret := Insert(NewTextBuffer("hi").WithSelection(0, 2), rule)
	if got.Content != "**hi**" || caret != 6 {
		t.Errorf("Insert = %q caret %d, want %q caret 6", got.Content, caret, "**hi**")
	}
}
