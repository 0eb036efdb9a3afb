package css

import "testing"

func TestParseStylesheet_SingleRule(t *testing.T) {
	stylesheet := ParseStylesheet(`div { color: red; }`)

	if len(stylesheet.Rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(stylesheet.Rules))
	}

	rule := stylesheet.Rules[0]
	if len(rule.Selector.Parts) != 1 || rule.Selector.Parts[0].Element != "div" {
		t.Errorf("expected selector 'div', got %+v", rule.Selector.Parts)
	}
	if color, _ := rule.Declarations.Get("color"); color != "red" {
		t.Errorf("expected color='red', got '%s'", color)
	}
}

func TestParseStylesheet_MultipleRules(t *testing.T) {
	stylesheet := ParseStylesheet(`
		#scene { width: 400px; }
		.layer { background-color: blue; }
		div.layer[data-parallax-rule-speed] { opacity: 0.5; }
	`)

	if len(stylesheet.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(stylesheet.Rules))
	}

	expected := []struct {
		raw         string
		specificity int
	}{
		{"#scene", 100},
		{".layer", 10},
		{"div.layer[data-parallax-rule-speed]", 21},
	}
	for i, exp := range expected {
		sel := stylesheet.Rules[i].Selector
		if sel.Raw != exp.raw || sel.Specificity != exp.specificity {
			t.Errorf("rule %d: got %q (%d), want %q (%d)", i, sel.Raw, sel.Specificity, exp.raw, exp.specificity)
		}
		if stylesheet.Rules[i].Order != i {
			t.Errorf("rule %d: order %d", i, stylesheet.Rules[i].Order)
		}
	}
}

func TestParseStylesheet_SelectorList(t *testing.T) {
	stylesheet := ParseStylesheet(`h1, .title { color: red }`)
	if len(stylesheet.Rules) != 2 {
		t.Fatalf("expected one rule per selector, got %d", len(stylesheet.Rules))
	}
	if stylesheet.Rules[1].Selector.Parts[0].Classes[0] != "title" {
		t.Errorf("second selector = %+v", stylesheet.Rules[1].Selector)
	}
}

func TestParseStylesheet_Combinators(t *testing.T) {
	stylesheet := ParseStylesheet(`#scene > .layer span { color: red }`)
	sel := stylesheet.Rules[0].Selector
	if len(sel.Parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(sel.Parts))
	}
	if sel.Combinators[0] != ChildCombinator || sel.Combinators[1] != DescendantCombinator {
		t.Errorf("combinators = %v", sel.Combinators)
	}
	if sel.Specificity != 111 {
		t.Errorf("specificity = %d, want 111", sel.Specificity)
	}
}

func TestParseStylesheet_CommentsAndRecovery(t *testing.T) {
	stylesheet := ParseStylesheet(`
		/* header */
		a:hover { color: red }
		@media (max-width: 100px) { div { color: blue } }
		> p { color: green }
		p { /* inside */ color: black }
		}
		span { color: white }
	`)
	if len(stylesheet.Rules) != 2 {
		t.Fatalf("expected 2 usable rules, got %d: %+v", len(stylesheet.Rules), stylesheet.Rules)
	}
	if got := stylesheet.Rules[0].Declarations.String(); got != "color: black" {
		t.Errorf("p declarations = %q", got)
	}
	if stylesheet.Rules[1].Selector.Raw != "span" {
		t.Errorf("recovery after stray brace failed: %q", stylesheet.Rules[1].Selector.Raw)
	}
}

func TestParseStylesheet_Empty(t *testing.T) {
	if n := len(ParseStylesheet("  ").Rules); n != 0 {
		t.Errorf("expected no rules, got %d", n)
	}
}
