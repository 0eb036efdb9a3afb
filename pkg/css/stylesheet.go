package css

import (
	"strings"
)

// Combinator joins two compound selectors.
type Combinator int

const (
	DescendantCombinator Combinator = iota // A B
	ChildCombinator                        // A > B
)

// SelectorPart is one compound selector: tag, id, classes and attribute
// presence tests that must all hold for the same element.
type SelectorPart struct {
	Element    string // "" or "*" matches any tag
	ID         string
	Classes    []string
	Attributes []string // [data-foo] presence tests
}

// Selector is a complex selector read right to left: Parts[len-1] is the
// subject, Combinators[i] joins Parts[i] and Parts[i+1].
type Selector struct {
	Raw         string
	Parts       []SelectorPart
	Combinators []Combinator
	Specificity int
}

// Rule is one selector with its declarations. Order is the rule's position
// in the document, used to break specificity ties.
type Rule struct {
	Selector     Selector
	Declarations *Style
	Order        int
}

// Stylesheet is a parsed <style> block.
type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet parses rule sets. Selector lists are split into one rule
// per selector. Malformed rules and at-rules are skipped.
func ParseStylesheet(css string) *Stylesheet {
	sheet := &Stylesheet{}
	for _, ruleStr := range splitRules(stripComments(css)) {
		brace := strings.Index(ruleStr, "{")
		if brace == -1 {
			continue
		}
		prelude := strings.TrimSpace(ruleStr[:brace])
		if prelude == "" || strings.HasPrefix(prelude, "@") {
			continue
		}
		body := strings.TrimSuffix(ruleStr[brace+1:], "}")
		decls := ParseInlineStyle(body)

		for _, raw := range strings.Split(prelude, ",") {
			sel, ok := parseSelector(raw)
			if !ok {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{
				Selector:     sel,
				Declarations: decls,
				Order:        len(sheet.Rules),
			})
		}
	}
	return sheet
}

func stripComments(css string) string {
	var sb strings.Builder
	for {
		start := strings.Index(css, "/*")
		if start == -1 {
			sb.WriteString(css)
			return sb.String()
		}
		sb.WriteString(css[:start])
		end := strings.Index(css[start+2:], "*/")
		if end == -1 {
			return sb.String()
		}
		css = css[start+2+end+2:]
	}
}

// splitRules splits CSS into top-level "prelude { body }" chunks. Nested
// blocks (at-rule bodies) stay inside their chunk.
func splitRules(css string) []string {
	rules := make([]string, 0)
	depth := 0
	start := 0

	for i, ch := range css {
		if ch == '{' {
			depth++
		} else if ch == '}' {
			depth--
			if depth == 0 {
				ruleStr := css[start : i+1]
				if strings.TrimSpace(ruleStr) != "" {
					rules = append(rules, ruleStr)
				}
				start = i + 1
			}
			if depth < 0 {
				depth = 0
				start = i + 1
			}
		}
	}

	return rules
}

// parseSelector reads a complex selector made of compound parts joined by
// whitespace or ">". Specificity counts ids as 100, classes and attributes
// as 10 and tags as 1.
func parseSelector(raw string) (Selector, bool) {
	raw = strings.TrimSpace(raw)
	sel := Selector{Raw: raw}
	if raw == "" {
		return sel, false
	}

	fields := strings.Fields(strings.ReplaceAll(raw, ">", " > "))
	pending := DescendantCombinator
	for _, f := range fields {
		if f == ">" {
			if len(sel.Parts) == 0 {
				return sel, false
			}
			pending = ChildCombinator
			continue
		}
		part, ok := parseCompound(f)
		if !ok {
			return sel, false
		}
		if len(sel.Parts) > 0 {
			sel.Combinators = append(sel.Combinators, pending)
		}
		pending = DescendantCombinator
		sel.Parts = append(sel.Parts, part)
		sel.Specificity += part.specificity()
	}
	if len(sel.Parts) == 0 || len(sel.Combinators) != len(sel.Parts)-1 {
		return sel, false
	}
	return sel, true
}

func parseCompound(s string) (SelectorPart, bool) {
	var part SelectorPart
	i := 0
	name := func() string {
		start := i
		for i < len(s) && isNameChar(s[i]) {
			i++
		}
		return s[start:i]
	}

	if i < len(s) && s[i] == '*' {
		part.Element = "*"
		i++
	} else {
		part.Element = strings.ToLower(name())
	}

	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			if part.ID = name(); part.ID == "" {
				return part, false
			}
		case '.':
			i++
			cls := name()
			if cls == "" {
				return part, false
			}
			part.Classes = append(part.Classes, cls)
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end == -1 {
				return part, false
			}
			attr := strings.TrimSpace(strings.ToLower(s[i+1 : i+end]))
			if attr == "" {
				return part, false
			}
			part.Attributes = append(part.Attributes, attr)
			i += end + 1
		default:
			return part, false
		}
	}
	return part, true
}

func isNameChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p SelectorPart) specificity() int {
	n := 10 * (len(p.Classes) + len(p.Attributes))
	if p.ID != "" {
		n += 100
	}
	if p.Element != "" && p.Element != "*" {
		n++
	}
	return n
}
