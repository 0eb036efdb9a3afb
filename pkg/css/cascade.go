package css

import (
	"sort"

	"mouseparallax/pkg/html"
)

// ParseStylesheets parses every <style> block of doc, in document order.
func ParseStylesheets(doc *html.Document) []*Stylesheet {
	sheets := make([]*Stylesheet, 0, len(doc.Stylesheets))
	for _, text := range doc.Stylesheets {
		sheets = append(sheets, ParseStylesheet(text))
	}
	return sheets
}

// ComputeStyle computes the final style for a node by applying the cascade:
// matching rules by ascending specificity, then source order, then the
// inline style attribute on top.
func ComputeStyle(node *html.Node, stylesheets []*Stylesheet) *Style {
	type ranked struct {
		rule  Rule
		sheet int
	}
	var matched []ranked
	for i, sheet := range stylesheets {
		for _, rule := range FindMatchingRules(node, sheet) {
			matched = append(matched, ranked{rule, i})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.rule.Selector.Specificity != b.rule.Selector.Specificity {
			return a.rule.Selector.Specificity < b.rule.Selector.Specificity
		}
		if a.sheet != b.sheet {
			return a.sheet < b.sheet
		}
		return a.rule.Order < b.rule.Order
	})

	finalStyle := NewStyle()
	for _, m := range matched {
		for _, property := range m.rule.Declarations.Properties() {
			value, _ := m.rule.Declarations.Get(property)
			finalStyle.Set(property, value)
		}
	}

	// Inline styles have highest specificity
	inline := ElementStyle(node)
	for _, property := range inline.Properties() {
		value, _ := inline.Get(property)
		finalStyle.Set(property, value)
	}
	return finalStyle
}
