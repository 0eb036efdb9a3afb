package css

import (
	"mouseparallax/pkg/html"
)

// MatchesSelector reports whether node is the subject of selector.
func MatchesSelector(node *html.Node, selector Selector) bool {
	if node.Type != html.ElementNode || len(selector.Parts) == 0 {
		return false
	}
	// Start matching from the rightmost part (the target element)
	return matchesCompoundSelector(node, selector, len(selector.Parts)-1)
}

// matchesCompoundSelector checks if the node matches the selector at the given part index
// and all ancestor requirements
func matchesCompoundSelector(node *html.Node, selector Selector, partIndex int) bool {
	if !matchesSelectorPart(node, selector.Parts[partIndex]) {
		return false
	}
	if partIndex == 0 {
		return true
	}

	prevPartIndex := partIndex - 1
	switch selector.Combinators[prevPartIndex] {
	case DescendantCombinator:
		return matchesAncestor(node, selector, prevPartIndex)
	case ChildCombinator:
		// Match direct parent only (skip synthetic document node)
		if parent := node.ParentElement(); parent != nil {
			return matchesCompoundSelector(parent, selector, prevPartIndex)
		}
	}
	return false
}

func matchesSelectorPart(node *html.Node, part SelectorPart) bool {
	if part.Element != "" && part.Element != "*" && node.TagName != part.Element {
		return false
	}
	if part.ID != "" && node.ID() != part.ID {
		return false
	}
	for _, cls := range part.Classes {
		if !node.HasClass(cls) {
			return false
		}
	}
	for _, attr := range part.Attributes {
		if _, ok := node.GetAttribute(attr); !ok {
			return false
		}
	}
	return true
}

func matchesAncestor(node *html.Node, selector Selector, partIndex int) bool {
	for ancestor := node.ParentElement(); ancestor != nil; ancestor = ancestor.ParentElement() {
		if matchesCompoundSelector(ancestor, selector, partIndex) {
			return true
		}
	}
	return false
}

// FindMatchingRules returns the rules of stylesheet whose selector matches node.
func FindMatchingRules(node *html.Node, stylesheet *Stylesheet) []Rule {
	var matches []Rule
	for _, rule := range stylesheet.Rules {
		if MatchesSelector(node, rule.Selector) {
			matches = append(matches, rule)
		}
	}
	return matches
}
