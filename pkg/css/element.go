package css

import (
	"mouseparallax/pkg/html"
)

// ElementStyle parses the inline style attribute of n.
func ElementStyle(n *html.Node) *Style {
	attr, _ := n.GetAttribute("style")
	return ParseInlineStyle(attr)
}

// SetElementStyle writes s back as the inline style attribute of n. An
// empty style removes the attribute.
func SetElementStyle(n *html.Node, s *Style) {
	if s.Len() == 0 {
		n.RemoveAttribute("style")
		return
	}
	n.SetAttribute("style", s.String())
}

// GetProperty reads one inline declaration of n.
func GetProperty(n *html.Node, property string) (string, bool) {
	return ElementStyle(n).Get(property)
}

// SetProperty writes one inline declaration of n, keeping the others.
func SetProperty(n *html.Node, property, value string) {
	s := ElementStyle(n)
	s.Set(property, value)
	SetElementStyle(n, s)
}

// RemoveProperty deletes one inline declaration of n.
func RemoveProperty(n *html.Node, property string) {
	s := ElementStyle(n)
	s.Delete(property)
	SetElementStyle(n, s)
}
