package parallax

import (
	"mouseparallax/pkg/html"
)

// DatasetRules reads an element's rules from its dataset, under prefix:
// with the default prefix, data-parallax-rule-intensity="0.5" sets both
// intensities and data-parallax-rule-intensity-x="2" then overrides X.
// Absent or non-numeric attributes are ignored; "0" is a valid value.
func DatasetRules(el *html.Node, prefix string) Rules {
	var r Rules
	if el == nil {
		return r
	}
	for _, f := range ruleFields {
		raw, ok := el.Dataset(prefix + f.name)
		if !ok {
			continue
		}
		if v, ok := parseNumber(raw); ok {
			f.apply(&r, v)
		}
	}
	return r
}
