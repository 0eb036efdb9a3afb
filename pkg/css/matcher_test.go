package css

import (
	"testing"

	"mouseparallax/pkg/html"
)

func matchDoc(t *testing.T) *html.Document {
	t.Helper()
	doc, err := html.Parse(`<div id="scene" class="stage"><div class="layer far" data-depth="1"><span id="label"></span></div></div>`)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func selector(t *testing.T, raw string) Selector {
	t.Helper()
	sel, ok := parseSelector(raw)
	if !ok {
		t.Fatalf("parseSelector(%q) failed", raw)
	}
	return sel
}

func TestMatchesSelector(t *testing.T) {
	doc := matchDoc(t)
	scene := doc.GetElementByID("scene")
	layer := doc.GetElementsByClassName("layer")[0]
	label := doc.GetElementByID("label")

	tests := []struct {
		selector string
		node     *html.Node
		want     bool
	}{
		{"div", scene, true},
		{"p", scene, false},
		{"*", label, true},
		{"#scene", scene, true},
		{"#scene", layer, false},
		{".layer", layer, true},
		{".layer.far", layer, true},
		{".layer.near", layer, false},
		{"div.stage#scene", scene, true},
		{"[data-depth]", layer, true},
		{"[data-speed]", layer, false},
		{"#scene span", label, true},
		{"#scene > span", label, false},
		{"#scene > .layer > span", label, true},
		{".stage .far", layer, true},
		{"span .layer", layer, false},
		{"html > #scene", scene, false},
	}
	for _, tt := range tests {
		if got := MatchesSelector(tt.node, selector(t, tt.selector)); got != tt.want {
			t.Errorf("%q on <%s id=%q>: got %v, want %v", tt.selector, tt.node.TagName, tt.node.ID(), got, tt.want)
		}
	}
}

func TestMatchesSelector_TextNode(t *testing.T) {
	text := &html.Node{Type: html.TextNode, Text: "x"}
	if MatchesSelector(text, selector(t, "*")) {
		t.Error("text nodes never match")
	}
}

func TestFindMatchingRules(t *testing.T) {
	doc := matchDoc(t)
	sheet := ParseStylesheet(`.layer { color: red } #label { color: blue } div { opacity: 1 }`)
	rules := FindMatchingRules(doc.GetElementsByClassName("layer")[0], sheet)
	if len(rules) != 2 || rules[0].Selector.Raw != ".layer" || rules[1].Selector.Raw != "div" {
		t.Errorf("matches = %+v", rules)
	}
}
