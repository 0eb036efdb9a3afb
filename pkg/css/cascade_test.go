package css

import (
	"testing"

	"mouseparallax/pkg/html"
)

func TestComputeStyle_ElementSelector(t *testing.T) {
	stylesheets := []*Stylesheet{ParseStylesheet(`div { color: red; }`)}

	node := &html.Node{
		Type:    html.ElementNode,
		TagName: "div",
	}

	style := ComputeStyle(node, stylesheets)

	if color, ok := style.Get("color"); !ok || color != "red" {
		t.Errorf("expected color='red', got '%s'", color)
	}
}

func TestComputeStyle_SpecificityOverride(t *testing.T) {
	stylesheets := []*Stylesheet{ParseStylesheet(`
		.highlight { color: blue; }
		div { color: red; }
	`)}

	node := &html.Node{
		Type:    html.ElementNode,
		TagName: "div",
		Attributes: map[string]string{
			"class": "highlight",
		},
	}

	style := ComputeStyle(node, stylesheets)

	if color, _ := style.Get("color"); color != "blue" {
		t.Errorf("class should beat element selector, got '%s'", color)
	}
}

func TestComputeStyle_SourceOrder(t *testing.T) {
	stylesheets := []*Stylesheet{
		ParseStylesheet(`.a { color: red } .b { color: green }`),
		ParseStylesheet(`.a { width: 10px }`),
		ParseStylesheet(`.b { width: 20px }`),
	}
	node := &html.Node{
		Type:       html.ElementNode,
		TagName:    "div",
		Attributes: map[string]string{"class": "b a"},
	}

	style := ComputeStyle(node, stylesheets)

	if color, _ := style.Get("color"); color != "green" {
		t.Errorf("later rule should win a tie, got %q", color)
	}
	if width, _ := style.Get("width"); width != "20px" {
		t.Errorf("later sheet should win a tie, got %q", width)
	}
}

func TestComputeStyle_InlineWins(t *testing.T) {
	stylesheets := []*Stylesheet{ParseStylesheet(`#x { left: 10%; background-color: red }`)}
	node := &html.Node{
		Type:    html.ElementNode,
		TagName: "div",
		Attributes: map[string]string{
			"id":    "x",
			"style": "left: 62.5%",
		},
	}

	style := ComputeStyle(node, stylesheets)

	if left, _ := style.Get("left"); left != "62.5%" {
		t.Errorf("inline left should win, got %q", left)
	}
	if bg, _ := style.Get("background-color"); bg != "red" {
		t.Errorf("sheet background lost, got %q", bg)
	}
}

func TestParseStylesheets(t *testing.T) {
	doc, err := html.Parse(`<style>div { color: red }</style><div></div><style>p { color: blue }</style>`)
	if err != nil {
		t.Fatal(err)
	}
	sheets := ParseStylesheets(doc)
	if len(sheets) != 2 || len(sheets[1].Rules) != 1 {
		t.Errorf("sheets = %+v", sheets)
	}
}
