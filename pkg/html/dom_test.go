package html

import (
	"reflect"
	"testing"
)

func TestRemoveChild(t *testing.T) {
	parent := NewElement("div")
	child := NewElement("span")
	parent.AddChild(child)

	if removed := parent.RemoveChild(child); removed != child {
		t.Fatal("RemoveChild should return the removed child")
	}
	if len(parent.Children) != 0 || child.Parent != nil {
		t.Error("child should be detached")
	}
	if parent.RemoveChild(child) != nil {
		t.Error("removing a non-child should return nil")
	}
}

func TestAddChildReparents(t *testing.T) {
	a, b := NewElement("div"), NewElement("div")
	child := NewElement("img")
	a.AddChild(child)
	b.AddChild(child)
	if len(a.Children) != 0 {
		t.Errorf("old parent still has %d children", len(a.Children))
	}
	if child.Parent != b {
		t.Error("child.Parent should be the new parent")
	}
}

func TestContains(t *testing.T) {
	root := NewElement("div")
	mid := NewElement("div")
	leaf := NewElement("span")
	root.AddChild(mid)
	mid.AddChild(leaf)

	if !root.Contains(leaf) || !root.Contains(root) {
		t.Error("root should contain itself and its descendants")
	}
	if leaf.Contains(root) {
		t.Error("leaf should not contain root")
	}
}

func TestDatasetAttributeMapping(t *testing.T) {
	tests := map[string]string{
		"parallaxRuleIntensity":  "data-parallax-rule-intensity",
		"parallaxRuleIntensityX": "data-parallax-rule-intensity-x",
		"speed":                  "data-speed",
	}
	for key, attr := range tests {
		if got := DatasetAttribute(key); got != attr {
			t.Errorf("DatasetAttribute(%q) = %q, want %q", key, got, attr)
		}
	}
}

func TestDatasetRoundTrip(t *testing.T) {
	el := NewElement("div")
	el.SetDataset("parallaxRuleLimitY", "20")
	el.SetAttribute("class", "layer")

	if v, ok := el.Dataset("parallaxRuleLimitY"); !ok || v != "20" {
		t.Errorf("Dataset = %q, %v", v, ok)
	}
	if got := el.Attributes["data-parallax-rule-limit-y"]; got != "20" {
		t.Errorf("attribute = %q, want 20", got)
	}
	if keys := el.DatasetKeys(); !reflect.DeepEqual(keys, []string{"parallaxRuleLimitY"}) {
		t.Errorf("DatasetKeys = %v", keys)
	}
}

func TestParentElementStopsAtDocument(t *testing.T) {
	doc, err := Parse(`<div id="scene"><img id="layer"></div>`)
	if err != nil {
		t.Fatal(err)
	}
	scene := doc.GetElementByID("scene")
	layer := doc.GetElementByID("layer")
	if layer.ParentElement() != scene {
		t.Error("layer.ParentElement() should be scene")
	}
	if scene.ParentElement() != nil {
		t.Error("top-level element should have no parent element")
	}
}

func TestBoundingClientRect(t *testing.T) {
	el := NewElement("div")
	if el.OffsetWidth() != 0 || el.OffsetHeight() != 0 {
		t.Error("un-laid-out element should report zero size")
	}
	el.Layout = &Rect{X: 10, Y: 20, Width: 300, Height: 200}
	r := el.BoundingClientRect()
	if r.Left() != 10 || r.Top() != 20 || r.Right() != 310 || r.Bottom() != 220 {
		t.Errorf("unexpected rect edges: %+v", r)
	}
	if el.OffsetWidth() != 300 || el.OffsetHeight() != 200 {
		t.Errorf("offset size = %vx%v", el.OffsetWidth(), el.OffsetHeight())
	}
}

func TestQueries(t *testing.T) {
	doc, err := Parse(`<body><div class="layer a"></div><p class="layer"></p><div class="b"></div></body>`)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(doc.GetElementsByClassName("layer")); n != 2 {
		t.Errorf("GetElementsByClassName = %d, want 2", n)
	}
	if n := len(doc.GetElementsByTagName("div")); n != 2 {
		t.Errorf("GetElementsByTagName = %d, want 2", n)
	}
	if doc.Body() == nil {
		t.Error("expected body")
	}
	if doc.GetElementByID("missing") != nil {
		t.Error("expected nil for missing id")
	}
}

func TestSerializeOuter(t *testing.T) {
	el := NewElement("div")
	el.SetAttribute("style", `left: 75%; top: 50%`)
	el.SetAttribute("id", "a&b")
	img := NewElement("img")
	el.AddChild(img)
	el.AppendText("<hi>")

	want := `<div id="a&amp;b" style="left: 75%; top: 50%"><img>&lt;hi&gt;</div>`
	if got := el.SerializeOuter(); got != want {
		t.Errorf("SerializeOuter = %q, want %q", got, want)
	}
}
