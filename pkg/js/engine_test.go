package js

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"mouseparallax/pkg/css"
	"mouseparallax/pkg/event"
	"mouseparallax/pkg/html"
)

func parseHTML(t *testing.T, s string) *html.Document {
	t.Helper()
	doc, err := html.Parse(s)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return doc
}

func quietEngine() *Engine {
	return New(WithLogger(log.New(io.Discard)))
}

func TestGetElementById(t *testing.T) {
	doc := parseHTML(t, `<div id="foo">hello</div>`)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var el = document.getElementById("foo");
		if (el === null) throw new Error("element not found");
		if (el.id !== "foo") throw new Error("wrong id: " + el.id);
		if (el.tagName !== "DIV") throw new Error("wrong tagName: " + el.tagName);
		if (el !== document.getElementById("foo")) throw new Error("proxy identity lost");
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestGetElementByIdNotFound(t *testing.T) {
	doc := parseHTML(t, `<div>hello</div>`)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var el = document.getElementById("nonexistent");
		if (el !== null) throw new Error("expected null, got: " + el);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestGetElementsByTagName(t *testing.T) {
	doc := parseHTML(t, `<p>one</p><p>two</p><div>three</div>`)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var ps = document.getElementsByTagName("p");
		if (ps.length !== 2) throw new Error("expected 2 p tags, got: " + ps.length);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestGetElementsByClassName(t *testing.T) {
	doc := parseHTML(t, `<div class="a b">one</div><div class="a">two</div><div class="c">three</div>`)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var els = document.getElementsByClassName("a");
		if (els.length !== 2) throw new Error("expected 2 elements with class a, got: " + els.length);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestSetStyleCamelCase(t *testing.T) {
	doc := parseHTML(t, `<div id="box" style="color: red">box</div>`)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var el = document.getElementById("box");
		el.style.backgroundColor = "yellow";
		el.style.zIndex = "3";
		el.style.color = "";
		if (el.style.zIndex !== "3") throw new Error("zIndex: " + el.style.zIndex);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}

	node := doc.GetElementByID("box")
	if got := node.Attributes["style"]; got != "background-color: yellow; z-index: 3" {
		t.Errorf("style = %q", got)
	}
}

func TestDataset(t *testing.T) {
	doc := parseHTML(t, `<div id="layer" data-parallax-rule-intensity-x="0.5">layer</div>`)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var el = document.getElementById("layer");
		if (el.dataset.parallaxRuleIntensityX !== "0.5") throw new Error("read: " + el.dataset.parallaxRuleIntensityX);
		if (el.dataset.parallaxRuleSpeed !== undefined) throw new Error("absent key should be undefined");
		el.dataset.parallaxRuleSpeed = 300;
		delete el.dataset.parallaxRuleIntensityX;
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}

	node := doc.GetElementByID("layer")
	if v, _ := node.GetAttribute("data-parallax-rule-speed"); v != "300" {
		t.Errorf("data-parallax-rule-speed = %q", v)
	}
	if _, ok := node.GetAttribute("data-parallax-rule-intensity-x"); ok {
		t.Error("delete did not remove the attribute")
	}
}

func TestSetAttribute(t *testing.T) {
	doc := parseHTML(t, `<div id="target">text</div>`)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var el = document.getElementById("target");
		el.setAttribute("data-value", "42");
		if (el.getAttribute("data-value") !== "42") throw new Error("getAttribute mismatch");
		if (!el.hasAttribute("data-value")) throw new Error("hasAttribute false");
		el.className = "new-class";
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}

	node := doc.GetElementByID("target")
	if val, ok := node.Attributes["data-value"]; !ok || val != "42" {
		t.Errorf("data-value = %q, want %q", val, "42")
	}
	if node.Attributes["class"] != "new-class" {
		t.Errorf("class = %q, want %q", node.Attributes["class"], "new-class")
	}
}

func TestChildrenAndParent(t *testing.T) {
	doc := parseHTML(t, `<div id="parent"><span>a</span><span>b</span></div>`)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var parent = document.getElementById("parent");
		var kids = parent.children;
		if (kids.length !== 2) throw new Error("expected 2 children, got: " + kids.length);
		if (kids[0].tagName !== "SPAN") throw new Error("expected SPAN, got: " + kids[0].tagName);
		if (kids[1].parentElement !== parent) throw new Error("parentElement mismatch");
		if (parent.parentElement !== null) throw new Error("top-level parentElement should be null");

		var extra = document.createElement("div");
		parent.appendChild(extra);
		if (parent.children.length !== 3) throw new Error("appendChild failed");
		parent.removeChild(extra);
		if (parent.contains(extra)) throw new Error("removeChild failed");
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestBoundingClientRect(t *testing.T) {
	doc := parseHTML(t, `<div id="scene"></div>`)
	doc.GetElementByID("scene").Layout = &html.Rect{X: 10, Y: 20, Width: 300, Height: 150}
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var el = document.getElementById("scene");
		var r = el.getBoundingClientRect();
		if (r.left !== 10 || r.top !== 20 || r.right !== 310 || r.bottom !== 170) throw new Error("rect: " + JSON.stringify(r));
		if (el.offsetWidth !== 300 || el.offsetHeight !== 150) throw new Error("offset size");
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
}

func TestDocumentEvents(t *testing.T) {
	doc := parseHTML(t, `<div id="out"></div>`)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var out = document.getElementById("out");
		function onMove(e) { out.dataset.last = e.clientX + "," + e.clientY; }
		function onTouch(e) { out.dataset.touch = e.changedTouches[0].pageX + "," + e.touches.length; }
		document.addEventListener("mousemove", onMove);
		document.addEventListener("mousemove", onMove);
		document.addEventListener("touchmove", onTouch);
		document.dispatchEvent({type: "mousemove", clientX: 3, clientY: 4});
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
	out := doc.GetElementByID("out")
	if v, _ := out.Dataset("last"); v != "3,4" {
		t.Errorf("script dispatch: last = %q", v)
	}
	if n := doc.ListenerCount(event.MouseMove); n != 1 {
		t.Errorf("duplicate addEventListener registered %d listeners", n)
	}

	doc.DispatchEvent(event.Event{Type: event.TouchMove, Touches: []event.Touch{{PageX: 7}, {PageX: 9}}})
	if v, _ := out.Dataset("touch"); v != "7,2" {
		t.Errorf("Go dispatch: touch = %q", v)
	}
}

func TestRemoveEventListener(t *testing.T) {
	doc := parseHTML(t, `<div></div>`)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `
		var calls = 0;
		function onMove() { calls++; }
		document.addEventListener("mousemove", onMove);
		document.dispatchEvent({type: "mousemove"});
		document.removeEventListener("mousemove", onMove);
		document.dispatchEvent({type: "mousemove"});
		if (calls !== 1) throw new Error("calls: " + calls);
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
	if n := doc.ListenerCount(event.MouseMove); n != 0 {
		t.Errorf("%d listeners left", n)
	}
}

func TestListenerExceptionIsLogged(t *testing.T) {
	doc := parseHTML(t, `<div></div>`)
	var buf bytes.Buffer
	engine := New(WithLogger(log.New(&buf)))
	doc.Scripts = append(doc.Scripts, `
		document.addEventListener("mousemove", function() { throw new Error("boom"); });
	`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
	doc.DispatchEvent(event.Event{Type: event.MouseMove})
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("exception not logged: %q", buf.String())
	}
}

func TestConsoleUsesLogger(t *testing.T) {
	doc := parseHTML(t, `<p>text</p>`)
	var buf bytes.Buffer
	engine := New(WithLogger(log.New(&buf)))
	doc.Scripts = append(doc.Scripts, `console.log("hello", 42); console.warn("careful");`)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "hello 42") || !strings.Contains(out, "careful") {
		t.Errorf("console output = %q", out)
	}
}

func TestScriptError(t *testing.T) {
	doc := parseHTML(t, `<p>text</p>`)
	engine := quietEngine()
	doc.Scripts = append(doc.Scripts, `throw new Error("test error");`)
	err := engine.Execute(doc)
	if err == nil {
		t.Fatal("expected error from script")
	}
}

func TestScriptExtraction(t *testing.T) {
	doc := parseHTML(t, `<p>text</p><script>var x = 1;</script><script>var y = 2;</script>`)
	if len(doc.Scripts) != 2 {
		t.Fatalf("expected 2 scripts, got %d", len(doc.Scripts))
	}
	if doc.Scripts[0] != "var x = 1;" {
		t.Errorf("script 0 = %q", doc.Scripts[0])
	}
	if doc.Scripts[1] != "var y = 2;" {
		t.Errorf("script 1 = %q", doc.Scripts[1])
	}
}

func TestCamelToKebab(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"color", "color"},
		{"backgroundColor", "background-color"},
		{"zIndex", "z-index"},
		{"borderTopWidth", "border-top-width"},
		{"cssFloat", "float"},
	}
	for _, tt := range tests {
		got := camelToKebab(tt.input)
		if got != tt.want {
			t.Errorf("camelToKebab(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// containsDecl checks if an inline style string contains a particular property:value.
func containsDecl(style, prop, val string) bool {
	got, ok := css.ParseInlineStyle(style).Get(prop)
	return ok && got == val
}
