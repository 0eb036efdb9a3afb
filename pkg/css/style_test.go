package css

import (
	"testing"

	"mouseparallax/pkg/html"
)

func TestParseInlineStyle_SingleProperty(t *testing.T) {
	style := ParseInlineStyle("color: red")
	value, ok := style.Get("color")
	if !ok || value != "red" {
		t.Error("expected color='red'")
	}
}

func TestParseInlineStyle_PreservesOrder(t *testing.T) {
	style := ParseInlineStyle("position: absolute; LEFT: 50%;; top: 50% ; broken; transform: translate(-50%, -50%)")
	want := "position: absolute; left: 50%; top: 50%; transform: translate(-50%, -50%)"
	if got := style.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStyleSetKeepsPosition(t *testing.T) {
	style := ParseInlineStyle("left: 50%; top: 50%")
	style.Set("left", "75%")
	style.Set("z-index", "3")
	if got := style.String(); got != "left: 75%; top: 50%; z-index: 3" {
		t.Errorf("String() = %q", got)
	}
	style.Delete("top")
	style.Delete("missing")
	if got := style.String(); got != "left: 75%; z-index: 3" {
		t.Errorf("after delete String() = %q", got)
	}
}

func TestGetLength_PixelValue(t *testing.T) {
	style := ParseInlineStyle("width: 100px")
	width, ok := style.GetLength("width")
	if !ok || width != 100.0 {
		t.Errorf("expected width=100.0, got %f", width)
	}
}

func TestParseLengthOrPercent(t *testing.T) {
	tests := []struct {
		in   string
		want Length
		ok   bool
	}{
		{"12px", Length{Value: 12}, true},
		{"12", Length{Value: 12}, true},
		{"37.5%", Length{Value: 37.5, Percent: true}, true},
		{" -50% ", Length{Value: -50, Percent: true}, true},
		{"auto", Length{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseLengthOrPercent(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseLengthOrPercent(%q) = %+v, %v; want %+v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if v := (Length{Value: 25, Percent: true}).Resolve(800); v != 200 {
		t.Errorf("Resolve = %v, want 200", v)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(75); got != "75%" {
		t.Errorf("Percent(75) = %q", got)
	}
	if got := Percent(52.5); got != "52.5%" {
		t.Errorf("Percent(52.5) = %q", got)
	}
}

func TestGetTranslate(t *testing.T) {
	style := ParseInlineStyle("transform: translate(-50%, -50%)")
	x, y, ok := style.GetTranslate()
	if !ok {
		t.Fatal("expected translate to parse")
	}
	if x != (Length{Value: -50, Percent: true}) || y != (Length{Value: -50, Percent: true}) {
		t.Errorf("translate = %+v, %+v", x, y)
	}
	if _, _, ok := ParseInlineStyle("transform: rotate(3deg)").GetTranslate(); ok {
		t.Error("rotate should not parse as translate")
	}
}

func TestGetZIndex(t *testing.T) {
	if z, ok := ParseInlineStyle("z-index: -2").GetZIndex(); !ok || z != -2 {
		t.Errorf("z-index = %d, %v", z, ok)
	}
	if _, ok := ParseInlineStyle("z-index: auto").GetZIndex(); ok {
		t.Error("auto should not parse as an integer z-index")
	}
}

func TestParseColor(t *testing.T) {
	tests := map[string]Color{
		"red":                {255, 0, 0, 1},
		"#0f0":               {0, 255, 0, 1},
		"#336699":            {0x33, 0x66, 0x99, 1},
		"rgb(1, 2, 3)":       {1, 2, 3, 1},
		"rgba(1, 2, 3, 0.5)": {1, 2, 3, 0.5},
		"transparent":        {0, 0, 0, 0},
	}
	for in, expected := range tests {
		color, ok := ParseColor(in)
		if !ok || color != expected {
			t.Errorf("color %s: expected %+v, got %+v", in, expected, color)
		}
	}
	if _, ok := ParseColor("#12"); ok {
		t.Error("short hex should not parse")
	}
}

func TestElementStyleHelpers(t *testing.T) {
	el := html.NewElement("div")
	SetProperty(el, "left", "50%")
	SetProperty(el, "top", "50%")
	SetProperty(el, "left", "60%")
	if got := el.Attributes["style"]; got != "left: 60%; top: 50%" {
		t.Errorf("style attribute = %q", got)
	}
	if v, ok := GetProperty(el, "top"); !ok || v != "50%" {
		t.Errorf("GetProperty(top) = %q, %v", v, ok)
	}
	RemoveProperty(el, "left")
	RemoveProperty(el, "top")
	if _, ok := el.GetAttribute("style"); ok {
		t.Error("empty style should remove the attribute")
	}
}
