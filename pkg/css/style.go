package css

import (
	"strconv"
	"strings"
)

// Style is an ordered set of declarations, as found in an inline style
// attribute. Declaration order is preserved so that serialized styles are
// stable across edits.
type Style struct {
	names  []string
	values map[string]string
}

func NewStyle() *Style {
	return &Style{values: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	val, ok := s.values[property]
	return val, ok
}

// Set assigns a declaration. New properties are appended; existing ones
// keep their position.
func (s *Style) Set(property, value string) {
	if _, ok := s.values[property]; !ok {
		s.names = append(s.names, property)
	}
	s.values[property] = value
}

func (s *Style) Delete(property string) {
	if _, ok := s.values[property]; !ok {
		return
	}
	delete(s.values, property)
	for i, name := range s.names {
		if name == property {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// Properties returns the declared property names in order.
func (s *Style) Properties() []string {
	return append([]string(nil), s.names...)
}

func (s *Style) Len() int { return len(s.names) }

// String serializes the declarations as "prop: value; prop: value".
func (s *Style) String() string {
	parts := make([]string, 0, len(s.names))
	for _, name := range s.names {
		parts = append(parts, name+": "+s.values[name])
	}
	return strings.Join(parts, "; ")
}

func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// ParseLength parses a length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// Length is a pixel or percentage length.
type Length struct {
	Value   float64
	Percent bool
}

// ParseLengthOrPercent parses "12px", "12" or "37.5%".
func ParseLengthOrPercent(val string) (Length, bool) {
	val = strings.TrimSpace(val)
	if p, ok := strings.CutSuffix(val, "%"); ok {
		num, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Length{}, false
		}
		return Length{Value: num, Percent: true}, true
	}
	num, ok := ParseLength(val)
	return Length{Value: num}, ok
}

// Resolve converts l to pixels; percentages are taken of base.
func (l Length) Resolve(base float64) float64 {
	if l.Percent {
		return l.Value * base / 100
	}
	return l.Value
}

// Percent formats v as a CSS percentage with the shortest exact decimal.
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// GetLengthOrPercent looks up property and parses it as a length.
func (s *Style) GetLengthOrPercent(property string) (Length, bool) {
	val, ok := s.Get(property)
	if !ok {
		return Length{}, false
	}
	return ParseLengthOrPercent(val)
}

// Position type constants
type PositionType string

const (
	PositionStatic   PositionType = "static"
	PositionRelative PositionType = "relative"
	PositionAbsolute PositionType = "absolute"
	PositionFixed    PositionType = "fixed"
)

// GetPosition returns the position type (default: static)
func (s *Style) GetPosition() PositionType {
	if pos, ok := s.Get("position"); ok {
		switch pos {
		case "relative":
			return PositionRelative
		case "absolute":
			return PositionAbsolute
		case "fixed":
			return PositionFixed
		}
	}
	return PositionStatic
}

// GetZIndex returns the z-index and whether it was set to an integer.
func (s *Style) GetZIndex() (int, bool) {
	zindex, ok := s.Get("z-index")
	if !ok {
		return 0, false
	}
	z, err := strconv.Atoi(strings.TrimSpace(zindex))
	if err != nil {
		return 0, false
	}
	return z, true
}

// GetTranslate extracts the offsets of a "translate(x, y)" transform.
// Only a single translate function is understood.
func (s *Style) GetTranslate() (x, y Length, ok bool) {
	val, found := s.Get("transform")
	if !found {
		return Length{}, Length{}, false
	}
	args, found := strings.CutPrefix(strings.TrimSpace(val), "translate(")
	if !found {
		return Length{}, Length{}, false
	}
	args, found = strings.CutSuffix(args, ")")
	if !found {
		return Length{}, Length{}, false
	}
	parts := strings.Split(args, ",")
	if x, ok = ParseLengthOrPercent(parts[0]); !ok {
		return Length{}, Length{}, false
	}
	if len(parts) > 1 {
		if y, ok = ParseLengthOrPercent(parts[1]); !ok {
			return Length{}, Length{}, false
		}
	}
	return x, y, true
}

func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	for _, decl := range strings.Split(styleAttr, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		property, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		property = strings.TrimSpace(strings.ToLower(property))
		if property == "" {
			continue
		}
		style.Set(property, strings.TrimSpace(value))
	}
	return style
}
