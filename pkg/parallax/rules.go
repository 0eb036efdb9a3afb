package parallax

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unlimited is the limit sentinel: no clamping on that axis.
const Unlimited = -1.0

// DefaultPrefix is the dataset prefix rules are read from, so
// data-parallax-rule-intensity-x configures IntensityX.
const DefaultPrefix = "parallaxRule"

// Rules are per-item overrides. Nil fields are left untouched when merged.
type Rules struct {
	IntensityX *float64 `yaml:"intensityX,omitempty" toml:"intensityX,omitempty"`
	IntensityY *float64 `yaml:"intensityY,omitempty" toml:"intensityY,omitempty"`
	LimitX     *float64 `yaml:"limitX,omitempty" toml:"limitX,omitempty"`
	LimitY     *float64 `yaml:"limitY,omitempty" toml:"limitY,omitempty"`
	Speed      *int     `yaml:"speed,omitempty" toml:"speed,omitempty"`
	Position   *int     `yaml:"position,omitempty" toml:"position,omitempty"`
}

// Float returns a pointer to v, for building Rules and Globals literals.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Merge returns r with every field set in o copied over it.
func (r Rules) Merge(o Rules) Rules {
	if o.IntensityX != nil {
		r.IntensityX = o.IntensityX
	}
	if o.IntensityY != nil {
		r.IntensityY = o.IntensityY
	}
	if o.LimitX != nil {
		r.LimitX = o.LimitX
	}
	if o.LimitY != nil {
		r.LimitY = o.LimitY
	}
	if o.Speed != nil {
		r.Speed = o.Speed
	}
	if o.Position != nil {
		r.Position = o.Position
	}
	return r
}

// IsZero reports whether no field is set.
func (r Rules) IsZero() bool {
	return r == Rules{}
}

// Defaults are the values an item starts from before its dataset and
// explicit overrides are applied. It is a plain value: every engine holds
// its own copy.
type Defaults struct {
	IntensityX float64
	IntensityY float64
	LimitX     float64
	LimitY     float64
	Speed      int
}

// DefaultItemRules returns intensity 1 on both axes, no limits, no
// transition.
func DefaultItemRules() Defaults {
	return Defaults{
		IntensityX: 1,
		IntensityY: 1,
		LimitX:     Unlimited,
		LimitY:     Unlimited,
	}
}

// Globals modify every item. IntensityX/Y and Speed multiply the item's
// values; LimitX/Y apply only to items whose own limit is Unlimited.
type Globals struct {
	IntensityX *float64 `yaml:"intensityX,omitempty" toml:"intensityX,omitempty"`
	IntensityY *float64 `yaml:"intensityY,omitempty" toml:"intensityY,omitempty"`
	LimitX     *float64 `yaml:"limitX,omitempty" toml:"limitX,omitempty"`
	LimitY     *float64 `yaml:"limitY,omitempty" toml:"limitY,omitempty"`
	Speed      *float64 `yaml:"speed,omitempty" toml:"speed,omitempty"`
}

// Clone returns a copy of g that shares no pointers with it.
func (g Globals) Clone() Globals {
	cp := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		return Float(*v)
	}
	return Globals{
		IntensityX: cp(g.IntensityX),
		IntensityY: cp(g.IntensityY),
		LimitX:     cp(g.LimitX),
		LimitY:     cp(g.LimitY),
		Speed:      cp(g.Speed),
	}
}

// Merge returns g with every field set in o copied over it.
func (g Globals) Merge(o Globals) Globals {
	g = g.Clone()
	o = o.Clone()
	if o.IntensityX != nil {
		g.IntensityX = o.IntensityX
	}
	if o.IntensityY != nil {
		g.IntensityY = o.IntensityY
	}
	if o.LimitX != nil {
		g.LimitX = o.LimitX
	}
	if o.LimitY != nil {
		g.LimitY = o.LimitY
	}
	if o.Speed != nil {
		g.Speed = o.Speed
	}
	return g
}

// ruleField is one configurable name and how a parsed number lands in
// Rules. The table order is the evaluation order: combined keys come
// before their per-axis keys so the per-axis value always wins.
type ruleField struct {
	name  string
	apply func(r *Rules, v float64)
}

var ruleFields = []ruleField{
	{"Intensity", func(r *Rules, v float64) { r.IntensityX, r.IntensityY = Float(v), Float(v) }},
	{"IntensityX", func(r *Rules, v float64) { r.IntensityX = Float(v) }},
	{"IntensityY", func(r *Rules, v float64) { r.IntensityY = Float(v) }},
	{"Limit", func(r *Rules, v float64) { r.LimitX, r.LimitY = Float(v), Float(v) }},
	{"LimitX", func(r *Rules, v float64) { r.LimitX = Float(v) }},
	{"LimitY", func(r *Rules, v float64) { r.LimitY = Float(v) }},
	{"Speed", func(r *Rules, v float64) {
		if v >= 0 {
			r.Speed = Int(int(v))
		}
	}},
	{"Position", func(r *Rules, v float64) { r.Position = Int(int(v)) }},
}

// parseNumber accepts the number forms that reach us from attributes,
// scripts and config files. NaN and infinities are rejected.
func parseNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// DecodeRules reads loosely-typed fields ("intensity", "intensityX",
// "limitY", "speed", ...) into Rules. Non-numeric values are skipped. An
// "element" field is rejected: rules never carry element identity.
func DecodeRules(fields map[string]any) (Rules, error) {
	var r Rules
	if _, ok := fields["element"]; ok {
		return r, fmt.Errorf("rules payload carries an element: %w", ErrInvalidEditTarget)
	}
	for _, f := range ruleFields {
		raw, ok := fields[lowerFirst(f.name)]
		if !ok {
			continue
		}
		if v, ok := parseNumber(raw); ok {
			f.apply(&r, v)
		}
	}
	return r, nil
}

// DecodeGlobals reads the same names as DecodeRules into Globals.
func DecodeGlobals(fields map[string]any) Globals {
	var g Globals
	set := func(name string, dst **float64) {
		if v, ok := parseNumber(fields[name]); ok {
			*dst = Float(v)
		}
	}
	set("intensity", &g.IntensityX)
	set("intensity", &g.IntensityY)
	set("intensityX", &g.IntensityX)
	set("intensityY", &g.IntensityY)
	set("limit", &g.LimitX)
	set("limit", &g.LimitY)
	set("limitX", &g.LimitX)
	set("limitY", &g.LimitY)
	set("speed", &g.Speed)
	return g
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
