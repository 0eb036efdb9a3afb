// Package config loads scene settings from YAML or TOML files. The file
// format is chosen by extension: .yaml and .yml go through yaml.v3, .toml
// through BurntSushi/toml. Missing fields keep the values of Default.
//
// A YAML example:
//
//	page: scene.html
//	viewport: {width: 800, height: 600}
//	container: scene
//	item_class: layer
//	throttle_ms: 20
//	speed_policy: multiply
//	globals: {limitX: 5, limitY: 5}
//	rules:
//	  far: {intensity: 0.5}
//	pointer:
//	  - {x: 100, y: 100}
//	  - {x: 700, y: 500}
//	frames: {dir: out, prefix: frame}
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"mouseparallax/pkg/parallax"
	stdnet "mouseparallax/std/net"
)

var (
	// ErrUnknownFormat: the file extension is neither YAML nor TOML.
	ErrUnknownFormat = errors.New("unknown config format")
	// ErrInvalid: a field holds a value the scene cannot use.
	ErrInvalid = errors.New("invalid config")
)

// Viewport is the size of the page the scene is laid out in.
type Viewport struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// Point is one pointer sample in viewport coordinates.
type Point struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// Frames controls where rendered frames are written.
type Frames struct {
	Dir    string `yaml:"dir" toml:"dir"`
	Prefix string `yaml:"prefix" toml:"prefix"`
}

// Config describes one parallax scene.
type Config struct {
	Page      string   `yaml:"page" toml:"page"`           // HTML file, relative to the config file
	Viewport  Viewport `yaml:"viewport" toml:"viewport"`   // layout size in px
	Container string   `yaml:"container" toml:"container"` // id of the bounding element
	ItemClass string   `yaml:"item_class" toml:"item_class"`
	Prefix    string   `yaml:"prefix" toml:"prefix"` // dataset prefix, camelCase

	// ThrottleMS is a pointer so an explicit 0 (no throttling) survives
	// decoding.
	ThrottleMS  *int   `yaml:"throttle_ms" toml:"throttle_ms"`
	SpeedPolicy string `yaml:"speed_policy" toml:"speed_policy"` // "multiply" or "override"

	// Globals and Rules use the same loose names as data-* attributes
	// and scripts, including the combined "intensity" and "limit".
	Globals map[string]any            `yaml:"globals" toml:"globals"`
	Rules   map[string]map[string]any `yaml:"rules" toml:"rules"` // per element id

	Pointer []Point `yaml:"pointer" toml:"pointer"`
	Frames  Frames  `yaml:"frames" toml:"frames"`

	// dir is the directory the file was loaded from; Page resolves
	// against it.
	dir string
}

// Default returns the settings used for every field a file leaves out.
func Default() Config {
	return Config{
		Viewport:    Viewport{Width: 800, Height: 600},
		ItemClass:   "layer",
		Prefix:      parallax.DefaultPrefix,
		SpeedPolicy: "multiply",
		Frames:      Frames{Dir: ".", Prefix: "frame"},
	}
}

// Load reads and validates the file at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes data in the format named by ext (".yaml", ".yml" or
// ".toml") over Default and validates the result.
func Parse(data []byte, ext string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("error parsing config file: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("error parsing config file: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%q: %w", ext, ErrUnknownFormat)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the fields that have a restricted range.
func (c Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport %gx%g: %w", c.Viewport.Width, c.Viewport.Height, ErrInvalid)
	}
	if c.ThrottleMS != nil && *c.ThrottleMS < 0 {
		return fmt.Errorf("throttle_ms %d: %w", *c.ThrottleMS, ErrInvalid)
	}
	if _, err := c.speedPolicy(); err != nil {
		return err
	}
	for id, fields := range c.Rules {
		if _, err := parallax.DecodeRules(fields); err != nil {
			return fmt.Errorf("rules for #%s: %w", id, err)
		}
	}
	return nil
}

// ItemRules returns the overrides configured for the element with id.
func (c Config) ItemRules(id string) parallax.Rules {
	r, _ := parallax.DecodeRules(c.Rules[id])
	return r
}

func (c Config) speedPolicy() (parallax.SpeedPolicy, error) {
	switch strings.ToLower(c.SpeedPolicy) {
	case "", "multiply":
		return parallax.SpeedMultiply, nil
	case "override":
		return parallax.SpeedOverride, nil
	}
	return 0, fmt.Errorf("speed_policy %q: %w", c.SpeedPolicy, ErrInvalid)
}

// Throttle is the configured listener window, or parallax.DefaultThrottle.
func (c Config) Throttle() time.Duration {
	if c.ThrottleMS == nil {
		return parallax.DefaultThrottle
	}
	return time.Duration(*c.ThrottleMS) * time.Millisecond
}

// PagePath resolves Page against the directory the config was loaded
// from. URLs are returned as is. It is empty when no page is configured.
func (c Config) PagePath() string {
	if c.Page == "" || filepath.IsAbs(c.Page) || c.dir == "" || stdnet.IsNetworkURL(c.Page) {
		return c.Page
	}
	return filepath.Join(c.dir, c.Page)
}

// EngineOptions converts the engine-level settings into parallax options.
// Container and item lookup need a document and are left to the caller.
func (c Config) EngineOptions() []parallax.Option {
	policy, _ := c.speedPolicy()
	opts := []parallax.Option{
		parallax.WithThrottle(c.Throttle()),
		parallax.WithSpeedPolicy(policy),
		parallax.WithGlobals(parallax.DecodeGlobals(c.Globals)),
	}
	if c.Prefix != "" {
		opts = append(opts, parallax.WithPrefix(c.Prefix))
	}
	return opts
}
