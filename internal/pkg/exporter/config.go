package exporter

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FormatKey identifies one of the six output encodings
type FormatKey string

const (
	FormatSVG        FormatKey = "svg"
	FormatPNG        FormatKey = "png"
	FormatICO        FormatKey = "ico"
	FormatSprite     FormatKey = "sprite"
	FormatFont       FormatKey = "font"
	FormatComponents FormatKey = "components"
)

// OptimizeLevel controls how aggressively SVG markup is minified
type OptimizeLevel string

const (
	OptimizeNone       OptimizeLevel = "none"
	OptimizeStandard   OptimizeLevel = "standard"
	OptimizeAggressive OptimizeLevel = "aggressive"
)

// Background is the backdrop baked into rasterized PNG output
type Background string

const (
	BackgroundTransparent Background = "transparent"
	BackgroundLight       Background = "light"
	BackgroundDark        Background = "dark"
)

// SpriteLayout controls how symbols are arranged in a sprite sheet
type SpriteLayout string

const (
	LayoutHorizontal SpriteLayout = "horizontal"
	LayoutVertical   SpriteLayout = "vertical"
	LayoutPacked     SpriteLayout = "packed"
)

// Framework is a component wrapper target
type Framework string

const (
	FrameworkReact  Framework = "react"
	FrameworkVue    Framework = "vue"
	FrameworkSvelte Framework = "svelte"
)

// SVGOptions holds the parameters for plain SVG output
type SVGOptions struct {
	Enabled   bool          `json:"enabled"`
	Optimize  OptimizeLevel `json:"optimize" validate:"omitempty,oneof=none standard aggressive"`
	StripFill bool          `json:"strip_fill"`
}

// PNGOptions holds the parameters for rasterized PNG output
type PNGOptions struct {
	Enabled    bool       `json:"enabled"`
	Sizes      []int      `json:"sizes" validate:"dive,gt=0"`
	Background Background `json:"background" validate:"omitempty,oneof=transparent light dark"`
}

// ICOOptions holds the parameters for favicon output
type ICOOptions struct {
	Enabled bool `json:"enabled"`
}

// SpriteOptions holds the parameters for sprite sheet output
type SpriteOptions struct {
	Enabled bool         `json:"enabled"`
	Layout  SpriteLayout `json:"layout" validate:"omitempty,oneof=horizontal vertical packed"`
}

// FontOptions holds the parameters for icon font output
type FontOptions struct {
	Enabled          bool `json:"enabled"`
	IncludeLigatures bool `json:"include_ligatures"`
}

// ComponentOptions holds the parameters for framework component output
type ComponentOptions struct {
	Enabled bool        `json:"enabled"`
	Targets []Framework `json:"targets" validate:"dive,oneof=react vue svelte"`
}

// FormatConfig maps every format key to its parameter record
type FormatConfig struct {
	SVG        SVGOptions       `json:"svg"`
	PNG        PNGOptions       `json:"png"`
	ICO        ICOOptions       `json:"ico"`
	Sprite     SpriteOptions    `json:"sprite"`
	Font       FontOptions      `json:"font"`
	Components ComponentOptions `json:"components"`
}

// NamingConfig controls output file naming. The pattern may contain the
// placeholders {name}, {size} and {theme} in any order.
type NamingConfig struct {
	Pattern   string `json:"pattern"`
	Lowercase bool   `json:"lowercase"`
}

// ProfileKey names a preset bundle, or "custom" after any manual edit
type ProfileKey string

const (
	ProfileWeb     ProfileKey = "web"
	ProfileMobile  ProfileKey = "mobile"
	ProfileHandoff ProfileKey = "handoff"
	ProfileCustom  ProfileKey = "custom"
)

// ExportConfig is the full configuration state of the export hub
type ExportConfig struct {
	Profile ProfileKey   `json:"profile"`
	Formats FormatConfig `json:"formats"`
	Naming  NamingConfig `json:"naming"`
}

// Asset is one exportable item as seen by the engine. Supplied by the
// caller, never mutated here.
type Asset struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ByteSize int64    `json:"byte_size"`
	Tags     []string `json:"tags,omitempty"`
}

// ErrInvalidConfiguration is the single failure signal of the engine:
// starting a batch with an empty selection or no viable enabled format.
var ErrInvalidConfiguration = errors.New("exporter: invalid configuration")

// DefaultConfig returns the configuration the export hub opens with
func DefaultConfig() *ExportConfig {
	cfg := &ExportConfig{}
	applyPresetPayload(cfg, presets[ProfileWeb])
	cfg.Profile = ProfileWeb
	return cfg
}

// EnabledFormats returns the formats currently switched on, in the fixed
// display order of the export hub.
func (c *ExportConfig) EnabledFormats() []FormatKey {
	var keys []FormatKey
	if c.Formats.SVG.Enabled {
		keys = append(keys, FormatSVG)
	}
	if c.Formats.PNG.Enabled {
		keys = append(keys, FormatPNG)
	}
	if c.Formats.ICO.Enabled {
		keys = append(keys, FormatICO)
	}
	if c.Formats.Sprite.Enabled {
		keys = append(keys, FormatSprite)
	}
	if c.Formats.Font.Enabled {
		keys = append(keys, FormatFont)
	}
	if c.Formats.Components.Enabled {
		keys = append(keys, FormatComponents)
	}
	return keys
}

// Validate reports whether an export could be started with this
// configuration: at least one enabled format with non-empty effective
// parameters, and PNG sizes present whenever PNG is enabled.
func (c *ExportConfig) Validate() error {
	if c.Formats.PNG.Enabled && len(c.Formats.PNG.Sizes) == 0 {
		return fmt.Errorf("%w: png enabled without sizes", ErrInvalidConfiguration)
	}
	if c.Formats.Components.Enabled && len(c.Formats.Components.Targets) == 0 {
		return fmt.Errorf("%w: components enabled without targets", ErrInvalidConfiguration)
	}
	if len(c.EnabledFormats()) == 0 {
		return fmt.Errorf("%w: no format enabled", ErrInvalidConfiguration)
	}
	return nil
}

// UpdateField sets a single configuration field addressed by its path
// (e.g. "svg.optimize", "png.sizes", "naming.pattern"). Any successful
// update unconditionally demotes the profile to custom, even if the
// resulting values happen to match a preset.
func (c *ExportConfig) UpdateField(path string, value interface{}) error {
	parts := strings.SplitN(path, ".", 2)
	if len(parts) != 2 {
		return fmt.Errorf("exporter: invalid field path %q", path)
	}

	var err error
	switch parts[0] {
	case "svg":
		err = c.updateSVGField(parts[1], value)
	case "png":
		err = c.updatePNGField(parts[1], value)
	case "ico":
		err = c.updateICOField(parts[1], value)
	case "sprite":
		err = c.updateSpriteField(parts[1], value)
	case "font":
		err = c.updateFontField(parts[1], value)
	case "components":
		err = c.updateComponentsField(parts[1], value)
	case "naming":
		err = c.updateNamingField(parts[1], value)
	default:
		err = fmt.Errorf("exporter: unknown format key %q", parts[0])
	}
	if err != nil {
		return err
	}

	c.Profile = ProfileCustom
	return nil
}

func (c *ExportConfig) updateSVGField(field string, value interface{}) error {
	switch field {
	case "enabled":
		b, err := asBool(value)
		if err != nil {
			return err
		}
		c.Formats.SVG.Enabled = b
	case "optimize":
		s, err := asString(value)
		if err != nil {
			return err
		}
		switch OptimizeLevel(s) {
		case OptimizeNone, OptimizeStandard, OptimizeAggressive:
			c.Formats.SVG.Optimize = OptimizeLevel(s)
		default:
			return fmt.Errorf("exporter: invalid optimize level %q", s)
		}
	case "strip_fill":
		b, err := asBool(value)
		if err != nil {
			return err
		}
		c.Formats.SVG.StripFill = b
	default:
		return fmt.Errorf("exporter: unknown svg field %q", field)
	}
	return nil
}

func (c *ExportConfig) updatePNGField(field string, value interface{}) error {
	switch field {
	case "enabled":
		b, err := asBool(value)
		if err != nil {
			return err
		}
		c.Formats.PNG.Enabled = b
	case "sizes":
		sizes, err := asIntSlice(value)
		if err != nil {
			return err
		}
		for _, s := range sizes {
			if s <= 0 {
				return fmt.Errorf("exporter: invalid png size %d", s)
			}
		}
		sort.Ints(sizes)
		c.Formats.PNG.Sizes = dedupeInts(sizes)
	case "background":
		s, err := asString(value)
		if err != nil {
			return err
		}
		switch Background(s) {
		case BackgroundTransparent, BackgroundLight, BackgroundDark:
			c.Formats.PNG.Background = Background(s)
		default:
			return fmt.Errorf("exporter: invalid background %q", s)
		}
	default:
		return fmt.Errorf("exporter: unknown png field %q", field)
	}
	return nil
}

func (c *ExportConfig) updateICOField(field string, value interface{}) error {
	if field != "enabled" {
		return fmt.Errorf("exporter: unknown ico field %q", field)
	}
	b, err := asBool(value)
	if err != nil {
		return err
	}
	c.Formats.ICO.Enabled = b
	return nil
}

func (c *ExportConfig) updateSpriteField(field string, value interface{}) error {
	switch field {
	case "enabled":
		b, err := asBool(value)
		if err != nil {
			return err
		}
		c.Formats.Sprite.Enabled = b
	case "layout":
		s, err := asString(value)
		if err != nil {
			return err
		}
		switch SpriteLayout(s) {
		case LayoutHorizontal, LayoutVertical, LayoutPacked:
			c.Formats.Sprite.Layout = SpriteLayout(s)
		default:
			return fmt.Errorf("exporter: invalid sprite layout %q", s)
		}
	default:
		return fmt.Errorf("exporter: unknown sprite field %q", field)
	}
	return nil
}

func (c *ExportConfig) updateFontField(field string, value interface{}) error {
	switch field {
	case "enabled":
		b, err := asBool(value)
		if err != nil {
			return err
		}
		c.Formats.Font.Enabled = b
	case "include_ligatures":
		b, err := asBool(value)
		if err != nil {
			return err
		}
		c.Formats.Font.IncludeLigatures = b
	default:
		return fmt.Errorf("exporter: unknown font field %q", field)
	}
	return nil
}

func (c *ExportConfig) updateComponentsField(field string, value interface{}) error {
	switch field {
	case "enabled":
		b, err := asBool(value)
		if err != nil {
			return err
		}
		c.Formats.Components.Enabled = b
	case "targets":
		strs, err := asStringSlice(value)
		if err != nil {
			return err
		}
		var targets []Framework
		for _, s := range strs {
			switch Framework(s) {
			case FrameworkReact, FrameworkVue, FrameworkSvelte:
				targets = append(targets, Framework(s))
			default:
				return fmt.Errorf("exporter: invalid framework target %q", s)
			}
		}
		c.Formats.Components.Targets = targets
	default:
		return fmt.Errorf("exporter: unknown components field %q", field)
	}
	return nil
}

func (c *ExportConfig) updateNamingField(field string, value interface{}) error {
	switch field {
	case "pattern":
		s, err := asString(value)
		if err != nil {
			return err
		}
		c.Naming.Pattern = s
	case "lowercase":
		b, err := asBool(value)
		if err != nil {
			return err
		}
		c.Naming.Lowercase = b
	default:
		return fmt.Errorf("exporter: unknown naming field %q", field)
	}
	return nil
}

func asBool(v interface{}) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(b)
	}
	return false, fmt.Errorf("exporter: expected bool, got %T", v)
}

func asString(v interface{}) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("exporter: expected string, got %T", v)
}

func asIntSlice(v interface{}) ([]int, error) {
	switch vs := v.(type) {
	case []int:
		return append([]int(nil), vs...), nil
	case []interface{}:
		// JSON decodes numeric arrays as []interface{} of float64
		out := make([]int, 0, len(vs))
		for _, item := range vs {
			f, ok := item.(float64)
			if !ok {
				return nil, fmt.Errorf("exporter: expected number, got %T", item)
			}
			out = append(out, int(f))
		}
		return out, nil
	}
	return nil, fmt.Errorf("exporter: expected int slice, got %T", v)
}

func asStringSlice(v interface{}) ([]string, error) {
	switch vs := v.(type) {
	case []string:
		return append([]string(nil), vs...), nil
	case []interface{}:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("exporter: expected string, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("exporter: expected string slice, got %T", v)
}

func dedupeInts(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}
