package exporter

import "fmt"

// presetPayload is the partial configuration a profile preset carries.
// Only non-nil records overwrite the current config on apply; everything
// else keeps its prior value.
type presetPayload struct {
	SVG        *SVGOptions
	PNG        *PNGOptions
	ICO        *ICOOptions
	Sprite     *SpriteOptions
	Font       *FontOptions
	Components *ComponentOptions
	Naming     *NamingConfig
}

var presets = map[ProfileKey]presetPayload{
	ProfileWeb: {
		SVG:        &SVGOptions{Enabled: true, Optimize: OptimizeStandard},
		PNG:        &PNGOptions{Enabled: true, Sizes: []int{16, 24, 32, 48}, Background: BackgroundTransparent},
		ICO:        &ICOOptions{Enabled: true},
		Sprite:     &SpriteOptions{Enabled: true, Layout: LayoutPacked},
		Components: &ComponentOptions{Enabled: true, Targets: []Framework{FrameworkReact}},
		Naming:     &NamingConfig{Pattern: "{name}-{size}", Lowercase: true},
	},
	ProfileMobile: {
		SVG:    &SVGOptions{Enabled: false},
		PNG:    &PNGOptions{Enabled: true, Sizes: []int{24, 48, 96}, Background: BackgroundTransparent},
		Sprite: &SpriteOptions{Enabled: false},
		Font:   &FontOptions{Enabled: false},
		Naming: &NamingConfig{Pattern: "{name}_{size}", Lowercase: true},
	},
	ProfileHandoff: {
		SVG:        &SVGOptions{Enabled: true, Optimize: OptimizeNone},
		Font:       &FontOptions{Enabled: true, IncludeLigatures: true},
		Components: &ComponentOptions{Enabled: true, Targets: []Framework{FrameworkReact, FrameworkVue, FrameworkSvelte}},
		Naming:     &NamingConfig{Pattern: "{name}", Lowercase: false},
	},
}

// ApplyPreset merges the named preset into the configuration and marks it
// as the active profile. Format records absent from the preset keep their
// current values.
func (c *ExportConfig) ApplyPreset(key ProfileKey) error {
	payload, ok := presets[key]
	if !ok {
		return fmt.Errorf("exporter: unknown preset %q", key)
	}
	applyPresetPayload(c, payload)
	c.Profile = key
	return nil
}

func applyPresetPayload(c *ExportConfig, p presetPayload) {
	if p.SVG != nil {
		c.Formats.SVG = *p.SVG
	}
	if p.PNG != nil {
		c.Formats.PNG = *p.PNG
		c.Formats.PNG.Sizes = append([]int(nil), p.PNG.Sizes...)
	}
	if p.ICO != nil {
		c.Formats.ICO = *p.ICO
	}
	if p.Sprite != nil {
		c.Formats.Sprite = *p.Sprite
	}
	if p.Font != nil {
		c.Formats.Font = *p.Font
	}
	if p.Components != nil {
		c.Formats.Components = *p.Components
		c.Formats.Components.Targets = append([]Framework(nil), p.Components.Targets...)
	}
	if p.Naming != nil {
		c.Naming = *p.Naming
	}
}

// PresetKeys lists the built-in presets in display order
func PresetKeys() []ProfileKey {
	return []ProfileKey{ProfileWeb, ProfileMobile, ProfileHandoff}
}
