package exporter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPreset(t *testing.T) {
	cfg := &ExportConfig{}

	require.NoError(t, cfg.ApplyPreset(ProfileWeb))

	assert.Equal(t, ProfileWeb, cfg.Profile)
	assert.True(t, cfg.Formats.SVG.Enabled)
	assert.Equal(t, OptimizeStandard, cfg.Formats.SVG.Optimize)
	assert.Equal(t, []int{16, 24, 32, 48}, cfg.Formats.PNG.Sizes)
	assert.Equal(t, "{name}-{size}", cfg.Naming.Pattern)
	assert.True(t, cfg.Naming.Lowercase)
}

func TestApplyPreset_Unknown(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.ApplyPreset("desktop"))
	assert.Error(t, cfg.ApplyPreset(ProfileCustom))
}

func TestApplyPreset_FieldLevelMerge(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.UpdateField("png.sizes", []int{512}))

	// The handoff preset carries no PNG record, so the edited sizes survive
	require.NoError(t, cfg.ApplyPreset(ProfileHandoff))

	assert.Equal(t, ProfileHandoff, cfg.Profile)
	assert.Equal(t, []int{512}, cfg.Formats.PNG.Sizes)
	assert.True(t, cfg.Formats.Font.Enabled)
	assert.Len(t, cfg.Formats.Components.Targets, 3)
}

func TestUpdateField_DemotesToCustom(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value interface{}
	}{
		{"Toggle format", "ico.enabled", true},
		{"Optimize level", "svg.optimize", "aggressive"},
		{"PNG sizes", "png.sizes", []int{16, 32}},
		{"Sprite layout", "sprite.layout", "vertical"},
		{"Ligatures", "font.include_ligatures", true},
		{"Component targets", "components.targets", []string{"vue"}},
		{"Naming pattern", "naming.pattern", "{name}_{theme}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			require.Equal(t, ProfileWeb, cfg.Profile)

			require.NoError(t, cfg.UpdateField(tt.path, tt.value))
			assert.Equal(t, ProfileCustom, cfg.Profile)
		})
	}
}

func TestUpdateField_NoRematchAfterEditingBack(t *testing.T) {
	cfg := DefaultConfig()

	// Edit a field away from the preset value and straight back again.
	// The profile stays custom: values are never reverse-matched.
	require.NoError(t, cfg.UpdateField("svg.optimize", "aggressive"))
	require.NoError(t, cfg.UpdateField("svg.optimize", "standard"))

	assert.Equal(t, ProfileCustom, cfg.Profile)
	assert.Equal(t, OptimizeStandard, cfg.Formats.SVG.Optimize)
}

func TestUpdateField_Invalid(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		path  string
		value interface{}
	}{
		{"Missing field part", "png", true},
		{"Unknown format", "pdf.enabled", true},
		{"Unknown field", "svg.colorize", true},
		{"Bad optimize level", "svg.optimize", "extreme"},
		{"Negative PNG size", "png.sizes", []int{-16}},
		{"Bad framework", "components.targets", []string{"angular"}},
		{"Type mismatch", "svg.enabled", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := cfg.Profile
			assert.Error(t, cfg.UpdateField(tt.path, tt.value))
			// Failed updates must not demote the profile
			assert.Equal(t, before, cfg.Profile)
		})
	}
}

func TestUpdateField_SortsAndDedupesPNGSizes(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.UpdateField("png.sizes", []int{48, 16, 48, 24}))
	assert.Equal(t, []int{16, 24, 48}, cfg.Formats.PNG.Sizes)
}

func TestUpdateField_JSONDecodedValues(t *testing.T) {
	cfg := DefaultConfig()

	// JSON bodies arrive as []interface{} / float64
	require.NoError(t, cfg.UpdateField("png.sizes", []interface{}{float64(16), float64(64)}))
	assert.Equal(t, []int{16, 64}, cfg.Formats.PNG.Sizes)

	require.NoError(t, cfg.UpdateField("components.targets", []interface{}{"react", "svelte"}))
	assert.Equal(t, []Framework{FrameworkReact, FrameworkSvelte}, cfg.Formats.Components.Targets)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ExportConfig)
		wantErr bool
	}{
		{"Default web config is startable", func(c *ExportConfig) {}, false},
		{
			"No enabled format",
			func(c *ExportConfig) {
				c.Formats = FormatConfig{}
			},
			true,
		},
		{
			"PNG enabled without sizes",
			func(c *ExportConfig) {
				c.Formats.PNG.Sizes = nil
			},
			true,
		},
		{
			"Components enabled without targets",
			func(c *ExportConfig) {
				c.Formats.Components.Targets = nil
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidConfiguration))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
