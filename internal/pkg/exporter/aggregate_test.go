package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSelection() []Asset {
	return []Asset{
		{ID: "a", Name: "arrow-up", ByteSize: 1000},
		{ID: "b", Name: "arrow-down", ByteSize: 500},
	}
}

func TestAggregate_PerFormatLabels(t *testing.T) {
	cfg := &ExportConfig{
		Formats: FormatConfig{
			SVG:        SVGOptions{Enabled: true, Optimize: OptimizeStandard},
			PNG:        PNGOptions{Enabled: true, Sizes: []int{48}},
			Components: ComponentOptions{Enabled: true, Targets: []Framework{FrameworkReact, FrameworkVue}},
		},
	}

	report := Aggregate(testSelection(), cfg)

	assert.Equal(t, int64(1320), report.PerFormatBytes["SVG (standard)"])
	assert.Equal(t, int64(5229), report.PerFormatBytes["PNG (1 sizes)"])
	assert.Equal(t, int64(880), report.PerFormatBytes["Components (2 frameworks)"])
	assert.Equal(t, int64(7429), report.TotalBytes)
	assert.False(t, report.Warn)
}

func TestAggregate_Idempotent(t *testing.T) {
	cfg := DefaultConfig()
	selection := testSelection()

	first := Aggregate(selection, cfg)
	second := Aggregate(selection, cfg)

	assert.Equal(t, first, second)
}

func TestAggregate_EmptySelection(t *testing.T) {
	cfg := DefaultConfig()

	report := Aggregate(nil, cfg)

	assert.Equal(t, int64(0), report.TotalBytes)
	for label, bytes := range report.PerFormatBytes {
		assert.Zerof(t, bytes, "format %s should estimate zero bytes", label)
	}
	assert.False(t, report.Warn)
}

func TestAggregate_EnablingFormatNeverDecreasesTotal(t *testing.T) {
	cfg := &ExportConfig{
		Formats: FormatConfig{
			SVG: SVGOptions{Enabled: true, Optimize: OptimizeStandard},
		},
	}
	selection := testSelection()
	base := Aggregate(selection, cfg).TotalBytes

	require.NoError(t, cfg.UpdateField("ico.enabled", true))
	withICO := Aggregate(selection, cfg).TotalBytes
	assert.GreaterOrEqual(t, withICO, base)

	require.NoError(t, cfg.UpdateField("font.enabled", true))
	withFont := Aggregate(selection, cfg).TotalBytes
	assert.GreaterOrEqual(t, withFont, withICO)
}

func TestAggregate_AddingPNGTierNeverDecreasesEstimate(t *testing.T) {
	cfg := &ExportConfig{
		Formats: FormatConfig{
			PNG: PNGOptions{Enabled: true, Sizes: []int{24}},
		},
	}
	selection := testSelection()
	base := Aggregate(selection, cfg).PerFormatBytes["PNG (1 sizes)"]

	require.NoError(t, cfg.UpdateField("png.sizes", []int{24, 48}))
	wider := Aggregate(selection, cfg).PerFormatBytes["PNG (2 sizes)"]

	assert.GreaterOrEqual(t, wider, base)
}

func TestAggregate_MobileWarning(t *testing.T) {
	tests := []struct {
		name     string
		profile  ProfileKey
		sizes    []int
		expected bool
	}{
		{"Mobile with small tiers", ProfileMobile, []int{24, 48, 96}, false},
		{"Mobile with oversized tier", ProfileMobile, []int{24, 128}, true},
		{"Web with oversized tier", ProfileWeb, []int{24, 128}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &ExportConfig{
				Profile: tt.profile,
				Formats: FormatConfig{
					PNG: PNGOptions{Enabled: true, Sizes: tt.sizes},
				},
			}
			report := Aggregate(testSelection(), cfg)
			assert.Equal(t, tt.expected, report.Warn)
		})
	}
}

func TestAggregate_MobileWarningOnLargeTotal(t *testing.T) {
	cfg := &ExportConfig{
		Profile: ProfileMobile,
		Formats: FormatConfig{
			SVG: SVGOptions{Enabled: true, Optimize: OptimizeNone},
		},
	}
	selection := []Asset{{ID: "big", Name: "mega", ByteSize: 600_000}}

	report := Aggregate(selection, cfg)

	assert.Greater(t, report.TotalBytes, int64(500_000))
	assert.True(t, report.Warn)
}
