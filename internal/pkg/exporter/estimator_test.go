package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateSVG(t *testing.T) {
	tests := []struct {
		name     string
		byteSize int64
		level    OptimizeLevel
		expected int64
	}{
		{"No optimization", 1000, OptimizeNone, 1000},
		{"Standard optimization", 1000, OptimizeStandard, 880},
		{"Aggressive optimization", 1000, OptimizeAggressive, 780},
		{"Unset level behaves like none", 1000, "", 1000},
		{"Floor applies to tiny assets", 100, OptimizeAggressive, 350},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := Asset{ID: "a", ByteSize: tt.byteSize}
			assert.Equal(t, tt.expected, EstimateSVG(asset, tt.level))
		})
	}
}

func TestEstimatePNG(t *testing.T) {
	tests := []struct {
		name     string
		byteSize int64
		size     int
		expected int64
	}{
		{"Base size only carries overhead", 1000, 24, 1150},
		{"Double size scales by 2^1.6", 1000, 48, 3486},
		{"Small raster hits floor", 100, 16, 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := Asset{ID: "a", ByteSize: tt.byteSize}
			assert.Equal(t, tt.expected, EstimatePNG(asset, tt.size))
		})
	}
}

func TestEstimateICO(t *testing.T) {
	assert.Equal(t, int64(3000), EstimateICO(Asset{ID: "a", ByteSize: 1000}))
	assert.Equal(t, int64(7524), EstimateICO(Asset{ID: "a", ByteSize: 10000}))
}

func TestEstimateComponent(t *testing.T) {
	assert.Equal(t, int64(220), EstimateComponent(Asset{ID: "a", ByteSize: 1000}))
	assert.Equal(t, int64(500), EstimateComponent(Asset{ID: "a", ByteSize: 10000}))
}

func TestEstimateSprite(t *testing.T) {
	selection := []Asset{
		{ID: "a", ByteSize: 1000},
		{ID: "b", ByteSize: 2000},
	}
	// overhead + 10% of each standard-optimized SVG estimate
	assert.Equal(t, int64(5264), EstimateSprite(selection))
	assert.Equal(t, int64(0), EstimateSprite(nil))
}

func TestEstimateFont(t *testing.T) {
	selection := []Asset{
		{ID: "a", ByteSize: 1000},
		{ID: "b", ByteSize: 2000},
	}
	assert.Equal(t, int64(31200), EstimateFont(selection))
	assert.Equal(t, int64(0), EstimateFont(nil))
}
