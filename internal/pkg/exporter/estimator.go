package exporter

import "math"

// The scaling factors and floors below are policy constants carried over
// from the export hub. They are not measured against real encoder output
// and must not be recalibrated without bumping estimate parity.
const (
	svgFactorStandard   = 0.88
	svgFactorAggressive = 0.78
	svgFloorBytes       = 350

	pngBaseSize   = 24.0
	pngExponent   = 1.6
	pngOverhead   = 1.15
	pngFloorBytes = 900

	icoFactor     = 0.65
	icoHeader     = 1024
	icoFloorBytes = 3000

	componentFactor     = 0.05
	componentFloorBytes = 220

	spriteOverheadBytes = 5000
	spriteSymbolFactor  = 0.1

	fontBaseBytes    = 30000
	fontPerIconBytes = 600
)

// EstimateSVG returns the estimated byte size of one asset exported as a
// standalone SVG at the given optimization level.
func EstimateSVG(asset Asset, level OptimizeLevel) int64 {
	factor := 1.0
	switch level {
	case OptimizeStandard:
		factor = svgFactorStandard
	case OptimizeAggressive:
		factor = svgFactorAggressive
	}
	return floorClamp(math.Round(float64(asset.ByteSize)*factor), svgFloorBytes)
}

// EstimatePNG returns the estimated byte size of one asset rasterized at
// one pixel size. Callers sum across all requested sizes.
func EstimatePNG(asset Asset, size int) int64 {
	scale := math.Pow(float64(size)/pngBaseSize, pngExponent)
	return floorClamp(math.Round(float64(asset.ByteSize)*scale*pngOverhead), pngFloorBytes)
}

// EstimateICO returns the estimated byte size of one asset as a favicon
func EstimateICO(asset Asset) int64 {
	return floorClamp(math.Round(float64(asset.ByteSize)*icoFactor)+icoHeader, icoFloorBytes)
}

// EstimateComponent returns the estimated byte size of one framework
// wrapper around one asset. The wrapped SVG markup itself ships via the
// svg format, so only the wrapper boilerplate counts here.
func EstimateComponent(asset Asset) int64 {
	return floorClamp(math.Round(float64(asset.ByteSize)*componentFactor), componentFloorBytes)
}

// EstimateSprite returns the estimated byte size of one sprite sheet
// covering the whole selection. Collection-level, not per-asset.
func EstimateSprite(selection []Asset) int64 {
	if len(selection) == 0 {
		return 0
	}
	total := float64(spriteOverheadBytes)
	for _, asset := range selection {
		total += float64(EstimateSVG(asset, OptimizeStandard)) * spriteSymbolFactor
	}
	return int64(math.Round(total))
}

// EstimateFont returns the estimated byte size of one icon font covering
// the whole selection. Collection-level, not per-asset.
func EstimateFont(selection []Asset) int64 {
	if len(selection) == 0 {
		return 0
	}
	return fontBaseBytes + int64(len(selection))*fontPerIconBytes
}

func floorClamp(v float64, floor int64) int64 {
	if b := int64(v); b > floor {
		return b
	}
	return floor
}
