package exporter

import "fmt"

// EstimateReport is the derived selection-wide size summary shown in the
// export hub. Recomputed in full on every selection or config change.
type EstimateReport struct {
	PerFormatBytes map[string]int64 `json:"per_format_bytes"`
	TotalBytes     int64            `json:"total_bytes"`
	Warn           bool             `json:"warn"`
}

// Aggregate computes the per-format byte totals for the selection under
// the given configuration. The computation is total and idempotent: the
// same inputs always produce the same report, and no partial state is
// kept between calls. An empty selection yields zero for every format.
func Aggregate(selection []Asset, cfg *ExportConfig) *EstimateReport {
	report := &EstimateReport{
		PerFormatBytes: make(map[string]int64),
	}

	for _, key := range cfg.EnabledFormats() {
		label, bytes := estimateFormat(selection, cfg, key)
		report.PerFormatBytes[label] = bytes
		report.TotalBytes += bytes
	}

	report.Warn = evaluateWarning(selection, cfg, report.TotalBytes)
	return report
}

func estimateFormat(selection []Asset, cfg *ExportConfig, key FormatKey) (string, int64) {
	var total int64
	switch key {
	case FormatSVG:
		for _, asset := range selection {
			total += EstimateSVG(asset, cfg.Formats.SVG.Optimize)
		}
		level := cfg.Formats.SVG.Optimize
		if level == "" {
			level = OptimizeNone
		}
		return fmt.Sprintf("SVG (%s)", level), total
	case FormatPNG:
		for _, asset := range selection {
			for _, size := range cfg.Formats.PNG.Sizes {
				total += EstimatePNG(asset, size)
			}
		}
		return fmt.Sprintf("PNG (%d sizes)", len(cfg.Formats.PNG.Sizes)), total
	case FormatICO:
		for _, asset := range selection {
			total += EstimateICO(asset)
		}
		return "ICO", total
	case FormatSprite:
		return "Sprite sheet", EstimateSprite(selection)
	case FormatFont:
		return "Icon font", EstimateFont(selection)
	case FormatComponents:
		// One wrapper file per asset per framework target
		for _, asset := range selection {
			total += EstimateComponent(asset) * int64(len(cfg.Formats.Components.Targets))
		}
		return fmt.Sprintf("Components (%d frameworks)", len(cfg.Formats.Components.Targets)), total
	}
	return string(key), 0
}

// evaluateWarning flags mobile-profile exports that will likely blow the
// app bundle: oversized PNG tiers or a total above 500 KB.
func evaluateWarning(selection []Asset, cfg *ExportConfig, totalBytes int64) bool {
	if cfg.Profile != ProfileMobile || len(selection) == 0 {
		return false
	}
	if totalBytes > 500_000 {
		return true
	}
	if cfg.Formats.PNG.Enabled {
		for _, size := range cfg.Formats.PNG.Sizes {
			if size >= 128 {
				return true
			}
		}
	}
	return false
}
