package audit

import "fmt"

// FixKind names one of the one-click fixes offered by the collection
// manager.
type FixKind string

const (
	FixDeduplicate     FixKind = "deduplicate"
	FixHarmonizeStroke FixKind = "harmonize_stroke"
	FixAlignGrid       FixKind = "align_grid"
)

// ApplyFix returns a rewritten copy of the collection with one issue
// dimension resolved. The input collection is never mutated; re-running
// the audit on the returned collection yields zero issues for the fixed
// dimension. targetIDs narrows align_grid to a subset; it is ignored by
// the other fixes.
func ApplyFix(c Collection, kind FixKind, targetIDs []string) (Collection, error) {
	switch kind {
	case FixDeduplicate:
		return deduplicate(c), nil
	case FixHarmonizeStroke:
		return harmonizeStroke(c), nil
	case FixAlignGrid:
		return alignGrid(c, targetIDs), nil
	}
	return Collection{}, fmt.Errorf("audit: unknown fix kind %q", kind)
}

// deduplicate keeps the first occurrence per content hash and drops the
// rest, preserving order.
func deduplicate(c Collection) Collection {
	seen := make(map[string]bool)
	kept := make([]Icon, 0, len(c.Icons))
	for _, icon := range c.Icons {
		hash := ContentHash(icon.SVGContent)
		if seen[hash] {
			continue
		}
		seen[hash] = true
		kept = append(kept, icon)
	}

	out := c
	out.Icons = kept
	return out
}

// harmonizeStroke sets every defined stroke weight to the modal target
func harmonizeStroke(c Collection) Collection {
	report := findStrokeOutliers(c.Icons)
	if report == nil {
		return c
	}

	out := c
	out.Icons = make([]Icon, len(c.Icons))
	for i, icon := range c.Icons {
		if icon.StrokeWeight != nil {
			w := report.TargetWeight
			icon.StrokeWeight = &w
		}
		out.Icons[i] = icon
	}
	return out
}

// alignGrid marks icons as grid aligned. With no targetIDs every icon is
// marked; otherwise only the named subset.
func alignGrid(c Collection, targetIDs []string) Collection {
	targets := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		targets[id] = true
	}

	out := c
	out.Icons = make([]Icon, len(c.Icons))
	for i, icon := range c.Icons {
		if len(targets) == 0 || targets[icon.ID] {
			aligned := true
			icon.GridAligned = &aligned
		}
		out.Icons[i] = icon
	}
	return out
}
