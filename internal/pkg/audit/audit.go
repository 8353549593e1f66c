// Package audit checks an icon collection for consistency issues:
// duplicated content, mixed stroke weights and off-grid icons. It is pure
// computation over caller-supplied values; persistence of fixes happens
// in the repositories.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Icon is one collection member as seen by the auditor
type Icon struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	SVGContent   string   `json:"svg_content"`
	StrokeWeight *float64 `json:"stroke_weight,omitempty"`
	GridAligned  *bool    `json:"grid_aligned,omitempty"`
}

// Collection is an ordered list of icons under one name
type Collection struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icons []Icon `json:"icons"`
}

// DuplicateGroup collects the ids of icons sharing identical content
type DuplicateGroup struct {
	ContentHash string   `json:"content_hash"`
	MemberIDs   []string `json:"member_ids"`
}

// StrokeReport flags icons whose stroke weight differs from the modal one
type StrokeReport struct {
	TargetWeight float64  `json:"target_weight"`
	OutlierIDs   []string `json:"outlier_ids"`
}

// Result is the derived issue report for one collection
type Result struct {
	DuplicateGroups []DuplicateGroup `json:"duplicate_groups"`
	MixedStroke     *StrokeReport    `json:"mixed_stroke,omitempty"`
	OffGridIDs      []string         `json:"off_grid_ids"`
	TotalIssueCount int              `json:"total_issue_count"`
	ReadinessScore  int              `json:"readiness_score"`
}

// Issue score penalties
const (
	duplicatePenalty = 10
	strokePenalty    = 5
	gridPenalty      = 5
)

// ContentHash returns the hash of the trimmed SVG markup used for
// duplicate grouping.
func ContentHash(svgContent string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(svgContent)))
	return hex.EncodeToString(sum[:])
}

// Run audits a collection and returns its issue report. Derived on
// demand, never persisted.
func Run(c Collection) Result {
	result := Result{
		DuplicateGroups: findDuplicates(c.Icons),
		MixedStroke:     findStrokeOutliers(c.Icons),
		OffGridIDs:      findOffGrid(c.Icons),
	}

	excessDuplicates := 0
	for _, group := range result.DuplicateGroups {
		excessDuplicates += len(group.MemberIDs) - 1
	}
	outlierCount := 0
	if result.MixedStroke != nil {
		outlierCount = len(result.MixedStroke.OutlierIDs)
	}
	offGridCount := len(result.OffGridIDs)

	result.TotalIssueCount = excessDuplicates + outlierCount + offGridCount
	result.ReadinessScore = readinessScore(excessDuplicates, outlierCount, offGridCount)
	return result
}

// findDuplicates groups icon ids by content hash; only groups with two or
// more members qualify. Group order follows first encounter.
func findDuplicates(icons []Icon) []DuplicateGroup {
	byHash := make(map[string][]string)
	var hashOrder []string
	for _, icon := range icons {
		hash := ContentHash(icon.SVGContent)
		if _, seen := byHash[hash]; !seen {
			hashOrder = append(hashOrder, hash)
		}
		byHash[hash] = append(byHash[hash], icon.ID)
	}

	var groups []DuplicateGroup
	for _, hash := range hashOrder {
		if members := byHash[hash]; len(members) >= 2 {
			groups = append(groups, DuplicateGroup{ContentHash: hash, MemberIDs: members})
		}
	}
	return groups
}

// findStrokeOutliers computes the modal stroke weight among icons that
// define one and flags everything deviating from it. Ties break to the
// first-encountered weight. Returns nil when no icon deviates.
func findStrokeOutliers(icons []Icon) *StrokeReport {
	counts := make(map[float64]int)
	var weightOrder []float64
	for _, icon := range icons {
		if icon.StrokeWeight == nil {
			continue
		}
		w := *icon.StrokeWeight
		if _, seen := counts[w]; !seen {
			weightOrder = append(weightOrder, w)
		}
		counts[w]++
	}
	if len(weightOrder) < 2 {
		return nil
	}

	target := weightOrder[0]
	for _, w := range weightOrder {
		if counts[w] > counts[target] {
			target = w
		}
	}

	var outliers []string
	for _, icon := range icons {
		if icon.StrokeWeight != nil && *icon.StrokeWeight != target {
			outliers = append(outliers, icon.ID)
		}
	}
	return &StrokeReport{TargetWeight: target, OutlierIDs: outliers}
}

// findOffGrid flags icons explicitly marked as not grid aligned. Icons
// without a mark count as aligned: absence of information is not a
// violation.
func findOffGrid(icons []Icon) []string {
	var offGrid []string
	for _, icon := range icons {
		if icon.GridAligned != nil && !*icon.GridAligned {
			offGrid = append(offGrid, icon.ID)
		}
	}
	return offGrid
}

func readinessScore(excessDuplicates, outlierCount, offGridCount int) int {
	if excessDuplicates+outlierCount+offGridCount == 0 {
		return 100
	}
	penalty := duplicatePenalty*excessDuplicates + strokePenalty*outlierCount + gridPenalty*offGridCount
	if penalty > 80 {
		penalty = 80
	}
	// Capped penalty keeps the score in [20,100]
	return 100 - penalty
}
