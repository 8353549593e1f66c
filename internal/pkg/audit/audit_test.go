package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weight(w float64) *float64 { return &w }
func aligned(b bool) *bool      { return &b }

func TestRun_CleanCollection(t *testing.T) {
	c := Collection{
		ID:   "c1",
		Name: "Navigation",
		Icons: []Icon{
			{ID: "a", SVGContent: "<svg>a</svg>", StrokeWeight: weight(1.5)},
			{ID: "b", SVGContent: "<svg>b</svg>", StrokeWeight: weight(1.5)},
		},
	}

	result := Run(c)

	assert.Empty(t, result.DuplicateGroups)
	assert.Nil(t, result.MixedStroke)
	assert.Empty(t, result.OffGridIDs)
	assert.Equal(t, 0, result.TotalIssueCount)
	assert.Equal(t, 100, result.ReadinessScore)
}

func TestRun_DuplicateDetection(t *testing.T) {
	c := Collection{
		Icons: []Icon{
			{ID: "a", SVGContent: "<svg>same</svg>"},
			{ID: "b", SVGContent: "<svg>same</svg>"},
			{ID: "c", SVGContent: "<svg>other</svg>"},
		},
	}

	result := Run(c)

	require.Len(t, result.DuplicateGroups, 1)
	assert.Equal(t, []string{"a", "b"}, result.DuplicateGroups[0].MemberIDs)
	// One excess copy counts as exactly one issue
	assert.Equal(t, 1, result.TotalIssueCount)
	assert.Equal(t, 90, result.ReadinessScore)
}

func TestRun_DuplicateDetectionTrimsWhitespace(t *testing.T) {
	c := Collection{
		Icons: []Icon{
			{ID: "a", SVGContent: "<svg>same</svg>"},
			{ID: "b", SVGContent: "  <svg>same</svg>\n"},
		},
	}

	result := Run(c)
	require.Len(t, result.DuplicateGroups, 1)
	assert.Equal(t, []string{"a", "b"}, result.DuplicateGroups[0].MemberIDs)
}

func TestRun_StrokeModeWithTieBreak(t *testing.T) {
	tests := []struct {
		name         string
		weights      []float64
		wantTarget   float64
		wantOutliers []string
	}{
		{"Clear mode", []float64{1, 1, 2}, 1, []string{"i2"}},
		{"Tie breaks to first encountered", []float64{2, 1, 2, 1}, 2, []string{"i1", "i3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var icons []Icon
			for i, w := range tt.weights {
				icons = append(icons, Icon{
					ID:           "i" + string(rune('0'+i)),
					SVGContent:   "<svg>" + string(rune('a'+i)) + "</svg>",
					StrokeWeight: weight(w),
				})
			}

			result := Run(Collection{Icons: icons})

			require.NotNil(t, result.MixedStroke)
			assert.Equal(t, tt.wantTarget, result.MixedStroke.TargetWeight)
			assert.Equal(t, tt.wantOutliers, result.MixedStroke.OutlierIDs)
		})
	}
}

func TestRun_UndefinedStrokeWeightsIgnored(t *testing.T) {
	c := Collection{
		Icons: []Icon{
			{ID: "a", SVGContent: "<svg>a</svg>", StrokeWeight: weight(2)},
			{ID: "b", SVGContent: "<svg>b</svg>"},
			{ID: "c", SVGContent: "<svg>c</svg>"},
		},
	}

	result := Run(c)
	assert.Nil(t, result.MixedStroke)
}

func TestRun_OffGrid(t *testing.T) {
	c := Collection{
		Icons: []Icon{
			{ID: "a", SVGContent: "<svg>a</svg>", GridAligned: aligned(false)},
			{ID: "b", SVGContent: "<svg>b</svg>", GridAligned: aligned(true)},
			// No mark counts as aligned
			{ID: "c", SVGContent: "<svg>c</svg>"},
		},
	}

	result := Run(c)

	assert.Equal(t, []string{"a"}, result.OffGridIDs)
	assert.Equal(t, 1, result.TotalIssueCount)
	assert.Equal(t, 95, result.ReadinessScore)
}

func TestRun_ReadinessScoreFloor(t *testing.T) {
	// Pile up enough issues to exceed the 80 point penalty cap
	var icons []Icon
	for i := 0; i < 12; i++ {
		icons = append(icons, Icon{
			ID:          "d" + string(rune('a'+i)),
			SVGContent:  "<svg>dup</svg>",
			GridAligned: aligned(false),
		})
	}

	result := Run(Collection{Icons: icons})

	assert.Greater(t, result.TotalIssueCount, 16)
	assert.Equal(t, 20, result.ReadinessScore)
}

func TestApplyFix_Deduplicate(t *testing.T) {
	c := Collection{
		Icons: []Icon{
			{ID: "a", SVGContent: "<svg>same</svg>"},
			{ID: "b", SVGContent: "<svg>same</svg>"},
			{ID: "c", SVGContent: "<svg>other</svg>"},
		},
	}

	fixed, err := ApplyFix(c, FixDeduplicate, nil)
	require.NoError(t, err)

	require.Len(t, fixed.Icons, 2)
	assert.Equal(t, "a", fixed.Icons[0].ID)
	assert.Equal(t, "c", fixed.Icons[1].ID)
	// Input collection is untouched
	assert.Len(t, c.Icons, 3)

	assert.Empty(t, Run(fixed).DuplicateGroups)
}

func TestApplyFix_HarmonizeStroke(t *testing.T) {
	c := Collection{
		Icons: []Icon{
			{ID: "a", SVGContent: "<svg>a</svg>", StrokeWeight: weight(1)},
			{ID: "b", SVGContent: "<svg>b</svg>", StrokeWeight: weight(1)},
			{ID: "c", SVGContent: "<svg>c</svg>", StrokeWeight: weight(2)},
			{ID: "d", SVGContent: "<svg>d</svg>"},
		},
	}

	fixed, err := ApplyFix(c, FixHarmonizeStroke, nil)
	require.NoError(t, err)

	assert.Equal(t, 1.0, *fixed.Icons[2].StrokeWeight)
	assert.Nil(t, fixed.Icons[3].StrokeWeight, "undefined weights stay undefined")
	assert.Nil(t, Run(fixed).MixedStroke)
}

func TestApplyFix_AlignGrid(t *testing.T) {
	c := Collection{
		Icons: []Icon{
			{ID: "a", SVGContent: "<svg>a</svg>", GridAligned: aligned(false)},
			{ID: "b", SVGContent: "<svg>b</svg>", GridAligned: aligned(false)},
		},
	}

	t.Run("Subset", func(t *testing.T) {
		fixed, err := ApplyFix(c, FixAlignGrid, []string{"a"})
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, Run(fixed).OffGridIDs)
	})

	t.Run("All", func(t *testing.T) {
		fixed, err := ApplyFix(c, FixAlignGrid, nil)
		require.NoError(t, err)
		assert.Empty(t, Run(fixed).OffGridIDs)
	})
}

func TestApplyFix_Unknown(t *testing.T) {
	_, err := ApplyFix(Collection{}, "polish", nil)
	assert.Error(t, err)
}
