package exporter

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBatch(t *testing.T, selection []Asset, seed int64) *Batch {
	t.Helper()
	batch, err := StartBatch(selection, DefaultConfig(), WithRandSource(rand.NewSource(seed)))
	require.NoError(t, err)
	return batch
}

func TestStartBatch_InvalidConfiguration(t *testing.T) {
	selection := testSelection()

	t.Run("Empty selection", func(t *testing.T) {
		_, err := StartBatch(nil, DefaultConfig())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	})

	t.Run("No enabled format", func(t *testing.T) {
		cfg := &ExportConfig{}
		_, err := StartBatch(selection, cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	})

	t.Run("PNG without sizes", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Formats.PNG.Sizes = nil
		_, err := StartBatch(selection, cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidConfiguration))
	})
}

func TestBatch_InitialState(t *testing.T) {
	batch := newTestBatch(t, testSelection(), 1)

	state := batch.Snapshot()
	assert.True(t, state.Running)
	assert.Equal(t, 0, state.OverallProgress)
	assert.Len(t, state.PerItemProgress, 2)
	for id, p := range state.PerItemProgress {
		assert.Zerof(t, p, "item %s should start at zero", id)
	}
}

func TestBatch_TickAdvancesWithinRange(t *testing.T) {
	batch := newTestBatch(t, testSelection(), 7)

	state := batch.Tick()
	for id, p := range state.PerItemProgress {
		assert.GreaterOrEqualf(t, p, 8, "item %s advanced too little", id)
		assert.LessOrEqualf(t, p, 20, "item %s advanced too much", id)
	}
}

func TestBatch_CompletesInFiniteTicks(t *testing.T) {
	selection := []Asset{
		{ID: "a", ByteSize: 1000},
		{ID: "b", ByteSize: 2000},
		{ID: "c", ByteSize: 3000},
	}
	batch := newTestBatch(t, selection, 42)

	// Minimum increment is 8, so 13 ticks always suffice
	var state BatchState
	for i := 0; i < 13; i++ {
		state = batch.Tick()
	}

	assert.Equal(t, 100, state.OverallProgress)
	assert.False(t, state.Running)
	assert.Equal(t, BatchCompleted, batch.Status())
	for id, p := range state.PerItemProgress {
		assert.Equalf(t, 100, p, "item %s must finish at 100", id)
	}
}

func TestBatch_TickAfterCompletionIsNoop(t *testing.T) {
	batch := newTestBatch(t, testSelection(), 3)
	for i := 0; i < 13; i++ {
		batch.Tick()
	}
	require.Equal(t, BatchCompleted, batch.Status())

	before := batch.Snapshot()
	after := batch.Tick()
	assert.Equal(t, before, after)
}

func TestBatch_ResultFiresExactlyOnce(t *testing.T) {
	selection := testSelection()
	batch := newTestBatch(t, selection, 99)

	_, ok := batch.TakeResult()
	assert.False(t, ok, "no result before completion")

	for i := 0; i < 13; i++ {
		batch.Tick()
	}

	result, ok := batch.TakeResult()
	require.True(t, ok)
	assert.Equal(t, batch.ID, result.BatchID)
	assert.True(t, result.Success)
	assert.Equal(t, len(selection), result.ProcessedCount)
	assert.Equal(t, len(selection), result.TotalCount)

	// The archive size is the aggregate computed before start
	expected := Aggregate(selection, DefaultConfig()).TotalBytes
	assert.Equal(t, expected, result.ArchiveSizeBytes)

	_, ok = batch.TakeResult()
	assert.False(t, ok, "result must not fire twice")
}

func TestBatch_DeterministicWithSeededSource(t *testing.T) {
	first := newTestBatch(t, testSelection(), 1234)
	second := newTestBatch(t, testSelection(), 1234)

	for i := 0; i < 5; i++ {
		a := first.Tick()
		b := second.Tick()
		assert.Equal(t, a, b)
	}
}

func TestBatch_Reset(t *testing.T) {
	batch := newTestBatch(t, testSelection(), 5)
	batch.Tick()
	batch.Tick()

	batch.Reset()

	assert.Equal(t, BatchIdle, batch.Status())
	state := batch.Snapshot()
	assert.False(t, state.Running)
	assert.Equal(t, 0, state.OverallProgress)
	for id, p := range state.PerItemProgress {
		assert.Zerof(t, p, "item %s should be discarded to zero", id)
	}

	_, ok := batch.TakeResult()
	assert.False(t, ok, "reset must not emit a result")

	// Ticking an idle batch does nothing
	after := batch.Tick()
	assert.Equal(t, state, after)
}

func TestBatch_ResetAfterCompletionIsNoop(t *testing.T) {
	batch := newTestBatch(t, testSelection(), 8)
	for i := 0; i < 13; i++ {
		batch.Tick()
	}
	require.Equal(t, BatchCompleted, batch.Status())

	batch.Reset()
	assert.Equal(t, BatchCompleted, batch.Status())
}

func TestNamingFileName(t *testing.T) {
	tests := []struct {
		name     string
		naming   NamingConfig
		icon     string
		size     string
		theme    string
		expected string
	}{
		{"Name and size", NamingConfig{Pattern: "{name}-{size}"}, "ArrowUp", "24", "", "ArrowUp-24"},
		{"Lowercase", NamingConfig{Pattern: "{name}-{size}", Lowercase: true}, "ArrowUp", "24", "", "arrowup-24"},
		{"Order independent", NamingConfig{Pattern: "{theme}/{size}/{name}"}, "home", "16", "dark", "dark/16/home"},
		{"Empty pattern falls back to name", NamingConfig{}, "home", "16", "", "home"},
		{"Unknown placeholder kept", NamingConfig{Pattern: "{name}.{ext}"}, "home", "", "", "home.{ext}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.naming.FileName(tt.icon, tt.size, tt.theme))
		})
	}
}
