package exporter

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// BatchStatus is the lifecycle state of one export run
type BatchStatus string

const (
	BatchIdle      BatchStatus = "idle"
	BatchRunning   BatchStatus = "running"
	BatchCompleted BatchStatus = "completed"
)

// Per-tick progress increment range for one item
const (
	tickIncrementMin = 8
	tickIncrementMax = 20
)

// BatchState is a point-in-time snapshot of a running batch
type BatchState struct {
	PerItemProgress map[string]int `json:"per_item_progress"`
	OverallProgress int            `json:"overall_progress"`
	Running         bool           `json:"running"`
}

// ExportResult is the terminal record of one batch run, emitted exactly
// once when every item reaches completion.
type ExportResult struct {
	BatchID          string `json:"batch_id"`
	Success          bool   `json:"success"`
	ProcessedCount   int    `json:"processed_count"`
	TotalCount       int    `json:"total_count"`
	ArchiveSizeBytes int64  `json:"archive_size_bytes"`
}

// Batch tracks per-item progress for one export run. All items advance on
// a shared tick; there is no per-item task and no partial-failure path.
type Batch struct {
	ID string

	mu          sync.Mutex
	status      BatchStatus
	itemIDs     []string
	progress    map[string]int
	archiveSize int64
	rng         *rand.Rand
	result      *ExportResult
	emitted     bool
}

// BatchOption configures a batch at start time
type BatchOption func(*Batch)

// WithRandSource injects a seedable random source so tests can drive the
// batch to completion deterministically.
func WithRandSource(src rand.Source) BatchOption {
	return func(b *Batch) {
		b.rng = rand.New(src)
	}
}

// StartBatch validates the selection and configuration and returns a
// running batch with one progress counter per selected asset. It fails
// with ErrInvalidConfiguration on an empty selection or a config with no
// viable enabled format; no state is created in that case.
func StartBatch(selection []Asset, cfg *ExportConfig, opts ...BatchOption) (*Batch, error) {
	if len(selection) == 0 {
		return nil, fmt.Errorf("%w: empty selection", ErrInvalidConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// The archive size reported on completion is the last aggregate
	// computed before start.
	report := Aggregate(selection, cfg)

	b := &Batch{
		ID:          uuid.New().String(),
		status:      BatchRunning,
		itemIDs:     make([]string, 0, len(selection)),
		progress:    make(map[string]int, len(selection)),
		archiveSize: report.TotalBytes,
	}
	for _, asset := range selection {
		b.itemIDs = append(b.itemIDs, asset.ID)
		b.progress[asset.ID] = 0
	}

	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return b, nil
}

// Tick advances every unfinished item by a pseudo-random increment in
// [8,20], clamped to 100, and returns the resulting snapshot. Once the
// overall progress reaches 100 the batch transitions to completed and
// further ticks are no-ops.
func (b *Batch) Tick() BatchState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status != BatchRunning {
		return b.snapshotLocked()
	}

	for _, id := range b.itemIDs {
		p := b.progress[id]
		if p >= 100 {
			continue
		}
		p += tickIncrementMin + b.rng.Intn(tickIncrementMax-tickIncrementMin+1)
		if p > 100 {
			p = 100
		}
		b.progress[id] = p
	}

	if b.overallLocked() >= 100 {
		b.status = BatchCompleted
		b.result = &ExportResult{
			BatchID:          b.ID,
			Success:          true,
			ProcessedCount:   len(b.itemIDs),
			TotalCount:       len(b.itemIDs),
			ArchiveSizeBytes: b.archiveSize,
		}
	}

	return b.snapshotLocked()
}

// Reset aborts a running batch, discarding all counters. No result is
// emitted. Resetting an idle or completed batch has no effect.
func (b *Batch) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status != BatchRunning {
		return
	}
	b.status = BatchIdle
	for _, id := range b.itemIDs {
		b.progress[id] = 0
	}
}

// Status returns the current lifecycle state
func (b *Batch) Status() BatchStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// Snapshot returns the current progress state
func (b *Batch) Snapshot() BatchState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// TakeResult hands out the terminal result exactly once. The second and
// any later call returns (nil, false), as does any call before the batch
// has completed.
func (b *Batch) TakeResult() (*ExportResult, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status != BatchCompleted || b.emitted {
		return nil, false
	}
	b.emitted = true
	return b.result, true
}

func (b *Batch) overallLocked() int {
	if len(b.itemIDs) == 0 {
		return 0
	}
	sum := 0
	for _, id := range b.itemIDs {
		sum += b.progress[id]
	}
	// floor(sum / (itemCount × 100) × 100)
	return sum / len(b.itemIDs)
}

func (b *Batch) snapshotLocked() BatchState {
	perItem := make(map[string]int, len(b.progress))
	for id, p := range b.progress {
		perItem[id] = p
	}
	return BatchState{
		PerItemProgress: perItem,
		OverallProgress: b.overallLocked(),
		Running:         b.status == BatchRunning,
	}
}
