package exporter

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// DefaultTickInterval is the cadence at which all running batches advance.
// Policy parameter, not a correctness requirement.
const DefaultTickInterval = 250 * time.Millisecond

// CompletionFunc receives the terminal result of a finished batch.
// Persistence and delivery happen here, outside the engine.
type CompletionFunc func(ExportResult)

// Runner owns all live batches and advances them on a shared ticker,
// publishing every snapshot to the cache.
type Runner struct {
	interval   time.Duration
	onComplete CompletionFunc

	mu      sync.Mutex
	batches map[string]*Batch
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
}

// NewRunner creates a batch runner. A non-positive interval falls back to
// DefaultTickInterval.
func NewRunner(interval time.Duration, onComplete CompletionFunc) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Runner{
		interval:   interval,
		onComplete: onComplete,
		batches:    make(map[string]*Batch),
	}
}

// Start launches the tick loop
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}
	r.stopCh = make(chan struct{})
	r.running = true

	log.Infof("[Batch] Runner starting (tick interval %s)", r.interval)
	r.wg.Add(1)
	go r.loop()
}

// Stop halts the tick loop. Live batches keep their state and resume if
// the runner is started again.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	close(r.stopCh)
	r.running = false
	r.mu.Unlock()

	r.wg.Wait()
	log.Info("[Batch] Runner stopped")
}

// Launch starts a new batch for the selection and registers it with the
// tick loop. Fails with ErrInvalidConfiguration without creating state.
func (r *Runner) Launch(selection []Asset, cfg *ExportConfig, opts ...BatchOption) (*Batch, error) {
	batch, err := StartBatch(selection, cfg, opts...)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.batches[batch.ID] = batch
	r.mu.Unlock()

	if err := SetBatchState(batch.ID, batch.Snapshot()); err != nil {
		log.Warnf("[Batch] Failed to publish initial state for %s: %v", batch.ID, err)
	}
	if err := SetBatchStatus(batch.ID, BatchRunning); err != nil {
		log.Warnf("[Batch] Failed to publish status for %s: %v", batch.ID, err)
	}

	log.Infof("[Batch] Started batch %s (%d items)", batch.ID, len(batch.itemIDs))
	return batch, nil
}

// Get returns a live batch by id
func (r *Runner) Get(batchID string) (*Batch, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch, ok := r.batches[batchID]
	return batch, ok
}

// Reset aborts a running batch and drops it from the runner. No result is
// emitted. Returns false if the batch is unknown.
func (r *Runner) Reset(batchID string) bool {
	r.mu.Lock()
	batch, ok := r.batches[batchID]
	if ok {
		delete(r.batches, batchID)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}

	batch.Reset()
	if err := SetBatchStatus(batchID, BatchIdle); err != nil {
		log.Warnf("[Batch] Failed to publish reset status for %s: %v", batchID, err)
	}
	log.Infof("[Batch] Reset batch %s", batchID)
	return true
}

func (r *Runner) loop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.tickAll()
		}
	}
}

func (r *Runner) tickAll() {
	r.mu.Lock()
	live := make([]*Batch, 0, len(r.batches))
	for _, b := range r.batches {
		live = append(live, b)
	}
	r.mu.Unlock()

	for _, batch := range live {
		state := batch.Tick()
		if err := SetBatchState(batch.ID, state); err != nil {
			log.Warnf("[Batch] Failed to publish state for %s: %v", batch.ID, err)
		}

		result, ok := batch.TakeResult()
		if !ok {
			continue
		}

		if err := SetBatchStatus(batch.ID, BatchCompleted); err != nil {
			log.Warnf("[Batch] Failed to publish completed status for %s: %v", batch.ID, err)
		}
		log.Infof("[Batch] Batch %s completed (%d/%d items, %d bytes)",
			result.BatchID, result.ProcessedCount, result.TotalCount, result.ArchiveSizeBytes)

		if r.onComplete != nil {
			r.onComplete(*result)
		}

		r.mu.Lock()
		delete(r.batches, batch.ID)
		r.mu.Unlock()
	}
}

var (
	globalRunner *Runner
	runnerOnce   sync.Once
)

// SetupRunner initializes and starts the global batch runner
func SetupRunner(interval time.Duration, onComplete CompletionFunc) *Runner {
	runnerOnce.Do(func() {
		globalRunner = NewRunner(interval, onComplete)
		globalRunner.Start()
	})
	return globalRunner
}

// GetRunner returns the global batch runner instance
func GetRunner() *Runner {
	if globalRunner == nil {
		panic("Batch runner not initialized. Call SetupRunner first.")
	}
	return globalRunner
}
