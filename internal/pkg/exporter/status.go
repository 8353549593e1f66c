package exporter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/cache"
)

// Cache key formats for batch progress published by the runner
const (
	BatchStateKeyFormat  = "export:batch:state:%s"  // Format: export:batch:state:<batch-id>
	BatchStatusKeyFormat = "export:batch:status:%s" // Format: export:batch:status:<batch-id>

	batchStatusTTL = 1 * time.Hour
)

// SetBatchState publishes a progress snapshot so API polling never has to
// touch a live batch.
func SetBatchState(batchID string, state BatchState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal batch state: %w", err)
	}
	key := fmt.Sprintf(BatchStateKeyFormat, batchID)
	return cache.Set(key, data, batchStatusTTL)
}

// GetBatchState retrieves the last published progress snapshot
func GetBatchState(batchID string) (*BatchState, error) {
	key := fmt.Sprintf(BatchStateKeyFormat, batchID)
	data, err := cache.Get(key)
	if err != nil {
		return nil, err
	}

	var state BatchState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch state: %w", err)
	}
	return &state, nil
}

// SetBatchStatus publishes the lifecycle state of a batch
func SetBatchStatus(batchID string, status BatchStatus) error {
	key := fmt.Sprintf(BatchStatusKeyFormat, batchID)
	return cache.Set(key, string(status), batchStatusTTL)
}

// GetBatchStatus retrieves the lifecycle state of a batch
func GetBatchStatus(batchID string) (BatchStatus, error) {
	key := fmt.Sprintf(BatchStatusKeyFormat, batchID)
	val, err := cache.Get(key)
	if err != nil {
		return "", err
	}
	return BatchStatus(val), nil
}
