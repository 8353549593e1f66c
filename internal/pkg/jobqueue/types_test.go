package jobqueue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobType(t *testing.T) {
	tests := []struct {
		name     string
		jobType  JobType
		expected string
	}{
		{"Archive Delivery", JobTypeArchiveDelivery, "archive_delivery"},
		{"Collection Audit", JobTypeCollectionAudit, "collection_audit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.jobType))
		})
	}
}

func TestJobStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   JobStatus
		expected string
	}{
		{"Pending", JobStatusPending, "pending"},
		{"Processing", JobStatusProcessing, "processing"},
		{"Completed", JobStatusCompleted, "completed"},
		{"Failed", JobStatusFailed, "failed"},
		{"Retrying", JobStatusRetrying, "retrying"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.status))
		})
	}
}

func TestJob_IsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		job       *Job
		retryable bool
	}{
		{
			name: "Failed job with retries remaining",
			job: &Job{
				Status:     JobStatusFailed,
				RetryCount: 1,
				MaxRetries: 3,
			},
			retryable: true,
		},
		{
			name: "Failed job with no retries remaining",
			job: &Job{
				Status:     JobStatusFailed,
				RetryCount: 3,
				MaxRetries: 3,
			},
			retryable: false,
		},
		{
			name: "Completed job",
			job: &Job{
				Status:     JobStatusCompleted,
				RetryCount: 1,
				MaxRetries: 3,
			},
			retryable: false,
		},
		{
			name: "Pending job",
			job: &Job{
				Status:     JobStatusPending,
				RetryCount: 0,
				MaxRetries: 3,
			},
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, tt.job.IsRetryable())
		})
	}
}

func TestJob_MarkAsProcessing(t *testing.T) {
	job := &Job{
		Status: JobStatusPending,
	}

	beforeTime := time.Now()
	job.MarkAsProcessing()
	afterTime := time.Now()

	assert.Equal(t, JobStatusProcessing, job.Status)
	assert.True(t, job.UpdatedAt.After(beforeTime) || job.UpdatedAt.Equal(beforeTime))
	assert.True(t, job.UpdatedAt.Before(afterTime) || job.UpdatedAt.Equal(afterTime))
	assert.NotNil(t, job.ProcessedAt)
}

func TestJob_MarkAsCompleted(t *testing.T) {
	job := &Job{
		Status:   JobStatusProcessing,
		ErrorMsg: "some error",
	}

	job.MarkAsCompleted()

	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.NotNil(t, job.CompletedAt)
	assert.Empty(t, job.ErrorMsg)
}

func TestJob_MarkAsFailed(t *testing.T) {
	job := &Job{
		Status:     JobStatusProcessing,
		RetryCount: 1,
	}

	errorMsg := "processing failed"
	job.MarkAsFailed(errorMsg)

	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, errorMsg, job.ErrorMsg)
	assert.Equal(t, 2, job.RetryCount)
}

func TestJob_MarkAsRetrying(t *testing.T) {
	job := &Job{
		Status: JobStatusFailed,
	}

	job.MarkAsRetrying()

	assert.Equal(t, JobStatusRetrying, job.Status)
}

func TestArchiveDeliveryJobPayload_ToMap(t *testing.T) {
	payload := ArchiveDeliveryJobPayload{
		BatchID:          "batch-uuid-123",
		ArchiveSizeBytes: 7429,
		ProcessedCount:   2,
	}

	result := payload.ToMap()

	expected := map[string]interface{}{
		"batch_id":           "batch-uuid-123",
		"archive_size_bytes": int64(7429),
		"processed_count":    2,
	}

	assert.Equal(t, expected, result)
}

func TestArchiveDeliveryJobPayloadFromMap(t *testing.T) {
	data := map[string]interface{}{
		"batch_id":           "batch-uuid-123",
		"archive_size_bytes": float64(7429), // JSON numbers are float64
		"processed_count":    float64(2),
	}

	payload, err := ArchiveDeliveryJobPayloadFromMap(data)
	require.NoError(t, err)

	expected := &ArchiveDeliveryJobPayload{
		BatchID:          "batch-uuid-123",
		ArchiveSizeBytes: 7429,
		ProcessedCount:   2,
	}

	assert.Equal(t, expected, payload)
}

func TestArchiveDeliveryJobPayloadFromMap_InvalidData(t *testing.T) {
	// Channels can't be marshaled to JSON
	data := map[string]interface{}{
		"batch_id": make(chan int),
	}

	payload, err := ArchiveDeliveryJobPayloadFromMap(data)
	assert.Error(t, err)
	assert.Nil(t, payload)
}

func TestCollectionAuditJobPayloadFromMap(t *testing.T) {
	data := map[string]interface{}{
		"collection_id": float64(42),
	}

	payload, err := CollectionAuditJobPayloadFromMap(data)
	require.NoError(t, err)
	assert.Equal(t, &CollectionAuditJobPayload{CollectionID: 42}, payload)
}

func TestPayloadRoundTrip(t *testing.T) {
	t.Run("ArchiveDeliveryJobPayload", func(t *testing.T) {
		original := ArchiveDeliveryJobPayload{
			BatchID:          "round-trip-batch",
			ArchiveSizeBytes: 31200,
			ProcessedCount:   12,
		}

		// Convert to map and back
		data := original.ToMap()
		result, err := ArchiveDeliveryJobPayloadFromMap(data)
		require.NoError(t, err)

		assert.Equal(t, &original, result)
	})

	t.Run("CollectionAuditJobPayload", func(t *testing.T) {
		original := CollectionAuditJobPayload{
			CollectionID: 7,
		}

		data := original.ToMap()
		result, err := CollectionAuditJobPayloadFromMap(data)
		require.NoError(t, err)

		assert.Equal(t, &original, result)
	})
}

func TestJobJSONSerialization(t *testing.T) {
	now := time.Now()
	processedAt := now.Add(time.Minute)
	completedAt := now.Add(2 * time.Minute)

	job := &Job{
		ID:          "test-job-123",
		Type:        JobTypeArchiveDelivery,
		Status:      JobStatusCompleted,
		Payload:     map[string]interface{}{"test": "data"},
		CreatedAt:   now,
		UpdatedAt:   now.Add(time.Second),
		ProcessedAt: &processedAt,
		CompletedAt: &completedAt,
		ErrorMsg:    "",
		RetryCount:  0,
		MaxRetries:  3,
	}

	// Marshal to JSON
	jsonData, err := json.Marshal(job)
	require.NoError(t, err)

	// Unmarshal back
	var result Job
	err = json.Unmarshal(jsonData, &result)
	require.NoError(t, err)

	// Compare (times may have slight precision differences)
	assert.Equal(t, job.ID, result.ID)
	assert.Equal(t, job.Type, result.Type)
	assert.Equal(t, job.Status, result.Status)
	assert.Equal(t, job.Payload, result.Payload)
	assert.Equal(t, job.ErrorMsg, result.ErrorMsg)
	assert.Equal(t, job.RetryCount, result.RetryCount)
	assert.Equal(t, job.MaxRetries, result.MaxRetries)

	// Time comparisons (allowing for minor precision differences)
	assert.True(t, job.CreatedAt.Sub(result.CreatedAt) < time.Millisecond)
	assert.True(t, job.UpdatedAt.Sub(result.UpdatedAt) < time.Millisecond)
	assert.NotNil(t, result.ProcessedAt)
	assert.NotNil(t, result.CompletedAt)
}
