package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeArchiveDelivery JobType = "archive_delivery"
	JobTypeCollectionAudit JobType = "collection_audit"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// ArchiveDeliveryJobPayload contains the payload for delivering a
// finished export archive to object storage
type ArchiveDeliveryJobPayload struct {
	BatchID          string `json:"batch_id"`
	ArchiveSizeBytes int64  `json:"archive_size_bytes"`
	ProcessedCount   int    `json:"processed_count"`
}

// ToMap converts the payload to a map for storage
func (p ArchiveDeliveryJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"batch_id":           p.BatchID,
		"archive_size_bytes": p.ArchiveSizeBytes,
		"processed_count":    p.ProcessedCount,
	}
}

// FromMap creates a payload from a map
func ArchiveDeliveryJobPayloadFromMap(data map[string]interface{}) (*ArchiveDeliveryJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload ArchiveDeliveryJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// CollectionAuditJobPayload contains the payload for re-auditing a
// collection in the background
type CollectionAuditJobPayload struct {
	CollectionID uint `json:"collection_id"`
}

// ToMap converts the payload to a map for storage
func (p CollectionAuditJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"collection_id": p.CollectionID,
	}
}

// FromMap creates a payload from a map
func CollectionAuditJobPayloadFromMap(data map[string]interface{}) (*CollectionAuditJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload CollectionAuditJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// IsRetryable checks if the job can be retried
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// MarkAsProcessing updates the job status to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.UpdatedAt = now
	j.ProcessedAt = &now
}

// MarkAsCompleted updates the job status to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.UpdatedAt = now
	j.CompletedAt = &now
	j.ErrorMsg = ""
}

// MarkAsFailed updates the job status to failed
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
	j.ErrorMsg = errorMsg
	j.RetryCount++
}

// MarkAsRetrying updates the job status to retrying
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}
