package jobqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/guidingv/iconify-style-consistent-icons/app/models"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/database"
	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/delivery"
)

// archiveManifest is the document uploaded for a completed export batch
type archiveManifest struct {
	BatchID          string    `json:"batch_id"`
	ProcessedCount   int       `json:"processed_count"`
	TotalCount       int       `json:"total_count"`
	ArchiveSizeBytes int64     `json:"archive_size_bytes"`
	CompletedAt      time.Time `json:"completed_at"`
}

// processArchiveDeliveryJob uploads the manifest of a completed export
// batch and stores the resulting object key on the export record.
func (q *Queue) processArchiveDeliveryJob(ctx context.Context, job *Job) error {
	// Parse the job payload
	payload, err := ArchiveDeliveryJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("failed to parse archive delivery job payload: %w", err)
	}

	log.Infof("[Delivery] Processing delivery job for batch %s", payload.BatchID)

	// Load delivery configuration
	config, err := delivery.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load delivery config: %w", err)
	}

	if !config.IsEnabled() {
		// Nothing to upload when delivery is switched off; the export
		// record stays valid without an archive key.
		log.Infof("[Delivery] Delivery disabled, skipping batch %s", payload.BatchID)
		return nil
	}

	// Create S3 client
	client, err := delivery.NewClient(config)
	if err != nil {
		return fmt.Errorf("failed to create delivery client: %w", err)
	}

	// Get database connection
	db := database.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	// Get the export record
	record, err := models.FindExportRecordByBatchID(db, payload.BatchID)
	if err != nil {
		return fmt.Errorf("failed to find export record for batch %s: %w", payload.BatchID, err)
	}

	manifest, err := json.Marshal(archiveManifest{
		BatchID:          record.BatchID,
		ProcessedCount:   record.ProcessedCount,
		TotalCount:       record.TotalCount,
		ArchiveSizeBytes: record.ArchiveSizeBytes,
		CompletedAt:      record.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	objectKey := config.GetObjectKey(record.BatchID, record.CreatedAt)

	log.Infof("[Delivery] Uploading manifest for batch %s as %s", record.BatchID, objectKey)
	result, err := client.UploadManifest(objectKey, manifest)
	if err != nil {
		return fmt.Errorf("failed to upload manifest: %w", err)
	}

	// Store the object key on the record
	record.ArchiveKey = result.ObjectKey
	if err := db.Save(record).Error; err != nil {
		return fmt.Errorf("failed to update export record: %w", err)
	}

	log.Infof("[Delivery] Successfully delivered batch %s to s3://%s/%s",
		record.BatchID, result.BucketName, result.ObjectKey)

	return nil
}
