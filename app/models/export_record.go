package models

import (
	"time"

	"gorm.io/gorm"
)

// ExportRecord persists the terminal result of one export batch run.
type ExportRecord struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	BatchID          string         `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"batch_id"`
	Success          bool           `gorm:"default:false" json:"success"`
	ProcessedCount   int            `gorm:"type:int;not null" json:"processed_count"`
	TotalCount       int            `gorm:"type:int;not null" json:"total_count"`
	ArchiveSizeBytes int64          `gorm:"type:bigint;not null" json:"archive_size_bytes"`
	ArchiveKey       string         `gorm:"type:varchar(255)" json:"archive_key,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// FindExportRecordByBatchID retrieves a persisted export result by batch UUID
func FindExportRecordByBatchID(db *gorm.DB, batchID string) (*ExportRecord, error) {
	var record ExportRecord
	result := db.Where("batch_id = ?", batchID).First(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	return &record, nil
}
