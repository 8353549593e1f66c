package repository

import (
	"github.com/guidingv/iconify-style-consistent-icons/app/models"
	"gorm.io/gorm"
)

// exportRecordRepository implements the ExportRecordRepository interface
type exportRecordRepository struct {
	db *gorm.DB
}

// NewExportRecordRepository creates a new export record repository instance
func NewExportRecordRepository(db *gorm.DB) ExportRecordRepository {
	return &exportRecordRepository{db: db}
}

// Create persists a new export record
func (r *exportRecordRepository) Create(record *models.ExportRecord) error {
	return r.db.Create(record).Error
}

// GetByBatchID retrieves an export record by its batch UUID
func (r *exportRecordRepository) GetByBatchID(batchID string) (*models.ExportRecord, error) {
	return models.FindExportRecordByBatchID(r.db, batchID)
}

// Update updates an existing export record
func (r *exportRecordRepository) Update(record *models.ExportRecord) error {
	return r.db.Save(record).Error
}

// List retrieves export records with pagination, newest first
func (r *exportRecordRepository) List(offset, limit int) ([]models.ExportRecord, error) {
	var records []models.ExportRecord
	err := r.db.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	return records, err
}

// Count returns the total number of export records
func (r *exportRecordRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.ExportRecord{}).Count(&count).Error
	return count, err
}
