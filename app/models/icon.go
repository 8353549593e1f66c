package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Icon struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	UUID          string   `gorm:"type:char(36) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex;not null" json:"uuid"`
	Name          string   `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	SVGContent    string   `gorm:"type:mediumtext;not null" json:"svg_content" validate:"required"`
	FileSize      int64    `gorm:"type:bigint" json:"file_size"`
	StrokeWeight  *float64 `gorm:"type:decimal(4,2)" json:"stroke_weight,omitempty"`
	GridAligned   *bool    `json:"grid_aligned,omitempty"`
	DownloadCount int      `gorm:"default:0" json:"download_count"`
	// relations
	Tags        []Tag          `gorm:"many2many:icon_tags;" json:"tags,omitempty"`
	Collections []Collection   `gorm:"many2many:collection_icons;" json:"collections,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Icon) Validate() error {
	v := validator.New()

	return v.Struct(i)
}

// BeforeCreate is called before creating a new record
func (i *Icon) BeforeCreate(tx *gorm.DB) error {
	if i.UUID == "" {
		i.UUID = uuid.New().String()
	}
	// Icons are delivered as-is, so the stored byte size is the markup length
	if i.FileSize == 0 {
		i.FileSize = int64(len(i.SVGContent))
	}
	return nil
}

// ContentHash returns the hash of the trimmed SVG markup. Two icons with the
// same hash are considered duplicates by the consistency auditor.
func (i *Icon) ContentHash() string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(i.SVGContent)))
	return hex.EncodeToString(sum[:])
}

// TagNames collects the names of all assigned tags
func (i *Icon) TagNames() []string {
	names := make([]string, 0, len(i.Tags))
	for _, t := range i.Tags {
		names = append(names, t.Name)
	}
	return names
}

// IncrementDownloadCount erhöht den Zähler für Downloads
func (i *Icon) IncrementDownloadCount(db *gorm.DB) error {
	return db.Model(i).Update("download_count", i.DownloadCount+1).Error
}

// FindIconByUUID retrieves an icon by its UUID
func FindIconByUUID(db *gorm.DB, iconUUID string) (*Icon, error) {
	var icon Icon
	result := db.Preload("Tags").Where("uuid = ?", iconUUID).First(&icon)
	if result.Error != nil {
		return nil, result.Error
	}
	return &icon, nil
}
