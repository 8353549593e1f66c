package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guidingv/iconify-style-consistent-icons/internal/pkg/shortener"
)

type Collection struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name" validate:"required,min=1,max=255"`
	Description string         `gorm:"type:text" json:"description"`
	IsPublic    bool           `gorm:"default:false" json:"is_public"`
	ShareLink   string         `gorm:"type:varchar(255) CHARACTER SET utf8 COLLATE utf8_bin;uniqueIndex" json:"share_link"`
	ViewCount   int            `gorm:"default:0" json:"view_count"`
	Icons       []Icon         `gorm:"many2many:collection_icons;" json:"icons,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Collection) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

// IncrementViewCount erhöht den Zähler für Aufrufe
func (c *Collection) IncrementViewCount(db *gorm.DB) error {
	return db.Model(c).Update("view_count", c.ViewCount+1).Error
}

// TogglePublic ändert den öffentlichen Status der Sammlung
func (c *Collection) TogglePublic(db *gorm.DB) error {
	c.IsPublic = !c.IsPublic
	return db.Model(c).Update("is_public", c.IsPublic).Error
}

// AddIcon appends an icon at the end of the collection order
func (c *Collection) AddIcon(db *gorm.DB, iconID uint) error {
	var maxPos int
	db.Model(&CollectionIcon{}).Where("collection_id = ?", c.ID).
		Select("COALESCE(MAX(position), 0)").Scan(&maxPos)
	return db.Create(&CollectionIcon{
		CollectionID: c.ID,
		IconID:       iconID,
		Position:     maxPos + 1,
	}).Error
}

// RemoveIcon entfernt ein Icon aus der Sammlung
func (c *Collection) RemoveIcon(db *gorm.DB, iconID uint) error {
	return db.Exec("DELETE FROM collection_icons WHERE collection_id = ? AND icon_id = ?", c.ID, iconID).Error
}

// BeforeCreate wird vor dem Erstellen eines neuen Datensatzes aufgerufen
func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ShareLink == "" {
		// Temporärer ShareLink für den Insert
		c.ShareLink = "temp-" + uuid.New().String()[:8]
	}
	return nil
}

// AfterCreate wird nach dem Erstellen eines neuen Datensatzes aufgerufen
func (c *Collection) AfterCreate(tx *gorm.DB) error {
	if len(c.ShareLink) >= 5 && c.ShareLink[:5] == "temp-" {
		c.ShareLink = shortener.EncodeID(c.ID)
		return tx.Model(c).Update("share_link", c.ShareLink).Error
	}
	return nil
}
