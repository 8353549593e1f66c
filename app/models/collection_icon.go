package models

import "time"

// CollectionIcon is the ordered join table between collections and icons.
// Position keeps the caller-defined icon order stable across reads.
type CollectionIcon struct {
	CollectionID uint      `gorm:"primaryKey;autoIncrement:false" json:"collection_id"`
	IconID       uint      `gorm:"primaryKey;autoIncrement:false" json:"icon_id"`
	Position     int       `gorm:"type:int;not null;default:0" json:"position"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
