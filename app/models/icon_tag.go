package models

import "time"

type IconTag struct {
	IconID    uint      `gorm:"primaryKey;autoIncrement:false" json:"icon_id"`
	TagID     uint      `gorm:"primaryKey;autoIncrement:false" json:"tag_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
