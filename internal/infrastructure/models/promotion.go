package models

import (
	"time"
)

type Promotion struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Title     string  `gorm:"type:varchar(255);not null"`
	Subtitle  *string `gorm:"type:varchar(255)"`
	Type      string  `gorm:"type:varchar(20);not null"`
	MediaURL  string  `gorm:"column:media_url;type:varchar(255);not null"`
	StartDate time.Time
	EndDate   time.Time
	Status    string `gorm:"type:varchar(20);not null;default:'Active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
