package models

import (
	"time"
)

type Merchant struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	UserID       *int64  `gorm:"index"`
	MerchantCode *string `gorm:"type:varchar(20);uniqueIndex"`
	StoreName    string  `gorm:"type:varchar(255);not null"`
	OwnerName    string  `gorm:"type:varchar(100);not null"`
	Phone        string  `gorm:"type:varchar(20);uniqueIndex:uq_merchants_phone;not null"`
	Email        *string `gorm:"type:varchar(255);uniqueIndex:uq_merchants_email"`
	Address      *string `gorm:"type:varchar(255)"`
	City         string  `gorm:"type:varchar(100);not null"`
	Category     string  `gorm:"type:varchar(100);not null"`
	GST          *string `gorm:"column:gst;type:varchar(15);uniqueIndex:uq_merchants_gst"`
	FSSAI        string  `gorm:"column:fssai;type:varchar(14);uniqueIndex:uq_merchants_fssai;not null"`
	Status       string  `gorm:"type:varchar(20);not null;default:'active'"`
	ApprovedAt   *time.Time
	IsOpen       bool    `gorm:"not null;default:true"`
	ProfileImage *string `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
