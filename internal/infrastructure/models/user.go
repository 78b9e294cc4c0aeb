package models

import (
	"time"
)

type User struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Phone        string  `gorm:"type:varchar(20);uniqueIndex:uq_users_phone;not null"`
	Email        *string `gorm:"type:varchar(255);uniqueIndex:uq_users_email"`
	Name         *string `gorm:"type:varchar(100)"`
	Address      *string `gorm:"type:varchar(255)"`
	Role         string  `gorm:"type:varchar(20);not null;default:'customer'"`
	Status       string  `gorm:"type:varchar(20);not null;default:'active'"`
	KYCStatus    string  `gorm:"column:kyc_status;type:varchar(20);not null;default:'pending'"`
	Aadhaar      *string `gorm:"type:varchar(20)"`
	ProfileImage *string `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
