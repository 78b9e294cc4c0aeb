package models

import (
	"time"
)

// DeliveryBoy is the rider profile table. The table name is kept for
// compatibility with existing data.
type DeliveryBoy struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	UserID         int64   `gorm:"uniqueIndex;not null"`
	Vehicle        string  `gorm:"type:varchar(50);not null;default:'Bike'"`
	VehicleNumber  *string `gorm:"type:varchar(20)"`
	LicenseNo      *string `gorm:"type:varchar(30)"`
	Aadhaar        *string `gorm:"type:varchar(20)"`
	BankName       *string `gorm:"type:varchar(100)"`
	AccountNo      *string `gorm:"type:varchar(30)"`
	IFSC           *string `gorm:"column:ifsc;type:varchar(15)"`
	UPI            *string `gorm:"column:upi;type:varchar(100)"`
	Area           *string `gorm:"type:varchar(100)"`
	OnlineStatus   string  `gorm:"type:varchar(10);not null;default:'offline'"`
	KYCStatus      string  `gorm:"column:kyc_status;type:varchar(10);not null;default:'pending'"`
	ApprovalStatus string  `gorm:"type:varchar(10);not null;default:'pending'"`
	RejectedReason *string `gorm:"type:varchar(255)"`
	ApprovedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName keeps the historical table name.
func (DeliveryBoy) TableName() string {
	return "delivery_boys"
}
