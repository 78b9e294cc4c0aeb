package entities

import (
	"fmt"
	"time"

	"github.com/volatiletech/null/v8"
)

// MerchantStatus represents the operational status of a merchant profile.
// Identity status remains authoritative for account access.
type MerchantStatus string

const (
	MerchantStatusActive   MerchantStatus = "active"
	MerchantStatusInactive MerchantStatus = "inactive"
)

// MerchantCodePrefix prefixes every generated merchant code.
const MerchantCodePrefix = "RST"

// Merchant represents a merchant profile record referencing one identity.
type Merchant struct {
	ID           int64          `json:"id"`
	UserID       null.Int64     `json:"user_id,omitempty"`
	MerchantCode null.String    `json:"merchant_code,omitempty"`
	StoreName    string         `json:"store_name"`
	OwnerName    string         `json:"owner_name"`
	Phone        string         `json:"phone"`
	Email        null.String    `json:"email,omitempty"`
	Address      null.String    `json:"address,omitempty"`
	City         string         `json:"city"`
	Category     string         `json:"category"`
	GST          null.String    `json:"gst,omitempty"`
	FSSAI        string         `json:"fssai"`
	Status       MerchantStatus `json:"status"`
	ApprovedAt   null.Time      `json:"approved_at,omitempty"`
	IsOpen       bool           `json:"is_open"`
	ProfileImage null.String    `json:"profile_image,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// MerchantInput represents input for creating or fully updating a merchant
type MerchantInput struct {
	StoreName string `json:"store_name"`
	OwnerName string `json:"owner_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Category  string `json:"category"`
	GST       string `json:"gst"`
	FSSAI     string `json:"fssai"`
	Status    string `json:"status"`
}

// MerchantFilter narrows admin merchant listings.
type MerchantFilter struct {
	Q        string
	City     string
	Category string
	Status   string
	Page     int
	PageSize int
}

// MerchantConflicts reports which unique merchant fields are already taken.
type MerchantConflicts struct {
	Phone bool
	Email bool
	GST   bool
	FSSAI bool
}

// SafeMerchantStatus clamps arbitrary input to a valid merchant status,
// defaulting to active.
func SafeMerchantStatus(s string) MerchantStatus {
	if MerchantStatus(s) == MerchantStatusInactive {
		return MerchantStatusInactive
	}
	return MerchantStatusActive
}

// MakeMerchantCode derives the human-readable merchant code from the row id,
// e.g. RST-000123.
func MakeMerchantCode(id int64) string {
	return fmt.Sprintf("%s-%06d", MerchantCodePrefix, id)
}
