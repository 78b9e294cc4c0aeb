package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// OnlineStatus represents a rider's availability toggle
type OnlineStatus string

const (
	OnlineStatusOnline  OnlineStatus = "online"
	OnlineStatusOffline OnlineStatus = "offline"
)

// ReviewStatus represents rider KYC and approval review outcomes.
// ApprovalStatus gates order eligibility and is distinct from KYC.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// DefaultVehicle is assigned when a rider is created without a vehicle type.
const DefaultVehicle = "Bike"

// Rider represents a delivery rider profile record referencing one identity.
type Rider struct {
	ID             int64        `json:"id"`
	UserID         int64        `json:"user_id"`
	Vehicle        string       `json:"vehicle"`
	VehicleNumber  null.String  `json:"vehicle_number,omitempty"`
	LicenseNo      null.String  `json:"license_no,omitempty"`
	Aadhaar        null.String  `json:"aadhaar,omitempty"`
	BankName       null.String  `json:"bank_name,omitempty"`
	AccountNo      null.String  `json:"account_no,omitempty"`
	IFSC           null.String  `json:"ifsc,omitempty"`
	UPI            null.String  `json:"upi,omitempty"`
	Area           null.String  `json:"area,omitempty"`
	OnlineStatus   OnlineStatus `json:"online_status"`
	KYCStatus      ReviewStatus `json:"kyc_status"`
	ApprovalStatus ReviewStatus `json:"approval_status"`
	RejectedReason null.String  `json:"rejected_reason,omitempty"`
	ApprovedAt     null.Time    `json:"approved_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// RiderInput represents input for creating a rider
type RiderInput struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	Vehicle        string `json:"vehicle"`
	VehicleNo      string `json:"vehicle_no"`
	LicenseNo      string `json:"license_no"`
	Aadhaar        string `json:"aadhaar"`
	BankName       string `json:"bank_name"`
	AccountNo      string `json:"account_no"`
	IFSC           string `json:"ifsc"`
	UPI            string `json:"upi"`
	Area           string `json:"area"`
	Online         bool   `json:"online"`
	Status         string `json:"status"`
	KYCStatus      string `json:"kyc_status"`
	ApprovalStatus string `json:"approval_status"`
}

// RiderProfilePatch carries the non-bank fields an admin may patch. Only
// valid slots are applied; absent slots leave stored values untouched.
type RiderProfilePatch struct {
	Name          null.String `json:"name"`
	Address       null.String `json:"address"`
	Vehicle       null.String `json:"vehicle"`
	VehicleNumber null.String `json:"vehicle_no"`
	LicenseNo     null.String `json:"license_no"`
	Aadhaar       null.String `json:"aadhaar"`
	Area          null.String `json:"area"`
}

// RiderBankPatch carries the bank/payout fields an admin may patch.
type RiderBankPatch struct {
	BankName  null.String `json:"bank_name"`
	AccountNo null.String `json:"account_no"`
	IFSC      null.String `json:"ifsc"`
	UPI       null.String `json:"upi"`
}

// RiderFilter narrows admin rider listings. Invalid enum values are treated
// as no filter rather than an error.
type RiderFilter struct {
	Q        string
	Status   string
	KYC      string
	Approval string
	Online   null.Bool
	Page     int
	PageSize int
}

// RiderRow is the joined identity+profile projection returned by listings.
type RiderRow struct {
	UserID         int64        `json:"user_id"`
	Name           null.String  `json:"name"`
	Phone          string       `json:"phone"`
	Email          null.String  `json:"email"`
	Address        null.String  `json:"address"`
	UserStatus     UserStatus   `json:"user_status"`
	UserCreatedAt  time.Time    `json:"user_created_at"`
	RiderID        null.Int64   `json:"rider_id"`
	Vehicle        null.String  `json:"vehicle"`
	VehicleNumber  null.String  `json:"vehicle_number"`
	LicenseNo      null.String  `json:"license_no"`
	Aadhaar        null.String  `json:"aadhaar"`
	BankName       null.String  `json:"bank_name"`
	AccountNo      null.String  `json:"account_no"`
	IFSC           null.String  `json:"ifsc"`
	UPI            null.String  `json:"upi"`
	Area           null.String  `json:"area"`
	OnlineStatus   null.String  `json:"online_status"`
	KYCStatus      null.String  `json:"kyc_status"`
	ApprovalStatus null.String  `json:"approval_status"`
	ApprovedAt     null.Time    `json:"approved_at"`
	RiderCreatedAt null.Time    `json:"rider_created_at"`
}

// ValidReviewStatus reports whether s is a recognized review status.
func ValidReviewStatus(s string) bool {
	switch ReviewStatus(s) {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}
