package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Role represents user roles. Each identity carries exactly one role.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMerchant Role = "merchant"
	RoleRider    Role = "rider"
	RoleCustomer Role = "customer"
)

// UserStatus represents identity account status
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// KYCStatus represents identity-level KYC verification status
type KYCStatus string

const (
	KYCPending  KYCStatus = "pending"
	KYCVerified KYCStatus = "verified"
	KYCRejected KYCStatus = "rejected"
)

// User represents the per-person identity record shared across all roles.
// Phone is the primary natural key for cross-role lookup.
type User struct {
	ID           int64       `json:"id"`
	Phone        string      `json:"phone"`
	Email        null.String `json:"email,omitempty"`
	Name         null.String `json:"name,omitempty"`
	Address      null.String `json:"address,omitempty"`
	Role         Role        `json:"role"`
	Status       UserStatus  `json:"status"`
	KYCStatus    KYCStatus   `json:"kyc_status"`
	Aadhaar      null.String `json:"aadhaar,omitempty"`
	ProfileImage null.String `json:"profile_image,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Contact is the lookup key pair for identity reconciliation. Phone is
// required; email participates in the match only when present.
type Contact struct {
	Phone string
	Email null.String
}

// IdentityLink locates the identity behind a profile record. Historical
// rows may lack the user_id linkage, so status propagation resolves the
// identity through a fallback chain: user id first, else phone, else email.
type IdentityLink struct {
	UserID null.Int64
	Phone  string
	Email  null.String
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role   string
	Status string
	Search string
}

// SafeUserStatus clamps arbitrary input to a valid identity status,
// defaulting to active.
func SafeUserStatus(s string) UserStatus {
	switch UserStatus(s) {
	case UserStatusInactive, UserStatusSuspended:
		return UserStatus(s)
	default:
		return UserStatusActive
	}
}
