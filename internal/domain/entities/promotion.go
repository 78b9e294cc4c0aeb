package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// PromotionType scopes a banner to the whole marketplace or one storefront.
type PromotionType string

const (
	PromotionGlobal           PromotionType = "Global"
	PromotionMerchantSpecific PromotionType = "Merchant-Specific"
)

// PromotionStatus represents the lifecycle of a banner. Expired banners stay
// on record for reporting.
type PromotionStatus string

const (
	PromotionActive   PromotionStatus = "Active"
	PromotionInactive PromotionStatus = "Inactive"
	PromotionExpired  PromotionStatus = "Expired"
)

// Promotion represents a marketing banner shown in the customer apps.
// MediaURL is stored relative to the upload root.
type Promotion struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Subtitle  null.String     `json:"subtitle,omitempty"`
	Type      PromotionType   `json:"type"`
	MediaURL  string          `json:"media_url"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Status    PromotionStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PromotionInput represents input for creating a promotion. MediaPath is the
// stored path of the uploaded file, filled in by the transport layer.
type PromotionInput struct {
	Title     string
	Subtitle  string
	Type      string
	StartDate string
	EndDate   string
	MediaPath string
}

// PromotionPatch carries the fields of a partial promotion update. Absent
// fields stay untouched.
type PromotionPatch struct {
	Title     null.String
	Subtitle  null.String
	Type      null.String
	Status    null.String
	StartDate null.String
	EndDate   null.String
	MediaPath null.String
}

// IsEmpty reports whether the patch carries no field at all.
func (p PromotionPatch) IsEmpty() bool {
	return !p.Title.Valid && !p.Subtitle.Valid && !p.Type.Valid && !p.Status.Valid &&
		!p.StartDate.Valid && !p.EndDate.Valid && !p.MediaPath.Valid
}

// ValidPromotionType reports whether s is a known promotion type.
func ValidPromotionType(s string) bool {
	t := PromotionType(s)
	return t == PromotionGlobal || t == PromotionMerchantSpecific
}

// ValidPromotionStatus reports whether s is a known promotion status.
func ValidPromotionStatus(s string) bool {
	st := PromotionStatus(s)
	return st == PromotionActive || st == PromotionInactive || st == PromotionExpired
}

// ParsePromotionDate parses a schedule boundary, accepting a plain date or a
// full timestamp.
func ParsePromotionDate(s string) (time.Time, error) {
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, s)
}
