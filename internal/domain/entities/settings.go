package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// PayoutCycle represents how often merchant/rider payouts run
type PayoutCycle string

const (
	PayoutWeekly  PayoutCycle = "weekly"
	PayoutMonthly PayoutCycle = "monthly"
)

// AppSettings is the single-row marketplace configuration document. It is
// read and written as a whole and is not transactionally linked to the
// reconciliation core.
type AppSettings struct {
	Zones                 []string    `json:"zones"`
	OperatingHours        null.String `json:"operating_hours"`
	BaseDeliveryFee       float64     `json:"base_delivery_fee"`
	PerKmFee              float64     `json:"per_km_fee"`
	CancellationMins      int         `json:"cancellation_mins"`
	ForceUpdateMinVersion null.String `json:"force_update_min_version"`
	Maintenance           bool        `json:"maintenance"`
	Announcement          null.String `json:"announcement"`
	MerchantCommissionPct float64     `json:"merchant_commission_pct"`
	RiderCommissionPct    float64     `json:"rider_commission_pct"`
	PayoutCycle           PayoutCycle `json:"payout_cycle"`
	GSTNumber             null.String `json:"gst_number"`
	FSSAINumber           null.String `json:"fssai_number"`
	SupportPhone          null.String `json:"support_phone"`
	SupportEmail          null.String `json:"support_email"`
	SMSProvider           null.String `json:"sms_provider"`
	UpdatedAt             null.Time   `json:"updated_at"`
}

// AppSettingsPatch carries the settings fields a PATCH may change. Only
// valid slots are applied to the stored document.
type AppSettingsPatch struct {
	Zones                 []string     `json:"zones"`
	OperatingHours        null.String  `json:"operating_hours"`
	BaseDeliveryFee       null.Float64 `json:"base_delivery_fee"`
	PerKmFee              null.Float64 `json:"per_km_fee"`
	CancellationMins      null.Int     `json:"cancellation_mins"`
	ForceUpdateMinVersion null.String  `json:"force_update_min_version"`
	Maintenance           null.Bool    `json:"maintenance"`
	Announcement          null.String  `json:"announcement"`
	MerchantCommissionPct null.Float64 `json:"merchant_commission_pct"`
	RiderCommissionPct    null.Float64 `json:"rider_commission_pct"`
	PayoutCycle           null.String  `json:"payout_cycle"`
	GSTNumber             null.String  `json:"gst_number"`
	FSSAINumber           null.String  `json:"fssai_number"`
	SupportPhone          null.String  `json:"support_phone"`
	SupportEmail          null.String  `json:"support_email"`
	SMSProvider           null.String  `json:"sms_provider"`
}

// DefaultAppSettings seeds the settings row on first read.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		Zones:                 []string{"HSR", "BTM"},
		OperatingHours:        null.StringFrom("09:00-22:00"),
		BaseDeliveryFee:       25,
		PerKmFee:              5,
		CancellationMins:      5,
		ForceUpdateMinVersion: null.StringFrom("1.0.0"),
		MerchantCommissionPct: 10,
		RiderCommissionPct:    80,
		PayoutCycle:           PayoutWeekly,
	}
}

// SafePayoutCycle clamps arbitrary input to a valid payout cycle,
// defaulting to weekly.
func SafePayoutCycle(s string) PayoutCycle {
	if PayoutCycle(s) == PayoutMonthly {
		return PayoutMonthly
	}
	return PayoutWeekly
}

// Touch stamps the document's update time.
func (s *AppSettings) Touch(now time.Time) {
	s.UpdatedAt = null.TimeFrom(now)
}
