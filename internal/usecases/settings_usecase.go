package usecases

import (
	"context"
	"strings"

	"github.com/volatiletech/null/v8"
	"quickbite.backend/internal/domain/entities"
	"quickbite.backend/internal/domain/repositories"
)

const (
	settingsMaxZones      = 50
	settingsMaxTextLength = 500
)

// SettingsUsecase handles the whole-document marketplace settings
type SettingsUsecase struct {
	settingsRepo repositories.SettingsRepository
}

// NewSettingsUsecase creates a new settings usecase
func NewSettingsUsecase(settingsRepo repositories.SettingsRepository) *SettingsUsecase {
	return &SettingsUsecase{settingsRepo: settingsRepo}
}

// Get returns the settings document, seeded with defaults on first read
func (u *SettingsUsecase) Get(ctx context.Context) (*entities.AppSettings, error) {
	return u.settingsRepo.Get(ctx)
}

// Patch applies the valid slots of the patch to the stored document and
// saves it back as a whole. Inputs are normalized: strings bounded, zones
// deduplicated, payout cycle clamped to weekly|monthly, negative numbers
// floored at zero.
func (u *SettingsUsecase) Patch(ctx context.Context, patch entities.AppSettingsPatch) (*entities.AppSettings, error) {
	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if patch.Zones != nil {
		settings.Zones = normalizeZones(patch.Zones)
	}
	if patch.OperatingHours.Valid {
		settings.OperatingHours = boundedString(patch.OperatingHours.String)
	}
	if patch.BaseDeliveryFee.Valid {
		settings.BaseDeliveryFee = nonNegative(patch.BaseDeliveryFee.Float64)
	}
	if patch.PerKmFee.Valid {
		settings.PerKmFee = nonNegative(patch.PerKmFee.Float64)
	}
	if patch.CancellationMins.Valid {
		mins := patch.CancellationMins.Int
		if mins < 0 {
			mins = 0
		}
		settings.CancellationMins = mins
	}
	if patch.ForceUpdateMinVersion.Valid {
		settings.ForceUpdateMinVersion = boundedString(patch.ForceUpdateMinVersion.String)
	}
	if patch.Maintenance.Valid {
		settings.Maintenance = patch.Maintenance.Bool
	}
	if patch.Announcement.Valid {
		settings.Announcement = boundedString(patch.Announcement.String)
	}
	if patch.MerchantCommissionPct.Valid {
		settings.MerchantCommissionPct = nonNegative(patch.MerchantCommissionPct.Float64)
	}
	if patch.RiderCommissionPct.Valid {
		settings.RiderCommissionPct = nonNegative(patch.RiderCommissionPct.Float64)
	}
	if patch.PayoutCycle.Valid {
		settings.PayoutCycle = entities.SafePayoutCycle(patch.PayoutCycle.String)
	}
	if patch.GSTNumber.Valid {
		settings.GSTNumber = boundedString(strings.ToUpper(patch.GSTNumber.String))
	}
	if patch.FSSAINumber.Valid {
		settings.FSSAINumber = boundedString(patch.FSSAINumber.String)
	}
	if patch.SupportPhone.Valid {
		settings.SupportPhone = boundedString(patch.SupportPhone.String)
	}
	if patch.SupportEmail.Valid {
		settings.SupportEmail = boundedString(patch.SupportEmail.String)
	}
	if patch.SMSProvider.Valid {
		settings.SMSProvider = boundedString(patch.SMSProvider.String)
	}

	if err := u.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func boundedString(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	if len(s) > settingsMaxTextLength {
		s = s[:settingsMaxTextLength]
	}
	return null.StringFrom(s)
}

func nonNegative(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}

func normalizeZones(zones []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(zones))
	for _, z := range zones {
		z = strings.TrimSpace(z)
		if z == "" || seen[strings.ToLower(z)] {
			continue
		}
		seen[strings.ToLower(z)] = true
		out = append(out, z)
		if len(out) == settingsMaxZones {
			break
		}
	}
	return out
}
