package usecases

import (
	"regexp"
	"strings"

	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
)

var (
	phoneRe    = regexp.MustCompile(`^[0-9]{10}$`)
	otpPhoneRe = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	gstRe      = regexp.MustCompile(`(?i)^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	fssaiRe    = regexp.MustCompile(`^[0-9]{14}$`)
	aadhaarRe  = regexp.MustCompile(`^[0-9]{12}$`)
)

// ValidPhone reports whether s is a 10-digit phone number
func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// ValidOTPPhone reports whether s is a valid Indian mobile number
func ValidOTPPhone(s string) bool {
	return otpPhoneRe.MatchString(s)
}

// ValidEmail reports whether s looks like an email address
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidGST reports whether s matches the GSTIN grammar, case-insensitively
func ValidGST(s string) bool {
	return gstRe.MatchString(s)
}

// ValidFSSAI reports whether s is a 14-digit FSSAI license number
func ValidFSSAI(s string) bool {
	return fssaiRe.MatchString(s)
}

// ValidateMerchantInput checks and normalizes merchant input before any
// transaction is opened. GST is stored upper-case.
func ValidateMerchantInput(input *entities.MerchantInput) error {
	input.StoreName = strings.TrimSpace(input.StoreName)
	input.OwnerName = strings.TrimSpace(input.OwnerName)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Email = strings.TrimSpace(input.Email)
	input.Address = strings.TrimSpace(input.Address)
	input.City = strings.TrimSpace(input.City)
	input.Category = strings.TrimSpace(input.Category)
	input.GST = strings.ToUpper(strings.TrimSpace(input.GST))
	input.FSSAI = strings.TrimSpace(input.FSSAI)

	if input.StoreName == "" {
		return domainerrors.Validation("Store name is required")
	}
	if input.OwnerName == "" {
		return domainerrors.Validation("Owner name is required")
	}
	if !ValidPhone(input.Phone) {
		return domainerrors.Validation("Phone must be 10 digits")
	}
	if input.Email != "" && !ValidEmail(input.Email) {
		return domainerrors.Validation("Invalid email")
	}
	if input.City == "" {
		return domainerrors.Validation("City is required")
	}
	if input.Category == "" {
		return domainerrors.Validation("Category is required")
	}
	if input.GST != "" && !ValidGST(input.GST) {
		return domainerrors.Validation("Invalid GST number")
	}
	if !ValidFSSAI(input.FSSAI) {
		return domainerrors.Validation("FSSAI must be 14 digits")
	}
	return nil
}

// ValidatePromotionInput checks and normalizes promotion input. Dates are
// validated here and parsed again by the usecase.
func ValidatePromotionInput(input *entities.PromotionInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Subtitle = strings.TrimSpace(input.Subtitle)
	input.Type = strings.TrimSpace(input.Type)

	if input.Title == "" {
		return domainerrors.Validation("Title is required")
	}
	if !entities.ValidPromotionType(input.Type) {
		return domainerrors.Validation("Type must be Global or Merchant-Specific")
	}
	if input.MediaPath == "" {
		return domainerrors.Validation("Media file is required")
	}
	if _, err := entities.ParsePromotionDate(input.StartDate); err != nil {
		return domainerrors.Validation("Invalid start date")
	}
	if _, err := entities.ParsePromotionDate(input.EndDate); err != nil {
		return domainerrors.Validation("Invalid end date")
	}
	return nil
}

// ValidateRiderInput checks and normalizes rider input before any
// transaction is opened.
func ValidateRiderInput(input *entities.RiderInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Email = strings.TrimSpace(input.Email)
	input.Address = strings.TrimSpace(input.Address)
	input.Vehicle = strings.TrimSpace(input.Vehicle)

	if input.Name == "" {
		return domainerrors.Validation("Name is required")
	}
	if !ValidPhone(input.Phone) {
		return domainerrors.Validation("Phone must be 10 digits")
	}
	if input.Email != "" && !ValidEmail(input.Email) {
		return domainerrors.Validation("Invalid email")
	}
	if input.Aadhaar != "" && !aadhaarRe.MatchString(input.Aadhaar) {
		return domainerrors.Validation("Aadhaar must be 12 digits")
	}
	return nil
}
