package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/domain/repositories"
	"quickbite.backend/pkg/utils"
)

const (
	riderPageSizeDefault = 20
	riderPageSizeMax     = 100
)

// RiderUsecase handles rider onboarding and admin management
type RiderUsecase struct {
	uow       repositories.UnitOfWork
	riderRepo repositories.RiderRepository
	userRepo  repositories.UserRepository
}

// NewRiderUsecase creates a new rider usecase
func NewRiderUsecase(
	uow repositories.UnitOfWork,
	riderRepo repositories.RiderRepository,
	userRepo repositories.UserRepository,
) *RiderUsecase {
	return &RiderUsecase{
		uow:       uow,
		riderRepo: riderRepo,
		userRepo:  userRepo,
	}
}

// Create onboards a rider. The phone must be free across all identities, not
// just rider profiles; identity and profile are inserted in one transaction.
func (u *RiderUsecase) Create(ctx context.Context, input *entities.RiderInput) (*entities.RiderRow, error) {
	if err := ValidateRiderInput(input); err != nil {
		return nil, err
	}

	var userID int64
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		_, err := u.userRepo.GetByPhone(txCtx, input.Phone)
		if err == nil {
			return domainerrors.Conflict("phone", "Phone already exists")
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		user := &entities.User{
			Phone:     input.Phone,
			Name:      null.StringFrom(input.Name),
			Role:      entities.RoleRider,
			Status:    entities.SafeUserStatus(input.Status),
			KYCStatus: entities.KYCPending,
		}
		if input.Email != "" {
			user.Email = null.StringFrom(input.Email)
		}
		if input.Address != "" {
			user.Address = null.StringFrom(input.Address)
		}
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		userID = user.ID

		rider := riderFromInput(userID, input)
		return u.riderRepo.Create(txCtx, rider)
	})
	if err != nil {
		return nil, err
	}
	return u.riderRepo.GetRow(ctx, userID)
}

// Get returns the joined identity+profile row for one rider
func (u *RiderUsecase) Get(ctx context.Context, userID int64) (*entities.RiderRow, error) {
	return u.riderRepo.GetRow(ctx, userID)
}

// List returns riders with clamped pagination, newest first. Invalid enum
// filter values are ignored rather than rejected.
func (u *RiderUsecase) List(ctx context.Context, filter entities.RiderFilter) ([]*entities.RiderRow, utils.PaginationMeta, error) {
	filter.Page = utils.ClampPage(filter.Page)
	filter.PageSize = utils.ClampPageSize(filter.PageSize, riderPageSizeDefault, riderPageSizeMax)

	switch entities.UserStatus(filter.Status) {
	case entities.UserStatusActive, entities.UserStatusInactive, entities.UserStatusSuspended:
	default:
		filter.Status = ""
	}
	if !entities.ValidReviewStatus(filter.KYC) {
		filter.KYC = ""
	}
	if !entities.ValidReviewStatus(filter.Approval) {
		filter.Approval = ""
	}

	rows, total, err := u.riderRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return rows, utils.CalculateMeta(total, filter.Page, filter.PageSize), nil
}

// UpdateProfile applies a rider patch: name and address land on the
// identity, everything else on the profile, in one transaction.
func (u *RiderUsecase) UpdateProfile(ctx context.Context, userID int64, patch entities.RiderProfilePatch) error {
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if _, err := u.riderRepo.GetByUserID(txCtx, userID); err != nil {
			return err
		}
		if err := u.userRepo.PatchProfileForRole(txCtx, userID, entities.RoleRider, patch.Name, patch.Address); err != nil {
			return err
		}
		return u.riderRepo.PatchProfile(txCtx, userID, patch)
	})
}

// UpdateBank applies a bank/payout patch to the rider profile
func (u *RiderUsecase) UpdateBank(ctx context.Context, userID int64, patch entities.RiderBankPatch) error {
	if _, err := u.riderRepo.GetByUserID(ctx, userID); err != nil {
		return err
	}
	return u.riderRepo.PatchBank(ctx, userID, patch)
}

// SetOnline toggles rider availability
func (u *RiderUsecase) SetOnline(ctx context.Context, userID int64, online bool) error {
	status := entities.OnlineStatusOffline
	if online {
		status = entities.OnlineStatusOnline
	}
	return u.riderRepo.SetOnline(ctx, userID, status)
}

// SetKYC updates the rider KYC review status
func (u *RiderUsecase) SetKYC(ctx context.Context, userID int64, status string) error {
	if !entities.ValidReviewStatus(status) {
		return domainerrors.Validation("Invalid KYC status")
	}
	return u.riderRepo.SetKYC(ctx, userID, entities.ReviewStatus(status))
}

// SetApproval transitions the order-eligibility gate. Approval stamps
// approved_at and clears any rejection reason; rejection does the inverse;
// pending clears both.
func (u *RiderUsecase) SetApproval(ctx context.Context, userID int64, status, reason string) error {
	if !entities.ValidReviewStatus(status) {
		return domainerrors.Validation("Invalid approval status")
	}

	var (
		approvedAt null.Time
		rejected   null.String
	)
	switch entities.ReviewStatus(status) {
	case entities.ReviewApproved:
		approvedAt = null.TimeFrom(time.Now())
	case entities.ReviewRejected:
		if reason != "" {
			rejected = null.StringFrom(reason)
		}
	}
	return u.riderRepo.SetApproval(ctx, userID, entities.ReviewStatus(status), approvedAt, rejected)
}

// SetStatus updates the rider's identity status
func (u *RiderUsecase) SetStatus(ctx context.Context, userID int64, status string) error {
	return u.userRepo.UpdateStatusForRole(ctx, userID, entities.RoleRider,
		entities.SafeUserStatus(status))
}

// SoftDelete deactivates a rider without removing rows: identity goes
// inactive, the profile goes offline and back to pending approval.
func (u *RiderUsecase) SoftDelete(ctx context.Context, userID int64) error {
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.UpdateStatusForRole(txCtx, userID, entities.RoleRider, entities.UserStatusInactive); err != nil {
			return err
		}
		if err := u.riderRepo.SetOnline(txCtx, userID, entities.OnlineStatusOffline); err != nil {
			return err
		}
		return u.riderRepo.SetApproval(txCtx, userID, entities.ReviewPending, null.Time{}, null.String{})
	})
}

func riderFromInput(userID int64, input *entities.RiderInput) *entities.Rider {
	vehicle := input.Vehicle
	if vehicle == "" {
		vehicle = entities.DefaultVehicle
	}

	online := entities.OnlineStatusOffline
	if input.Online {
		online = entities.OnlineStatusOnline
	}

	kyc := entities.ReviewPending
	if entities.ValidReviewStatus(input.KYCStatus) {
		kyc = entities.ReviewStatus(input.KYCStatus)
	}
	approval := entities.ReviewPending
	if entities.ValidReviewStatus(input.ApprovalStatus) {
		approval = entities.ReviewStatus(input.ApprovalStatus)
	}

	rider := &entities.Rider{
		UserID:         userID,
		Vehicle:        vehicle,
		OnlineStatus:   online,
		KYCStatus:      kyc,
		ApprovalStatus: approval,
	}
	if approval == entities.ReviewApproved {
		rider.ApprovedAt = null.TimeFrom(time.Now())
	}
	if input.VehicleNo != "" {
		rider.VehicleNumber = null.StringFrom(input.VehicleNo)
	}
	if input.LicenseNo != "" {
		rider.LicenseNo = null.StringFrom(input.LicenseNo)
	}
	if input.Aadhaar != "" {
		rider.Aadhaar = null.StringFrom(input.Aadhaar)
	}
	if input.BankName != "" {
		rider.BankName = null.StringFrom(input.BankName)
	}
	if input.AccountNo != "" {
		rider.AccountNo = null.StringFrom(input.AccountNo)
	}
	if input.IFSC != "" {
		rider.IFSC = null.StringFrom(input.IFSC)
	}
	if input.UPI != "" {
		rider.UPI = null.StringFrom(input.UPI)
	}
	if input.Area != "" {
		rider.Area = null.StringFrom(input.Area)
	}
	return rider
}
