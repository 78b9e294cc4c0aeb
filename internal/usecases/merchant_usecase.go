package usecases

import (
	"context"

	"github.com/volatiletech/null/v8"
	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/domain/repositories"
	"quickbite.backend/pkg/utils"
)

const (
	merchantPageSizeDefault = 20
	merchantPageSizeMax     = 200
)

// MerchantUsecase handles merchant onboarding, admin management and the
// merchant-facing portal operations.
type MerchantUsecase struct {
	uow          repositories.UnitOfWork
	merchantRepo repositories.MerchantRepository
	userRepo     repositories.UserRepository
	reconcile    *ReconcileUsecase
}

// NewMerchantUsecase creates a new merchant usecase
func NewMerchantUsecase(
	uow repositories.UnitOfWork,
	merchantRepo repositories.MerchantRepository,
	userRepo repositories.UserRepository,
	reconcile *ReconcileUsecase,
) *MerchantUsecase {
	return &MerchantUsecase{
		uow:          uow,
		merchantRepo: merchantRepo,
		userRepo:     userRepo,
		reconcile:    reconcile,
	}
}

// Create onboards a merchant: identity reconciliation, profile insert and
// code derivation happen in one transaction.
func (u *MerchantUsecase) Create(ctx context.Context, input *entities.MerchantInput) (*entities.Merchant, error) {
	if err := ValidateMerchantInput(input); err != nil {
		return nil, err
	}

	merchant := merchantFromInput(input)

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.checkConflicts(txCtx, input, 0); err != nil {
			return err
		}

		userID, err := u.reconcile.EnsureIdentityForRole(txCtx,
			contactFromMerchant(input),
			entities.RoleMerchant,
			input.OwnerName,
			input.Address,
			userStatusFromMerchant(merchant.Status),
		)
		if err != nil {
			return err
		}
		merchant.UserID = null.Int64From(userID)

		if err := u.merchantRepo.Create(txCtx, merchant); err != nil {
			return err
		}

		code := entities.MakeMerchantCode(merchant.ID)
		if err := u.merchantRepo.UpdateCode(txCtx, merchant.ID, code); err != nil {
			return err
		}
		merchant.MerchantCode = null.StringFrom(code)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merchant, nil
}

// Update fully updates a merchant profile and re-syncs its identity
func (u *MerchantUsecase) Update(ctx context.Context, id int64, input *entities.MerchantInput) (*entities.Merchant, error) {
	if err := ValidateMerchantInput(input); err != nil {
		return nil, err
	}

	var updated *entities.Merchant
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		existing, err := u.merchantRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := u.checkConflicts(txCtx, input, id); err != nil {
			return err
		}

		userID, err := u.reconcile.EnsureIdentityForRole(txCtx,
			contactFromMerchant(input),
			entities.RoleMerchant,
			input.OwnerName,
			input.Address,
			userStatusFromMerchant(entities.SafeMerchantStatus(input.Status)),
		)
		if err != nil {
			return err
		}

		merchant := merchantFromInput(input)
		merchant.ID = id
		merchant.UserID = null.Int64From(userID)
		merchant.MerchantCode = existing.MerchantCode
		merchant.IsOpen = existing.IsOpen
		if err := u.merchantRepo.Update(txCtx, merchant); err != nil {
			return err
		}
		updated = merchant
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get returns one merchant profile
func (u *MerchantUsecase) Get(ctx context.Context, id int64) (*entities.Merchant, error) {
	return u.merchantRepo.GetByID(ctx, id)
}

// List returns merchants with clamped pagination, newest first
func (u *MerchantUsecase) List(ctx context.Context, filter entities.MerchantFilter) ([]*entities.Merchant, utils.PaginationMeta, error) {
	filter.Page = utils.ClampPage(filter.Page)
	filter.PageSize = utils.ClampPageSize(filter.PageSize, merchantPageSizeDefault, merchantPageSizeMax)

	rows, total, err := u.merchantRepo.List(ctx, filter)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return rows, utils.CalculateMeta(total, filter.Page, filter.PageSize), nil
}

// SetStatus updates the profile status and propagates it to the identity in
// the same transaction.
func (u *MerchantUsecase) SetStatus(ctx context.Context, id int64, status string) error {
	profileStatus := entities.SafeMerchantStatus(status)
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		merchant, err := u.merchantRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := u.merchantRepo.UpdateStatus(txCtx, id, profileStatus); err != nil {
			return err
		}
		return u.userRepo.SyncStatus(txCtx, identityLinkFromMerchant(merchant),
			userStatusFromMerchant(profileStatus))
	})
}

// SetApproval stamps or clears approved_at; a supplied status additionally
// updates the profile and the identity.
func (u *MerchantUsecase) SetApproval(ctx context.Context, id int64, approved bool, status string) error {
	var profileStatus null.String
	if status != "" {
		profileStatus = null.StringFrom(string(entities.SafeMerchantStatus(status)))
	}
	return u.uow.Do(ctx, func(txCtx context.Context) error {
		merchant, err := u.merchantRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := u.merchantRepo.SetApproval(txCtx, id, approved, profileStatus); err != nil {
			return err
		}
		if !profileStatus.Valid {
			return nil
		}
		return u.userRepo.SyncStatus(txCtx, identityLinkFromMerchant(merchant),
			userStatusFromMerchant(entities.MerchantStatus(profileStatus.String)))
	})
}

// GetByUserID returns the profile behind a merchant login
func (u *MerchantUsecase) GetByUserID(ctx context.Context, userID int64) (*entities.Merchant, error) {
	return u.merchantRepo.GetByUserID(ctx, userID)
}

// SetOpen toggles the operating flag for the merchant portal
func (u *MerchantUsecase) SetOpen(ctx context.Context, userID int64, open bool) error {
	return u.merchantRepo.SetOpen(ctx, userID, open)
}

// SetProfileImage stores the uploaded image path on the merchant row
func (u *MerchantUsecase) SetProfileImage(ctx context.Context, userID int64, path string) error {
	return u.merchantRepo.UpdateProfileImage(ctx, userID, path)
}

// checkConflicts pre-checks the unique merchant fields in fixed order so the
// caller learns about phone collisions before gst collisions, matching the
// DB constraint mapping.
func (u *MerchantUsecase) checkConflicts(ctx context.Context, input *entities.MerchantInput, excludeID int64) error {
	conflicts, err := u.merchantRepo.FindConflicts(ctx,
		input.Phone, input.Email, input.GST, input.FSSAI, excludeID)
	if err != nil {
		return err
	}
	switch {
	case conflicts.Phone:
		return domainerrors.Conflict("phone", "Phone already exists")
	case conflicts.Email:
		return domainerrors.Conflict("email", "Email already exists")
	case conflicts.GST:
		return domainerrors.Conflict("gst", "GST already exists")
	case conflicts.FSSAI:
		return domainerrors.Conflict("fssai", "FSSAI already exists")
	}
	return nil
}

func merchantFromInput(input *entities.MerchantInput) *entities.Merchant {
	m := &entities.Merchant{
		StoreName: input.StoreName,
		OwnerName: input.OwnerName,
		Phone:     input.Phone,
		City:      input.City,
		Category:  input.Category,
		FSSAI:     input.FSSAI,
		Status:    entities.SafeMerchantStatus(input.Status),
		IsOpen:    true,
	}
	if input.Email != "" {
		m.Email = null.StringFrom(input.Email)
	}
	if input.Address != "" {
		m.Address = null.StringFrom(input.Address)
	}
	if input.GST != "" {
		m.GST = null.StringFrom(input.GST)
	}
	return m
}

func contactFromMerchant(input *entities.MerchantInput) entities.Contact {
	c := entities.Contact{Phone: input.Phone}
	if input.Email != "" {
		c.Email = null.StringFrom(input.Email)
	}
	return c
}

func identityLinkFromMerchant(m *entities.Merchant) entities.IdentityLink {
	return entities.IdentityLink{
		UserID: m.UserID,
		Phone:  m.Phone,
		Email:  m.Email,
	}
}

// userStatusFromMerchant maps a profile status onto the identity status
// vocabulary. Suspension is identity-level only.
func userStatusFromMerchant(status entities.MerchantStatus) entities.UserStatus {
	if status == entities.MerchantStatusInactive {
		return entities.UserStatusInactive
	}
	return entities.UserStatusActive
}
