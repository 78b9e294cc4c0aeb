package usecases

import (
	"context"
	"errors"

	"github.com/volatiletech/null/v8"
	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/domain/repositories"
)

// ReconcileUsecase keeps the identity table consistent with role-profile
// writes. It never opens its own transaction; callers invoke it inside a
// UnitOfWork scope so identity and profile changes commit together.
type ReconcileUsecase struct {
	userRepo repositories.UserRepository
}

// NewReconcileUsecase creates a new reconcile usecase
func NewReconcileUsecase(userRepo repositories.UserRepository) *ReconcileUsecase {
	return &ReconcileUsecase{userRepo: userRepo}
}

// EnsureIdentityForRole finds or creates the identity behind a profile write
// and returns its id. An existing identity (matched by phone, or email when
// present) is forced onto the role with the given status; name and address
// fill empty slots only. A missing identity is inserted with kyc pending.
func (u *ReconcileUsecase) EnsureIdentityForRole(
	ctx context.Context,
	contact entities.Contact,
	role entities.Role,
	name, address string,
	status entities.UserStatus,
) (int64, error) {
	user, err := u.userRepo.GetByContact(ctx, contact)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return 0, err
	}

	if user != nil {
		promotion := repositories.IdentityPromotion{
			Role:   role,
			Status: status,
		}
		if name != "" {
			promotion.Name = null.StringFrom(name)
		}
		if address != "" {
			promotion.Address = null.StringFrom(address)
		}
		if err := u.userRepo.PromoteRole(ctx, user.ID, promotion); err != nil {
			return 0, err
		}
		return user.ID, nil
	}

	fresh := &entities.User{
		Phone:     contact.Phone,
		Email:     contact.Email,
		Role:      role,
		Status:    status,
		KYCStatus: entities.KYCPending,
	}
	if name != "" {
		fresh.Name = null.StringFrom(name)
	}
	if address != "" {
		fresh.Address = null.StringFrom(address)
	}
	if err := u.userRepo.Create(ctx, fresh); err != nil {
		return 0, err
	}
	return fresh.ID, nil
}
