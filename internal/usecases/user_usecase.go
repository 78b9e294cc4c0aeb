package usecases

import (
	"context"

	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/domain/repositories"
)

// UserUsecase handles direct admin mutations of identities. Identity status
// is authoritative for account access; profile statuses are operational.
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// List returns identities filtered by role/status/search, newest first
func (u *UserUsecase) List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error) {
	return u.userRepo.List(ctx, filter)
}

// Get returns one identity
func (u *UserUsecase) Get(ctx context.Context, id int64) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// SetStatus flips an identity between active and suspended
func (u *UserUsecase) SetStatus(ctx context.Context, id int64, status string) error {
	s := entities.UserStatus(status)
	if s != entities.UserStatusActive && s != entities.UserStatusSuspended {
		return domainerrors.Validation("Status must be active or suspended")
	}
	return u.userRepo.UpdateStatus(ctx, id, s)
}

// SetKYC updates the identity-level KYC status
func (u *UserUsecase) SetKYC(ctx context.Context, id int64, status string) error {
	s := entities.KYCStatus(status)
	switch s {
	case entities.KYCPending, entities.KYCVerified, entities.KYCRejected:
	default:
		return domainerrors.Validation("Invalid KYC status")
	}
	return u.userRepo.UpdateKYC(ctx, id, s)
}
