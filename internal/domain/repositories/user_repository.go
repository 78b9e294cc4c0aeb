package repositories

import (
	"context"

	"github.com/volatiletech/null/v8"
	"quickbite.backend/internal/domain/entities"
)

// IdentityPromotion carries the fields applied when an existing identity is
// reconciled into a role. Name and address fill empty slots only; non-empty
// stored values are never overwritten.
type IdentityPromotion struct {
	Role    entities.Role
	Status  entities.UserStatus
	Name    null.String
	Address null.String
}

// UserRepository defines identity data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByPhone(ctx context.Context, phone string) (*entities.User, error)
	// GetByContact looks up an identity by phone or, when present, email.
	GetByContact(ctx context.Context, contact entities.Contact) (*entities.User, error)
	// PromoteRole forces the identity onto the given role and status.
	PromoteRole(ctx context.Context, id int64, promotion IdentityPromotion) error
	UpdateStatus(ctx context.Context, id int64, status entities.UserStatus) error
	// UpdateStatusForRole updates status only when the identity holds role.
	UpdateStatusForRole(ctx context.Context, id int64, role entities.Role, status entities.UserStatus) error
	UpdateKYC(ctx context.Context, id int64, status entities.KYCStatus) error
	// PatchProfileForRole fills name/address (present slots only) for an
	// identity holding the given role.
	PatchProfileForRole(ctx context.Context, id int64, role entities.Role, name, address null.String) error
	// SyncStatus propagates a status change through the identity fallback
	// chain (user id, else phone, else email).
	SyncStatus(ctx context.Context, link entities.IdentityLink, status entities.UserStatus) error
	List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error)
}
