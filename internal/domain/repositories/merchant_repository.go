package repositories

import (
	"context"

	"github.com/volatiletech/null/v8"
	"quickbite.backend/internal/domain/entities"
)

// MerchantRepository defines merchant profile data operations
type MerchantRepository interface {
	Create(ctx context.Context, merchant *entities.Merchant) error
	GetByID(ctx context.Context, id int64) (*entities.Merchant, error)
	GetByUserID(ctx context.Context, userID int64) (*entities.Merchant, error)
	Update(ctx context.Context, merchant *entities.Merchant) error
	UpdateCode(ctx context.Context, id int64, code string) error
	UpdateStatus(ctx context.Context, id int64, status entities.MerchantStatus) error
	// SetApproval stamps or clears approved_at and optionally updates status.
	SetApproval(ctx context.Context, id int64, approved bool, status null.String) error
	// FindConflicts reports which of the unique merchant fields are taken by
	// another profile. Empty values never collide. excludeID skips the
	// record's own row on updates (0 = no exclusion).
	FindConflicts(ctx context.Context, phone, email, gst, fssai string, excludeID int64) (*entities.MerchantConflicts, error)
	List(ctx context.Context, filter entities.MerchantFilter) ([]*entities.Merchant, int64, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	SetOpen(ctx context.Context, userID int64, open bool) error
	// CloseAll flips every open storefront to closed and reports how many
	// rows changed.
	CloseAll(ctx context.Context) (int64, error)
	UpdateProfileImage(ctx context.Context, userID int64, path string) error
	CountByStatus(ctx context.Context, status entities.MerchantStatus) (int64, error)
}
