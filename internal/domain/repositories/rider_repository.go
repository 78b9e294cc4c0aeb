package repositories

import (
	"context"

	"github.com/volatiletech/null/v8"
	"quickbite.backend/internal/domain/entities"
)

// RiderRepository defines rider profile data operations. Rider records are
// keyed by the identity id (user_id) in all mutation paths.
type RiderRepository interface {
	Create(ctx context.Context, rider *entities.Rider) error
	GetByUserID(ctx context.Context, userID int64) (*entities.Rider, error)
	// GetRow returns the joined identity+profile projection for one rider.
	GetRow(ctx context.Context, userID int64) (*entities.RiderRow, error)
	PatchProfile(ctx context.Context, userID int64, patch entities.RiderProfilePatch) error
	PatchBank(ctx context.Context, userID int64, patch entities.RiderBankPatch) error
	SetOnline(ctx context.Context, userID int64, status entities.OnlineStatus) error
	SetKYC(ctx context.Context, userID int64, status entities.ReviewStatus) error
	// SetApproval transitions the order-eligibility gate. approvedAt and
	// reason are stored as given; callers clear whichever does not apply.
	SetApproval(ctx context.Context, userID int64, status entities.ReviewStatus, approvedAt null.Time, reason null.String) error
	List(ctx context.Context, filter entities.RiderFilter) ([]*entities.RiderRow, int64, error)
	ExistsByUserPhone(ctx context.Context, phone string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
