package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/infrastructure/models"
)

const riderRowSelect = `
	u.id AS user_id, u.name, u.phone, u.email, u.address,
	u.status AS user_status, u.created_at AS user_created_at,
	db.id AS rider_id, db.vehicle, db.vehicle_number, db.license_no, db.aadhaar,
	db.bank_name, db.account_no, db.ifsc, db.upi, db.area,
	db.online_status, db.kyc_status, db.approval_status, db.approved_at,
	db.created_at AS rider_created_at`

// RiderRepository implements rider profile data operations
type RiderRepository struct {
	db *gorm.DB
}

// NewRiderRepository creates a new rider repository
func NewRiderRepository(db *gorm.DB) *RiderRepository {
	return &RiderRepository{db: db}
}

// Create creates a new rider profile. The generated id is written back.
func (r *RiderRepository) Create(ctx context.Context, rider *entities.Rider) error {
	now := time.Now()
	m := &models.DeliveryBoy{
		UserID:         rider.UserID,
		Vehicle:        rider.Vehicle,
		VehicleNumber:  rider.VehicleNumber.Ptr(),
		LicenseNo:      rider.LicenseNo.Ptr(),
		Aadhaar:        rider.Aadhaar.Ptr(),
		BankName:       rider.BankName.Ptr(),
		AccountNo:      rider.AccountNo.Ptr(),
		IFSC:           rider.IFSC.Ptr(),
		UPI:            rider.UPI.Ptr(),
		Area:           rider.Area.Ptr(),
		OnlineStatus:   string(rider.OnlineStatus),
		KYCStatus:      string(rider.KYCStatus),
		ApprovalStatus: string(rider.ApprovalStatus),
		RejectedReason: rider.RejectedReason.Ptr(),
		ApprovedAt:     rider.ApprovedAt.Ptr(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isDuplicateErr(err) {
			return domainerrors.Conflict("user_id", "Duplicate constraint failed")
		}
		return err
	}
	rider.ID = m.ID
	rider.CreatedAt = m.CreatedAt
	rider.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByUserID gets a rider profile by its identity id
func (r *RiderRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Rider, error) {
	var m models.DeliveryBoy
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return riderToEntity(&m), nil
}

// GetRow returns the joined identity+profile projection for one rider
func (r *RiderRepository) GetRow(ctx context.Context, userID int64) (*entities.RiderRow, error) {
	var rows []entities.RiderRow
	err := GetDB(ctx, r.db).
		Table("users u").
		Select(riderRowSelect).
		Joins("LEFT JOIN delivery_boys db ON db.user_id = u.id").
		Where("u.id = ? AND u.role = ?", userID, string(entities.RoleRider)).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return &rows[0], nil
}

// PatchProfile applies present non-bank slots to the rider profile
func (r *RiderRepository) PatchProfile(ctx context.Context, userID int64, patch entities.RiderProfilePatch) error {
	updates := map[string]interface{}{}
	if patch.Vehicle.Valid {
		updates["vehicle"] = patch.Vehicle.String
	}
	if patch.VehicleNumber.Valid {
		updates["vehicle_number"] = patch.VehicleNumber.String
	}
	if patch.LicenseNo.Valid {
		updates["license_no"] = patch.LicenseNo.String
	}
	if patch.Aadhaar.Valid {
		updates["aadhaar"] = patch.Aadhaar.String
	}
	if patch.Area.Valid {
		updates["area"] = patch.Area.String
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	return GetDB(ctx, r.db).Model(&models.DeliveryBoy{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

// PatchBank applies present bank/payout slots to the rider profile
func (r *RiderRepository) PatchBank(ctx context.Context, userID int64, patch entities.RiderBankPatch) error {
	updates := map[string]interface{}{}
	if patch.BankName.Valid {
		updates["bank_name"] = patch.BankName.String
	}
	if patch.AccountNo.Valid {
		updates["account_no"] = patch.AccountNo.String
	}
	if patch.IFSC.Valid {
		updates["ifsc"] = patch.IFSC.String
	}
	if patch.UPI.Valid {
		updates["upi"] = patch.UPI.String
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	return GetDB(ctx, r.db).Model(&models.DeliveryBoy{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

// SetOnline toggles the rider availability flag
func (r *RiderRepository) SetOnline(ctx context.Context, userID int64, status entities.OnlineStatus) error {
	result := GetDB(ctx, r.db).Model(&models.DeliveryBoy{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"online_status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetKYC updates the rider KYC review status
func (r *RiderRepository) SetKYC(ctx context.Context, userID int64, status entities.ReviewStatus) error {
	result := GetDB(ctx, r.db).Model(&models.DeliveryBoy{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"kyc_status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetApproval transitions the order-eligibility gate
func (r *RiderRepository) SetApproval(ctx context.Context, userID int64, status entities.ReviewStatus, approvedAt null.Time, reason null.String) error {
	result := GetDB(ctx, r.db).Model(&models.DeliveryBoy{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"approval_status": string(status),
			"approved_at":     approvedAt.Ptr(),
			"rejected_reason": reason.Ptr(),
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists riders joined with their identities, newest first
func (r *RiderRepository) List(ctx context.Context, filter entities.RiderFilter) ([]*entities.RiderRow, int64, error) {
	base := GetDB(ctx, r.db).
		Table("users u").
		Joins("LEFT JOIN delivery_boys db ON db.user_id = u.id").
		Where("u.role = ?", string(entities.RoleRider))

	if filter.Q != "" {
		term := "%" + strings.ToLower(filter.Q) + "%"
		base = base.Where(
			`LOWER(COALESCE(u.name, '')) LIKE ? OR u.phone LIKE ? OR LOWER(COALESCE(u.email, '')) LIKE ?
			 OR LOWER(COALESCE(db.area, '')) LIKE ? OR LOWER(COALESCE(db.vehicle_number, '')) LIKE ?
			 OR LOWER(COALESCE(db.license_no, '')) LIKE ?`,
			term, "%"+filter.Q+"%", term, term, term, term,
		)
	}
	if filter.Status != "" {
		base = base.Where("u.status = ?", filter.Status)
	}
	if filter.KYC != "" {
		base = base.Where("db.kyc_status = ?", filter.KYC)
	}
	if filter.Approval != "" {
		base = base.Where("db.approval_status = ?", filter.Approval)
	}
	if filter.Online.Valid {
		status := entities.OnlineStatusOffline
		if filter.Online.Bool {
			status = entities.OnlineStatusOnline
		}
		base = base.Where("db.online_status = ?", string(status))
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	var rows []entities.RiderRow
	err := base.
		Select(riderRowSelect).
		Order("u.id DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]*entities.RiderRow, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, total, nil
}

// ExistsByUserPhone reports whether a rider profile is linked to an identity
// with the phone
func (r *RiderRepository) ExistsByUserPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).
		Table("delivery_boys db").
		Joins("JOIN users u ON u.id = db.user_id").
		Where("u.phone = ?", phone).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts all rider profiles
func (r *RiderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.DeliveryBoy{}).Count(&count).Error
	return count, err
}

func riderToEntity(m *models.DeliveryBoy) *entities.Rider {
	return &entities.Rider{
		ID:             m.ID,
		UserID:         m.UserID,
		Vehicle:        m.Vehicle,
		VehicleNumber:  null.StringFromPtr(m.VehicleNumber),
		LicenseNo:      null.StringFromPtr(m.LicenseNo),
		Aadhaar:        null.StringFromPtr(m.Aadhaar),
		BankName:       null.StringFromPtr(m.BankName),
		AccountNo:      null.StringFromPtr(m.AccountNo),
		IFSC:           null.StringFromPtr(m.IFSC),
		UPI:            null.StringFromPtr(m.UPI),
		Area:           null.StringFromPtr(m.Area),
		OnlineStatus:   entities.OnlineStatus(m.OnlineStatus),
		KYCStatus:      entities.ReviewStatus(m.KYCStatus),
		ApprovalStatus: entities.ReviewStatus(m.ApprovalStatus),
		RejectedReason: null.StringFromPtr(m.RejectedReason),
		ApprovedAt:     null.TimeFromPtr(m.ApprovedAt),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
