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

// MerchantRepository implements merchant profile data operations
type MerchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *gorm.DB) *MerchantRepository {
	return &MerchantRepository{db: db}
}

// Create creates a new merchant profile. The generated id is written back.
func (r *MerchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	now := time.Now()
	m := merchantToModel(merchant)
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return merchantConflictError(err)
	}
	merchant.ID = m.ID
	merchant.CreatedAt = m.CreatedAt
	merchant.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a merchant by id
func (r *MerchantRepository) GetByID(ctx context.Context, id int64) (*entities.Merchant, error) {
	var m models.Merchant
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return merchantToEntity(&m), nil
}

// GetByUserID gets a merchant by its linked identity id
func (r *MerchantRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Merchant, error) {
	var m models.Merchant
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return merchantToEntity(&m), nil
}

// Update fully updates a merchant profile by id
func (r *MerchantRepository) Update(ctx context.Context, merchant *entities.Merchant) error {
	updates := map[string]interface{}{
		"store_name": merchant.StoreName,
		"owner_name": merchant.OwnerName,
		"phone":      merchant.Phone,
		"email":      merchant.Email.Ptr(),
		"address":    merchant.Address.Ptr(),
		"city":       merchant.City,
		"category":   merchant.Category,
		"gst":        merchant.GST.Ptr(),
		"fssai":      merchant.FSSAI,
		"status":     string(merchant.Status),
		"user_id":    merchant.UserID.Ptr(),
		"updated_at": time.Now(),
	}

	result := GetDB(ctx, r.db).Model(&models.Merchant{}).Where("id = ?", merchant.ID).Updates(updates)
	if result.Error != nil {
		return merchantConflictError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateCode sets the derived merchant code after insertion
func (r *MerchantRepository) UpdateCode(ctx context.Context, id int64, code string) error {
	result := GetDB(ctx, r.db).Model(&models.Merchant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"merchant_code": code, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus updates merchant profile status
func (r *MerchantRepository) UpdateStatus(ctx context.Context, id int64, status entities.MerchantStatus) error {
	result := GetDB(ctx, r.db).Model(&models.Merchant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetApproval stamps or clears approved_at and optionally updates status
func (r *MerchantRepository) SetApproval(ctx context.Context, id int64, approved bool, status null.String) error {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if approved {
		updates["approved_at"] = time.Now()
	} else {
		updates["approved_at"] = nil
	}
	if status.Valid {
		updates["status"] = status.String
	}

	result := GetDB(ctx, r.db).Model(&models.Merchant{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// FindConflicts reports which unique merchant fields are taken by another
// profile. Empty values never collide.
func (r *MerchantRepository) FindConflicts(ctx context.Context, phone, email, gst, fssai string, excludeID int64) (*entities.MerchantConflicts, error) {
	query := GetDB(ctx, r.db).Model(&models.Merchant{}).
		Where(
			"phone = ? OR (email IS NOT NULL AND email = ?) OR (gst IS NOT NULL AND gst = ?) OR fssai = ?",
			phone, email, gst, fssai,
		)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var rows []models.Merchant
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	conflicts := &entities.MerchantConflicts{}
	for i := range rows {
		m := &rows[i]
		if m.Phone == phone {
			conflicts.Phone = true
		}
		if email != "" && m.Email != nil && *m.Email == email {
			conflicts.Email = true
		}
		if gst != "" && m.GST != nil && *m.GST == gst {
			conflicts.GST = true
		}
		if fssai != "" && m.FSSAI == fssai {
			conflicts.FSSAI = true
		}
	}
	return conflicts, nil
}

// List lists merchants with filters and pagination, newest first
func (r *MerchantRepository) List(ctx context.Context, filter entities.MerchantFilter) ([]*entities.Merchant, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Merchant{})

	if filter.Q != "" {
		term := "%" + strings.ToLower(filter.Q) + "%"
		query = query.Where(
			`LOWER(store_name) LIKE ? OR LOWER(owner_name) LIKE ? OR phone LIKE ?
			 OR LOWER(COALESCE(gst, '')) LIKE ? OR fssai LIKE ? OR LOWER(COALESCE(email, '')) LIKE ?`,
			term, term, "%"+filter.Q+"%", term, "%"+filter.Q+"%", term,
		)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(entities.SafeMerchantStatus(filter.Status)))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	var rows []models.Merchant
	if err := query.Order("id DESC").Limit(filter.PageSize).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	merchants := make([]*entities.Merchant, 0, len(rows))
	for i := range rows {
		merchants = append(merchants, merchantToEntity(&rows[i]))
	}
	return merchants, total, nil
}

// ExistsByPhone reports whether any merchant profile carries the phone.
// Profiles are matched directly, not through the identity link, so legacy
// unlinked rows still count.
func (r *MerchantRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Merchant{}).Where("phone = ?", phone).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetOpen toggles the operating flag for the merchant linked to userID
func (r *MerchantRepository) SetOpen(ctx context.Context, userID int64, open bool) error {
	result := GetDB(ctx, r.db).Model(&models.Merchant{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"is_open": open, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CloseAll force-closes every open storefront
func (r *MerchantRepository) CloseAll(ctx context.Context) (int64, error) {
	result := GetDB(ctx, r.db).Model(&models.Merchant{}).
		Where("is_open = ?", true).
		Updates(map[string]interface{}{"is_open": false, "updated_at": time.Now()})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateProfileImage stores the uploaded image path for the merchant linked
// to userID
func (r *MerchantRepository) UpdateProfileImage(ctx context.Context, userID int64, path string) error {
	result := GetDB(ctx, r.db).Model(&models.Merchant{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"profile_image": path, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountByStatus counts merchant profiles in the given status
func (r *MerchantRepository) CountByStatus(ctx context.Context, status entities.MerchantStatus) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Merchant{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, err
}

func merchantToModel(e *entities.Merchant) *models.Merchant {
	return &models.Merchant{
		ID:           e.ID,
		UserID:       e.UserID.Ptr(),
		MerchantCode: e.MerchantCode.Ptr(),
		StoreName:    e.StoreName,
		OwnerName:    e.OwnerName,
		Phone:        e.Phone,
		Email:        e.Email.Ptr(),
		Address:      e.Address.Ptr(),
		City:         e.City,
		Category:     e.Category,
		GST:          e.GST.Ptr(),
		FSSAI:        e.FSSAI,
		Status:       string(e.Status),
		ApprovedAt:   e.ApprovedAt.Ptr(),
		IsOpen:       e.IsOpen,
		ProfileImage: e.ProfileImage.Ptr(),
	}
}

func merchantToEntity(m *models.Merchant) *entities.Merchant {
	return &entities.Merchant{
		ID:           m.ID,
		UserID:       null.Int64FromPtr(m.UserID),
		MerchantCode: null.StringFromPtr(m.MerchantCode),
		StoreName:    m.StoreName,
		OwnerName:    m.OwnerName,
		Phone:        m.Phone,
		Email:        null.StringFromPtr(m.Email),
		Address:      null.StringFromPtr(m.Address),
		City:         m.City,
		Category:     m.Category,
		GST:          null.StringFromPtr(m.GST),
		FSSAI:        m.FSSAI,
		Status:       entities.MerchantStatus(m.Status),
		ApprovedAt:   null.TimeFromPtr(m.ApprovedAt),
		IsOpen:       m.IsOpen,
		ProfileImage: null.StringFromPtr(m.ProfileImage),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// merchantConflictError maps a duplicate-key failure on the merchants table
// to the conflict taxonomy, checking fields in the fixed order phone, email,
// gst, fssai.
func merchantConflictError(err error) error {
	if !isDuplicateErr(err) {
		return err
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "phone"):
		return domainerrors.Conflict("phone", "Phone already exists")
	case strings.Contains(msg, "email"):
		return domainerrors.Conflict("email", "Email already exists")
	case strings.Contains(msg, "gst"):
		return domainerrors.Conflict("gst", "GST already exists")
	case strings.Contains(msg, "fssai"):
		return domainerrors.Conflict("fssai", "FSSAI already exists")
	default:
		return domainerrors.Conflict("phone", "Duplicate constraint failed")
	}
}
