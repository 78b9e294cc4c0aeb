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
	domainRepos "quickbite.backend/internal/domain/repositories"
	"quickbite.backend/internal/infrastructure/models"
)

// UserRepository implements identity data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new identity. The generated id is written back to user.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	now := time.Now()
	m := &models.User{
		Phone:        user.Phone,
		Email:        user.Email.Ptr(),
		Name:         user.Name.Ptr(),
		Address:      user.Address.Ptr(),
		Role:         string(user.Role),
		Status:       string(user.Status),
		KYCStatus:    string(user.KYCStatus),
		Aadhaar:      user.Aadhaar.Ptr(),
		ProfileImage: user.ProfileImage.Ptr(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return userConflictError(err)
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an identity by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByPhone gets an identity by phone
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("phone = ?", phone).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByContact looks up an identity by phone or, when present, email.
func (r *UserRepository) GetByContact(ctx context.Context, contact entities.Contact) (*entities.User, error) {
	var m models.User
	err := GetDB(ctx, r.db).
		Where("phone = ? OR (email IS NOT NULL AND email = ?)", contact.Phone, contact.Email.String).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// PromoteRole forces the identity onto the given role and status. Name and
// address only fill empty slots; stored non-empty values win.
func (r *UserRepository) PromoteRole(ctx context.Context, id int64, promotion domainRepos.IdentityPromotion) error {
	updates := map[string]interface{}{
		"role":       string(promotion.Role),
		"status":     string(promotion.Status),
		"updated_at": time.Now(),
	}
	if promotion.Name.Valid && promotion.Name.String != "" {
		updates["name"] = gorm.Expr("COALESCE(NULLIF(name, ''), ?)", promotion.Name.String)
	}
	if promotion.Address.Valid && promotion.Address.String != "" {
		updates["address"] = gorm.Expr("COALESCE(NULLIF(address, ''), ?)", promotion.Address.String)
	}

	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus updates identity status
func (r *UserRepository) UpdateStatus(ctx context.Context, id int64, status entities.UserStatus) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).
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

// UpdateStatusForRole updates status only when the identity holds role
func (r *UserRepository) UpdateStatusForRole(ctx context.Context, id int64, role entities.Role, status entities.UserStatus) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).
		Where("id = ? AND role = ?", id, string(role)).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateKYC updates identity KYC status
func (r *UserRepository) UpdateKYC(ctx context.Context, id int64, status entities.KYCStatus) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"kyc_status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// PatchProfileForRole fills name/address (present slots only) for an
// identity holding the given role.
func (r *UserRepository) PatchProfileForRole(ctx context.Context, id int64, role entities.Role, name, address null.String) error {
	updates := map[string]interface{}{}
	if name.Valid {
		updates["name"] = name.String
	}
	if address.Valid {
		updates["address"] = address.String
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	return GetDB(ctx, r.db).Model(&models.User{}).
		Where("id = ? AND role = ?", id, string(role)).
		Updates(updates).Error
}

// SyncStatus propagates a status change through the identity fallback chain:
// user id first, else phone, else email. Matching nothing is not an error;
// legacy profile rows may be fully unlinked.
func (r *UserRepository) SyncStatus(ctx context.Context, link entities.IdentityLink, status entities.UserStatus) error {
	updates := map[string]interface{}{"status": string(status), "updated_at": time.Now()}
	db := GetDB(ctx, r.db)

	if link.UserID.Valid {
		result := db.Model(&models.User{}).Where("id = ?", link.UserID.Int64).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
	}
	if link.Phone != "" {
		result := db.Model(&models.User{}).Where("phone = ?", link.Phone).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
	}
	if link.Email.Valid && link.Email.String != "" {
		result := db.Model(&models.User{}).Where("email = ?", link.Email.String).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}

// List lists identities with optional role/status/search filters
func (r *UserRepository) List(ctx context.Context, filter entities.UserFilter) ([]*entities.User, error) {
	query := GetDB(ctx, r.db).Model(&models.User{}).Order("created_at DESC")

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(COALESCE(name, '')) LIKE ? OR phone LIKE ? OR LOWER(COALESCE(email, '')) LIKE ?",
			term, "%"+filter.Search+"%", term,
		)
	}

	var userModels []models.User
	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Phone:        m.Phone,
		Email:        null.StringFromPtr(m.Email),
		Name:         null.StringFromPtr(m.Name),
		Address:      null.StringFromPtr(m.Address),
		Role:         entities.Role(m.Role),
		Status:       entities.UserStatus(m.Status),
		KYCStatus:    entities.KYCStatus(m.KYCStatus),
		Aadhaar:      null.StringFromPtr(m.Aadhaar),
		ProfileImage: null.StringFromPtr(m.ProfileImage),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// userConflictError maps a duplicate-key failure on the users table to the
// conflict taxonomy, naming the offending column.
func userConflictError(err error) error {
	if !isDuplicateErr(err) {
		return err
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "email") {
		return domainerrors.Conflict("email", "Email already exists")
	}
	return domainerrors.Conflict("phone", "Phone already exists")
}
