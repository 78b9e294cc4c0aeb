package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/infrastructure/models"
)

// PromotionRepository implements promotion banner data operations
type PromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

// Create creates a new promotion. The generated id is written back.
func (r *PromotionRepository) Create(ctx context.Context, promo *entities.Promotion) error {
	now := time.Now()
	m := promotionToModel(promo)
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	promo.ID = m.ID
	promo.CreatedAt = m.CreatedAt
	promo.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a promotion by id
func (r *PromotionRepository) GetByID(ctx context.Context, id int64) (*entities.Promotion, error) {
	var m models.Promotion
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return promotionToEntity(&m), nil
}

// List lists every promotion, newest first
func (r *PromotionRepository) List(ctx context.Context) ([]*entities.Promotion, error) {
	var rows []models.Promotion
	if err := GetDB(ctx, r.db).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	promos := make([]*entities.Promotion, 0, len(rows))
	for i := range rows {
		promos = append(promos, promotionToEntity(&rows[i]))
	}
	return promos, nil
}

// Update fully rewrites a promotion row by id
func (r *PromotionRepository) Update(ctx context.Context, promo *entities.Promotion) error {
	updates := map[string]interface{}{
		"title":      promo.Title,
		"subtitle":   promo.Subtitle.Ptr(),
		"type":       string(promo.Type),
		"media_url":  promo.MediaURL,
		"start_date": promo.StartDate,
		"end_date":   promo.EndDate,
		"status":     string(promo.Status),
		"updated_at": time.Now(),
	}

	result := GetDB(ctx, r.db).Model(&models.Promotion{}).Where("id = ?", promo.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a promotion permanently
func (r *PromotionRepository) Delete(ctx context.Context, id int64) error {
	result := GetDB(ctx, r.db).Where("id = ?", id).Delete(&models.Promotion{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func promotionToModel(e *entities.Promotion) *models.Promotion {
	return &models.Promotion{
		ID:        e.ID,
		Title:     e.Title,
		Subtitle:  e.Subtitle.Ptr(),
		Type:      string(e.Type),
		MediaURL:  e.MediaURL,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		Status:    string(e.Status),
	}
}

func promotionToEntity(m *models.Promotion) *entities.Promotion {
	return &entities.Promotion{
		ID:        m.ID,
		Title:     m.Title,
		Subtitle:  null.StringFromPtr(m.Subtitle),
		Type:      entities.PromotionType(m.Type),
		MediaURL:  m.MediaURL,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Status:    entities.PromotionStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
