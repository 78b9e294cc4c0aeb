package usecases

import (
	"context"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"quickbite.backend/internal/domain/entities"
	domainerrors "quickbite.backend/internal/domain/errors"
	"quickbite.backend/internal/domain/repositories"
	"quickbite.backend/pkg/logger"
)

// PromotionUsecase handles the admin promotion banner catalog
type PromotionUsecase struct {
	promoRepo repositories.PromotionRepository
}

// NewPromotionUsecase creates a new promotion usecase
func NewPromotionUsecase(promoRepo repositories.PromotionRepository) *PromotionUsecase {
	return &PromotionUsecase{promoRepo: promoRepo}
}

// Create validates and stores a new banner. New banners start active.
func (u *PromotionUsecase) Create(ctx context.Context, input entities.PromotionInput) (*entities.Promotion, error) {
	if err := ValidatePromotionInput(&input); err != nil {
		return nil, err
	}

	start, _ := entities.ParsePromotionDate(input.StartDate)
	end, _ := entities.ParsePromotionDate(input.EndDate)
	if end.Before(start) {
		return nil, domainerrors.Validation("End date must not be before start date")
	}

	var subtitle null.String
	if input.Subtitle != "" {
		subtitle = null.StringFrom(input.Subtitle)
	}

	promo := &entities.Promotion{
		Title:     input.Title,
		Subtitle:  subtitle,
		Type:      entities.PromotionType(input.Type),
		MediaURL:  input.MediaPath,
		StartDate: start,
		EndDate:   end,
		Status:    entities.PromotionActive,
	}
	if err := u.promoRepo.Create(ctx, promo); err != nil {
		return nil, err
	}

	logger.Info(ctx, "promotion created",
		zap.Int64("promotion_id", promo.ID), zap.String("type", string(promo.Type)))
	return promo, nil
}

// List returns every banner, newest first
func (u *PromotionUsecase) List(ctx context.Context) ([]*entities.Promotion, error) {
	return u.promoRepo.List(ctx)
}

// Get returns one banner by id
func (u *PromotionUsecase) Get(ctx context.Context, id int64) (*entities.Promotion, error) {
	return u.promoRepo.GetByID(ctx, id)
}

// Update applies the present fields of the patch to the stored banner and
// saves it back as a whole.
func (u *PromotionUsecase) Update(ctx context.Context, id int64, patch entities.PromotionPatch) (*entities.Promotion, error) {
	if patch.IsEmpty() {
		return nil, domainerrors.Validation("No fields to update")
	}

	promo, err := u.promoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title.Valid {
		if patch.Title.String == "" {
			return nil, domainerrors.Validation("Title is required")
		}
		promo.Title = patch.Title.String
	}
	if patch.Subtitle.Valid {
		promo.Subtitle = null.String{}
		if patch.Subtitle.String != "" {
			promo.Subtitle = null.StringFrom(patch.Subtitle.String)
		}
	}
	if patch.Type.Valid {
		if !entities.ValidPromotionType(patch.Type.String) {
			return nil, domainerrors.Validation("Type must be Global or Merchant-Specific")
		}
		promo.Type = entities.PromotionType(patch.Type.String)
	}
	if patch.Status.Valid {
		if !entities.ValidPromotionStatus(patch.Status.String) {
			return nil, domainerrors.Validation("Status must be Active, Inactive or Expired")
		}
		promo.Status = entities.PromotionStatus(patch.Status.String)
	}
	if patch.StartDate.Valid {
		start, err := entities.ParsePromotionDate(patch.StartDate.String)
		if err != nil {
			return nil, domainerrors.Validation("Invalid start date")
		}
		promo.StartDate = start
	}
	if patch.EndDate.Valid {
		end, err := entities.ParsePromotionDate(patch.EndDate.String)
		if err != nil {
			return nil, domainerrors.Validation("Invalid end date")
		}
		promo.EndDate = end
	}
	if promo.EndDate.Before(promo.StartDate) {
		return nil, domainerrors.Validation("End date must not be before start date")
	}
	if patch.MediaPath.Valid {
		promo.MediaURL = patch.MediaPath.String
	}

	if err := u.promoRepo.Update(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// Delete removes a banner permanently
func (u *PromotionUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.promoRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info(ctx, "promotion deleted", zap.Int64("promotion_id", id))
	return nil
}
