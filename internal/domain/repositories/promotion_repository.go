package repositories

import (
	"context"

	"quickbite.backend/internal/domain/entities"
)

// PromotionRepository defines promotion banner data operations.
type PromotionRepository interface {
	// Create inserts a promotion and writes the generated id back.
	Create(ctx context.Context, promo *entities.Promotion) error

	// GetByID returns the promotion or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*entities.Promotion, error)

	// List returns every promotion, newest first.
	List(ctx context.Context) ([]*entities.Promotion, error)

	// Update fully rewrites the promotion row by id.
	Update(ctx context.Context, promo *entities.Promotion) error

	// Delete removes the promotion permanently.
	Delete(ctx context.Context, id int64) error
}
