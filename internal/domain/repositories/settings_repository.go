package repositories

import (
	"context"

	"quickbite.backend/internal/domain/entities"
)

// SettingsRepository defines whole-document settings storage
type SettingsRepository interface {
	// Get returns the settings document, seeding defaults on first read.
	Get(ctx context.Context) (*entities.AppSettings, error)
	Save(ctx context.Context, settings *entities.AppSettings) error
}
