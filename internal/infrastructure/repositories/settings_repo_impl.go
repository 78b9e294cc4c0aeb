package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quickbite.backend/internal/domain/entities"
)

const settingsRowID = 1

// SettingsRepository stores the marketplace settings document as a single
// JSON row. It runs on database/sql directly; settings reads never need to
// join the reconciliation transaction scope.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// EnsureSchema creates the settings table when missing
func (r *SettingsRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS app_settings (
			id BIGINT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("failed to create app_settings table: %w", err)
	}
	return nil
}

// Get returns the settings document, seeding defaults on first read.
func (r *SettingsRepository) Get(ctx context.Context) (*entities.AppSettings, error) {
	var (
		data      []byte
		updatedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT data, updated_at FROM app_settings WHERE id = $1", settingsRowID,
	).Scan(&data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		defaults := entities.DefaultAppSettings()
		if err := r.Save(ctx, defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, err
	}

	var settings entities.AppSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings document: %w", err)
	}
	if updatedAt.Valid {
		settings.Touch(updatedAt.Time)
	}
	return &settings, nil
}

// Save upserts the whole settings document
func (r *SettingsRepository) Save(ctx context.Context, settings *entities.AppSettings) error {
	now := time.Now()
	settings.Touch(now)

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings document: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO app_settings (id, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET data = $2, updated_at = $3`,
		settingsRowID, data, now,
	)
	return err
}
