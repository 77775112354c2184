package repositories

import (
	"context"

	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
)

// SettingRepository defines persistence operations for application settings.
type SettingRepository interface {
	// FindSetting retrieves a setting by key.
	// Returns apperrors.ErrNotFound when the key has never been written.
	FindSetting(ctx context.Context, key string) (*domain.Setting, error)

	// UpsertSetting inserts or replaces a setting value.
	UpsertSetting(ctx context.Context, setting domain.Setting) error
}
