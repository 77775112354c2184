package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
)

type PgxSettingRepository struct {
	BaseRepository
}

// newPgxSettingRepository creates a new repository for application settings.
func newPgxSettingRepository(pool *pgxpool.Pool) portsrepo.SettingRepository {
	return &PgxSettingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SettingRepository = (*PgxSettingRepository)(nil)

// FindSetting retrieves a setting by key.
func (r *PgxSettingRepository) FindSetting(ctx context.Context, key string) (*domain.Setting, error) {
	query := `
		SELECT key, value, created_at, last_updated_at
		FROM settings
		WHERE key = $1;
	`
	var setting domain.Setting
	err := r.Pool.QueryRow(ctx, query, key).Scan(
		&setting.Key, &setting.Value, &setting.CreatedAt, &setting.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find setting %s: %w", key, err)
	}
	return &setting, nil
}

// UpsertSetting inserts or replaces a setting value.
func (r *PgxSettingRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	query := `
		INSERT INTO settings (key, value, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err := r.Pool.Exec(ctx, query,
		setting.Key, setting.Value, setting.CreatedAt, setting.LastUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", setting.Key, err)
	}
	return nil
}
