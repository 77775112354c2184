package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
)

// DefaultCurrencyFallback is returned when no default currency has ever been
// configured.
const DefaultCurrencyFallback = "USD"

// settingService implements SettingSvcFacade.
type settingService struct {
	BaseService
	settingRepo portsrepo.SettingRepository
}

// NewSettingService creates a new setting service.
func NewSettingService(settingRepo portsrepo.SettingRepository) portssvc.SettingSvcFacade {
	return &settingService{settingRepo: settingRepo}
}

var _ portssvc.SettingSvcFacade = (*settingService)(nil)

func (s *settingService) GetDefaultCurrency(ctx context.Context) (string, error) {
	setting, err := s.settingRepo.FindSetting(ctx, domain.SettingDefaultCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return DefaultCurrencyFallback, nil
		}
		s.LogError(ctx, err, "Failed to read default currency setting")
		return "", fmt.Errorf("failed to read default currency: %w", err)
	}
	return setting.Value, nil
}

func (s *settingService) SetDefaultCurrency(ctx context.Context, currencyCode string) error {
	currencyCode = strings.ToUpper(currencyCode)
	if len(currencyCode) != 3 {
		return fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	setting := domain.Setting{
		Key:   domain.SettingDefaultCurrency,
		Value: currencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.settingRepo.UpsertSetting(ctx, setting); err != nil {
		s.LogError(ctx, err, "Failed to store default currency setting",
			slog.String("currency_code", currencyCode))
		return err
	}

	s.LogInfo(ctx, "Default currency updated",
		slog.String("currency_code", currencyCode))
	return nil
}
