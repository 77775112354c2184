package services

import "context"

// SettingSvcFacade defines application preference operations.
type SettingSvcFacade interface {
	// GetDefaultCurrency returns the app-wide default currency code.
	GetDefaultCurrency(ctx context.Context) (string, error)

	// SetDefaultCurrency stores the app-wide default currency code.
	SetDefaultCurrency(ctx context.Context, currencyCode string) error
}
