package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
	"github.com/pocketfox/pocketfox_backend/internal/dto"
)

// accountService implements the AccountSvcFacade interface.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
	txnRepo     portsrepo.FinancialTransactionRepositoryFacade
	settingSvc  portssvc.SettingSvcFacade
	balanceSvc  portssvc.BalanceSvcFacade
}

// AccountServiceOption is a functional option for configuring the account service.
type AccountServiceOption func(*accountService)

// WithSettingService adds the setting service used to resolve the default
// currency for new accounts.
func WithSettingService(svc portssvc.SettingSvcFacade) AccountServiceOption {
	return func(s *accountService) {
		s.settingSvc = svc
	}
}

// WithBalanceService adds the aggregate balance service notified after the
// deletion cascade.
func WithBalanceService(svc portssvc.BalanceSvcFacade) AccountServiceOption {
	return func(s *accountService) {
		s.balanceSvc = svc
	}
}

// NewAccountService creates a new account service with the provided options.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx, txnRepo portsrepo.FinancialTransactionRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	currency := req.CurrencyCode
	if currency == "" && s.settingSvc != nil {
		defaultCurrency, err := s.settingSvc.GetDefaultCurrency(ctx)
		if err != nil {
			s.LogError(ctx, err, "Failed to resolve default currency for new account")
			return nil, fmt.Errorf("failed to resolve default currency: %w", err)
		}
		currency = defaultCurrency
	}
	if currency == "" {
		return nil, fmt.Errorf("%w: currency code is required and no default currency is configured", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:                     uuid.NewString(),
		Name:                          req.Name,
		CurrencyCode:                  currency,
		CurrentBalance:                decimal.Zero,
		CurrentBalanceWithoutExchange: decimal.Zero,
		Excluded:                      req.Excluded,
		ExchangeModeActive:            req.ExchangeModeActive,
		Note:                          req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("currency_code", account.CurrencyCode))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Excluded != nil {
		account.Excluded = *req.Excluded
		updated = true
	}
	if req.ExchangeModeActive != nil {
		account.ExchangeModeActive = *req.ExchangeModeActive
		updated = true
	}
	if req.Note != nil {
		account.Note = *req.Note
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update",
			slog.String("account_id", accountID))
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes the account and every transaction referencing it,
// as charged or as target, atomically. The cascaded transactions are not
// individually reverted: the account whose balances they affected is gone.
// Aggregate totals are recomputed afterwards.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin deletion of account %s: %w", accountID, err)
	}
	defer func() {
		_ = s.accountRepo.Rollback(ctx, tx)
	}()

	if err := s.accountRepo.DeleteAccountInTx(ctx, tx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account row",
			slog.String("account_id", accountID))
		return err
	}
	if err := s.txnRepo.DeleteByAccountInTx(ctx, tx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to cascade transaction deletion",
			slog.String("account_id", accountID))
		return err
	}
	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit deletion of account %s: %w", accountID, err)
	}

	if s.balanceSvc != nil {
		if err := s.balanceSvc.RefreshTotals(ctx); err != nil {
			// The deletion already committed; a stale aggregate is recomputed
			// on the next summary read.
			s.LogWarn(ctx, "Failed to refresh totals after account deletion",
				slog.String("account_id", accountID),
				slog.String("error", err.Error()))
		}
	}

	s.LogInfo(ctx, "Account deleted with cascading transactions",
		slog.String("account_id", accountID))
	return nil
}
