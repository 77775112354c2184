package services

import (
	"time"

	portsrepo "github.com/pocketfox/pocketfox_backend/internal/core/ports/repositories"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
)

// NewServiceContainer wires every application service over the repository
// provider and the external adapters. The reconciliation engine is shared by
// the transaction service so lifecycle flows and balance mutations always go
// through the same code path.
func NewServiceContainer(
	repos *portsrepo.RepositoryProvider,
	fetcher portssvc.RateFetcher,
	diagnostics portssvc.DiagnosticsSink,
	rateCacheTTL time.Duration,
) *portssvc.ServiceContainer {
	settingSvc := NewSettingService(repos.SettingRepo)
	balanceSvc := NewBalanceService(repos.AccountRepo)
	rateSvc := NewRateService(repos.RateRepo, fetcher, rateCacheTTL)

	reconciliationSvc := NewReconciliationService(repos.AccountRepo, repos.TransactionRepo, rateSvc, diagnostics)

	accountSvc := NewAccountService(repos.AccountRepo, repos.TransactionRepo,
		WithSettingService(settingSvc),
		WithBalanceService(balanceSvc),
	)
	transactionSvc := NewTransactionService(repos.TransactionRepo, repos.AccountRepo, reconciliationSvc,
		WithBalanceInvalidation(balanceSvc),
	)
	categorySvc := NewCategoryService(repos.CategoryRepo, repos.TransactionRepo)

	return &portssvc.ServiceContainer{
		Account:        accountSvc,
		Transaction:    transactionSvc,
		Reconciliation: reconciliationSvc,
		Category:       categorySvc,
		Rate:           rateSvc,
		Balance:        balanceSvc,
		Setting:        settingSvc,
		Diagnostics:    diagnostics,
	}
}
