package repositories

// RepositoryProvider bundles concrete repository implementations for wiring
// at startup.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryWithTx
	TransactionRepo FinancialTransactionRepositoryFacade
	CategoryRepo    CategoryRepository
	RateRepo        ExchangeRateRepository
	SettingRepo     SettingRepository
}
