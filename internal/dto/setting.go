package dto

// UpdateDefaultCurrencyRequest defines the payload for changing the app-wide
// default currency.
type UpdateDefaultCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currencycode"`
}

// DefaultCurrencyResponse returns the app-wide default currency.
type DefaultCurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
}
