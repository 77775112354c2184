package domain

// Setting is a single key/value application preference.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	AuditFields
}

// SettingDefaultCurrency is the key under which the app-wide default currency
// is stored. New accounts fall back to it when no currency is supplied.
const SettingDefaultCurrency = "default_currency"
