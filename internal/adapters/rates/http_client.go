// Package rates fetches currency conversion ratios from an external HTTP
// rate service.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketfox/pocketfox_backend/internal/apperrors"
	"github.com/pocketfox/pocketfox_backend/internal/core/domain"
	portssvc "github.com/pocketfox/pocketfox_backend/internal/core/ports/services"
)

const defaultTimeout = 10 * time.Second

// HTTPFetcher calls a frankfurter-style rate API:
// GET {base}/latest?from=EUR&to=USD returning {"rates":{"USD":1.0834}}.
type HTTPFetcher struct {
	baseURL    string
	httpClient *http.Client
}

// HTTPFetcherOption configures the fetcher.
type HTTPFetcherOption func(*HTTPFetcher)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.httpClient = client
	}
}

// NewHTTPFetcher creates a fetcher against the given API base URL.
func NewHTTPFetcher(baseURL string, options ...HTTPFetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, option := range options {
		option(f)
	}
	return f
}

var _ portssvc.RateFetcher = (*HTTPFetcher)(nil)

type latestResponse struct {
	Rates map[string]json.Number `json:"rates"`
}

// FetchRatio fetches the current conversion ratio from one currency to
// another.
func (f *HTTPFetcher) FetchRatio(ctx context.Context, fromCode, toCode string) (domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)

	endpoint := fmt.Sprintf("%s/latest?from=%s&to=%s",
		f.baseURL, url.QueryEscape(fromCode), url.QueryEscape(toCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%w: building rate request: %v", apperrors.ErrRateUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%w: calling rate service: %v", apperrors.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.ExchangeRate{}, fmt.Errorf("%w: rate service returned %d: %s",
			apperrors.ErrRateUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%w: decoding rate response: %v", apperrors.ErrRateUnavailable, err)
	}

	raw, ok := payload.Rates[toCode]
	if !ok {
		return domain.ExchangeRate{}, fmt.Errorf("%w: no rate for %s in response", apperrors.ErrRateUnavailable, toCode)
	}
	ratio, err := decimal.NewFromString(raw.String())
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("%w: invalid rate %q for %s", apperrors.ErrRateUnavailable, raw.String(), toCode)
	}
	if ratio.LessThanOrEqual(decimal.Zero) {
		return domain.ExchangeRate{}, fmt.Errorf("%w: non-positive rate %s for %s", apperrors.ErrRateUnavailable, ratio, toCode)
	}

	return domain.ExchangeRate{
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             ratio,
		FetchedAt:        time.Now().UTC(),
	}, nil
}
