// Package marketdata fetches daily market data from remote providers.
//
// Each provider implements marketrisk.PriceSource. Responses are cached
// on disk with a daily expiry so repeated runs of the same scenario do
// not hammer the remote services.
package marketdata

import (
	"fmt"
	"net/http"

	"github.com/etnz/marketrisk"
)

// EODHD fetches end-of-day adjusted closes from the eodhd.com API.
//
// The zero value is not usable: an API key is required. BaseURL and
// Client default to the production endpoint and a daily-cached client.
type EODHD struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func (e *EODHD) Name() string { return "eodhd" }

func (e *EODHD) base() string {
	if e.BaseURL == "" {
		return "https://eodhd.com"
	}
	return e.BaseURL
}

func (e *EODHD) client() *http.Client {
	if e.Client == nil {
		e.Client = daily()
	}
	return e.Client
}

// DailyCloses returns the adjusted close series for 'ticker' between
// 'from' and 'to' inclusive.
func (e *EODHD) DailyCloses(ticker string, from, to marketrisk.Date) (*marketrisk.Series, error) {
	if e.APIKey == "" {
		return nil, fmt.Errorf("EODHD API key is not set. Use -eodhd-api-key flag or EODHD_API_KEY environment variable")
	}

	type Info struct {
		Date  string  `json:"date"`
		Close float64 `json:"adjusted_close"`
	}

	addr := fmt.Sprintf("%s/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s", e.base(), ticker, e.APIKey, from, to)
	var infos []Info
	if err := jwget(e.client(), addr, &infos); err != nil {
		return nil, fmt.Errorf("could not fetch eodhd prices for %q: %w", ticker, err)
	}

	prices := new(marketrisk.Series)
	for _, info := range infos {
		day, err := marketrisk.ParseDate(info.Date)
		if err != nil {
			return nil, fmt.Errorf("could not parse eodhd date %q for %q: %w", info.Date, ticker, err)
		}
		prices.Append(day, info.Close)
	}
	return prices, nil
}
