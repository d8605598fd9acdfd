package marketdata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/etnz/marketrisk"
)

// Yahoo fetches daily adjusted closes from the Yahoo Finance chart API.
//
// The zero value is usable and hits the production endpoint with a
// daily-cached client. No API key is required.
type Yahoo struct {
	BaseURL string
	Client  *http.Client
}

func (y *Yahoo) Name() string { return "yahoo" }

func (y *Yahoo) base() string {
	if y.BaseURL == "" {
		return "https://query1.finance.yahoo.com"
	}
	return y.BaseURL
}

func (y *Yahoo) client() *http.Client {
	if y.Client == nil {
		y.Client = daily()
	}
	return y.Client
}

// yget is jwget with a browser User-Agent.
// Yahoo rejects the default Go user agent.
func yget(client *http.Client, addr string, data interface{}) error {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}

// yahooChart is the subset of the v8 chart response we care about.
// Price arrays are []interface{} because Yahoo encodes missing bars as null.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
				Adjclose []struct {
					Adjclose []interface{} `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func (y *Yahoo) fetchChart(addr string) (*yahooChart, error) {
	chart := new(yahooChart)
	if err := yget(y.client(), addr, chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	return chart, nil
}

// DailyCloses returns the daily adjusted close series for 'ticker'
// between 'from' and 'to' inclusive. Null bars (holidays) are skipped.
func (y *Yahoo) DailyCloses(ticker string, from, to marketrisk.Date) (*marketrisk.Series, error) {
	// period2 is exclusive in the chart API, so push it one day past 'to'.
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div,splits",
		y.base(), url.PathEscape(ticker), from.Unix(), to.Add(1).Unix())

	chart, err := y.fetchChart(addr)
	if err != nil {
		return nil, fmt.Errorf("could not fetch yahoo prices for %q: %w", ticker, err)
	}
	if len(chart.Chart.Result) == 0 {
		return new(marketrisk.Series), nil
	}
	result := chart.Chart.Result[0]

	// Prefer split- and dividend-adjusted closes; fall back to raw closes.
	var closes []interface{}
	if len(result.Indicators.Adjclose) > 0 {
		closes = result.Indicators.Adjclose[0].Adjclose
	} else if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}

	prices := new(marketrisk.Series)
	for i, ts := range result.Timestamp {
		if i >= len(closes) {
			break
		}
		v, ok := toFloat(closes[i])
		if !ok {
			continue
		}
		day := marketrisk.NewDate(time.Unix(ts, 0).UTC().Date())
		prices.Append(day, v)
	}
	return prices, nil
}
