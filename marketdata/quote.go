package marketdata

import (
	"fmt"
	"math"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

// LatestQuote returns the current market price for 'ticker'.
//
// It reads the regular market price straight out of the chart metadata,
// so it works during trading hours as well as after the close.
func (y *Yahoo) LatestQuote(ticker string) (float64, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", y.base(), url.PathEscape(ticker))

	var jobj any
	if err := yget(y.client(), addr, &jobj); err != nil {
		return math.NaN(), fmt.Errorf("error retrieving %q: %w", ticker, err)
	}

	path := "$.chart.result[0].meta.regularMarketPrice"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %w", ticker, path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("error parsing %q: %q %s %v", ticker, path, "not a float", jval)
	}
	if val == 0 {
		return math.NaN(), fmt.Errorf("empty quote for %s", ticker)
	}
	return val, nil
}
