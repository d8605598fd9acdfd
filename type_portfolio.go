package marketrisk

import "fmt"

// Allocation is one asset's share of a portfolio.
type Allocation struct {
	Ticker string
	Weight float64 // fraction of the portfolio notional, in (0, 1]
}

// Portfolio is a nominal dollar value spread over one or more assets.
// The three portfolios of a standard run are 100% of each asset and an
// equal-weight blend of both.
type Portfolio struct {
	Name        string
	Notional    float64 // total position in dollars
	Allocations []Allocation
}

// Single returns a portfolio fully invested in one asset.
func Single(ticker string, notional float64) Portfolio {
	return Portfolio{
		Name:        ticker,
		Notional:    notional,
		Allocations: []Allocation{{Ticker: ticker, Weight: 1}},
	}
}

// EqualBlend returns a portfolio splitting the notional evenly over the
// given assets.
func EqualBlend(name string, notional float64, tickers ...string) Portfolio {
	p := Portfolio{Name: name, Notional: notional}
	w := 1 / float64(len(tickers))
	for _, t := range tickers {
		p.Allocations = append(p.Allocations, Allocation{Ticker: t, Weight: w})
	}
	return p
}

// Validate checks that the portfolio is investable: a positive notional and
// weights over distinct tickers summing to one.
func (p Portfolio) Validate() error {
	if p.Notional <= 0 {
		return fmt.Errorf("portfolio %q: notional must be positive, got %v", p.Name, p.Notional)
	}
	if len(p.Allocations) == 0 {
		return fmt.Errorf("portfolio %q: no allocations", p.Name)
	}
	sum := 0.0
	seen := map[string]bool{}
	for _, a := range p.Allocations {
		if a.Weight <= 0 {
			return fmt.Errorf("portfolio %q: weight of %s must be positive, got %v", p.Name, a.Ticker, a.Weight)
		}
		if seen[a.Ticker] {
			return fmt.Errorf("portfolio %q: duplicate allocation for %s", p.Name, a.Ticker)
		}
		seen[a.Ticker] = true
		sum += a.Weight
	}
	if sum < 0.999999 || sum > 1.000001 {
		return fmt.Errorf("portfolio %q: weights sum to %v, want 1", p.Name, sum)
	}
	return nil
}

// Capital returns the dollars allocated to one ticker, zero if the
// portfolio does not hold it.
func (p Portfolio) Capital(ticker string) float64 {
	for _, a := range p.Allocations {
		if a.Ticker == ticker {
			return a.Weight * p.Notional
		}
	}
	return 0
}

// Blend combines the per-asset return series into the portfolio's own
// return series: on every date common to all assets, the weighted sum of
// their returns. All risk measures of a multi-asset portfolio run on this
// series, never on a combination of per-asset results.
//
// It returns ErrNoOverlap when the assets share no dates.
func (p Portfolio) Blend(returns map[string]*Series) (*Series, error) {
	var out *Series
	for _, a := range p.Allocations {
		s, ok := returns[a.Ticker]
		if !ok {
			return nil, fmt.Errorf("portfolio %q: no return series for %s", p.Name, a.Ticker)
		}
		weighted := &Series{days: s.Dates(), vals: make([]float64, s.Len())}
		for i, v := range s.vals {
			weighted.vals[i] = a.Weight * v
		}
		if out == nil {
			out = weighted
			continue
		}
		days, x, y := Align(out, weighted)
		sum := make([]float64, len(days))
		for i := range sum {
			sum[i] = x[i] + y[i]
		}
		out = &Series{days: days, vals: sum}
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("%w: portfolio %q assets share no dates", ErrNoOverlap, p.Name)
	}
	return out, nil
}
