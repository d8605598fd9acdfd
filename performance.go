package marketrisk

import (
	"fmt"
	"math"
)

// RealizedReturn returns the portfolio's simple return on one day: the
// weighted sum of each asset's return that day.
//
// It returns ErrInsufficientData when an asset has no return on that day.
func (p Portfolio) RealizedReturn(day Date, returns map[string]*Series) (float64, error) {
	total := 0.0
	for _, a := range p.Allocations {
		s, ok := returns[a.Ticker]
		if !ok {
			return 0, fmt.Errorf("portfolio %q: no return series for %s", p.Name, a.Ticker)
		}
		r, ok := s.Get(day)
		if !ok {
			return 0, fmt.Errorf("%w: %s has no return on %s", ErrInsufficientData, a.Ticker, day)
		}
		total += a.Weight * r
	}
	return total, nil
}

// BlendedVol returns the portfolio volatility given each asset's last
// conditional volatility: the weighted root mean square sqrt(Σ w·v²). For a
// single asset that is the asset's own volatility; for an equal two-asset
// blend, sqrt((v1²+v2²)/2).
func (p Portfolio) BlendedVol(vols map[string]float64) (float64, error) {
	total := 0.0
	for _, a := range p.Allocations {
		v, ok := vols[a.Ticker]
		if !ok {
			return 0, fmt.Errorf("portfolio %q: no volatility for %s", p.Name, a.Ticker)
		}
		total += a.Weight * v * v
	}
	return math.Sqrt(total), nil
}

// SharpeRatio is the realized return in excess of the risk-free rate, per
// unit of volatility. vol must be positive, so the sign of the ratio always
// matches the sign of the excess return.
func SharpeRatio(realized, riskFree, vol float64) float64 {
	return (realized - riskFree) / vol
}

// RAROC is the risk-adjusted return on capital: the realized dollar return
// net of the risk-free carry over the holding period, divided by the
// economic capital backing the position. The annual rate is prorated
// linearly over the holding period in calendar days, on a 365-day year.
// capital must be positive.
func RAROC(realizedDollars, annualRate float64, days int, notional, capital float64) float64 {
	carry := annualRate * float64(days) / 365 * notional
	return (realizedDollars - carry) / capital
}
