package marketrisk

import (
	"fmt"
)

// Analyze runs the full risk pipeline over fetched price series, keyed by
// ticker: returns, volatility fits, correlations, then the risk and
// performance measures of the scenario's three portfolios.
//
// Every failure of a stage aborts the run; there is no partial report.
func Analyze(s *Scenario, prices map[string]*Series) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	from, to, err := s.Range()
	if err != nil {
		return nil, err
	}

	report := &Report{Scenario: s}

	for _, asset := range s.Assets {
		p, ok := prices[asset.Ticker]
		if !ok {
			return nil, fmt.Errorf("%w: no prices for %s", ErrInsufficientData, asset.Ticker)
		}
		// The window binds even when the source returned a broader range.
		aa, err := analyzeAsset(asset, p.Slice(from, to))
		if err != nil {
			return nil, fmt.Errorf("could not analyze %s: %w", asset.Ticker, err)
		}
		report.Assets = append(report.Assets, aa)
	}
	a, b := &report.Assets[0], &report.Assets[1]

	if report.PriceCorrelation, err = Correlation(a.Prices, b.Prices); err != nil {
		return nil, fmt.Errorf("could not correlate prices: %w", err)
	}
	if report.ReturnCorrelation, err = Correlation(a.Simple, b.Simple); err != nil {
		return nil, fmt.Errorf("could not correlate returns: %w", err)
	}

	// The evaluation day is the last day both assets traded; the holding
	// period runs from the common trading day before it.
	days, _, _ := Align(a.Simple, b.Simple)
	if len(days) < 2 {
		return nil, fmt.Errorf("%w: %d common return dates, need at least 2", ErrNoOverlap, len(days))
	}
	report.On = days[len(days)-1]
	report.HoldingDays = report.On.Sub(days[len(days)-2])

	returns := map[string]*Series{a.Asset.Ticker: a.Simple, b.Asset.Ticker: b.Simple}
	vols := map[string]float64{a.Asset.Ticker: a.LastVol(), b.Asset.Ticker: b.LastVol()}

	for _, p := range s.Portfolios() {
		pa, err := analyzePortfolio(p, s, report, returns, vols)
		if err != nil {
			return nil, fmt.Errorf("could not analyze portfolio %q: %w", p.Name, err)
		}
		report.Portfolios = append(report.Portfolios, pa)
	}

	singles := []float64{report.Portfolios[0].HistoricalVaR, report.Portfolios[1].HistoricalVaR}
	report.Diversification = DiversificationBenefit(singles, report.Portfolios[2].HistoricalVaR)

	return report, nil
}

// analyzeAsset runs the per-security stages: both return transforms and the
// volatility fit on the log returns.
func analyzeAsset(asset Asset, prices *Series) (AssetAnalysis, error) {
	aa := AssetAnalysis{Asset: asset, Prices: prices}

	var err error
	if aa.Simple, err = SimpleReturns(prices); err != nil {
		return aa, fmt.Errorf("could not compute simple returns: %w", err)
	}
	if aa.Log, err = LogReturns(prices); err != nil {
		return aa, fmt.Errorf("could not compute log returns: %w", err)
	}
	if aa.Fit, err = FitGarch(aa.Log); err != nil {
		return aa, fmt.Errorf("could not fit volatility model: %w", err)
	}
	return aa, nil
}

// analyzePortfolio computes the risk and performance measures of one
// portfolio over the blended return series.
func analyzePortfolio(p Portfolio, s *Scenario, report *Report, returns map[string]*Series, vols map[string]float64) (PortfolioAnalysis, error) {
	pa := PortfolioAnalysis{Portfolio: p}

	blended, err := p.Blend(returns)
	if err != nil {
		return pa, err
	}

	if pa.HistoricalVaR, err = HistoricalVaR(blended, p.Notional, s.Confidence); err != nil {
		return pa, err
	}
	if pa.Shortfall, err = ExpectedShortfall(blended, p.Notional, s.Confidence); err != nil {
		return pa, err
	}
	if pa.DeltaNormalVaR, err = DeltaNormalVaR(blended, p.Notional, s.Confidence); err != nil {
		return pa, err
	}

	if pa.Realized, err = p.RealizedReturn(report.On, returns); err != nil {
		return pa, err
	}
	pa.RealizedDollars = pa.Realized * p.Notional

	if pa.Vol, err = p.BlendedVol(vols); err != nil {
		return pa, err
	}
	pa.Sharpe = SharpeRatio(pa.Realized, s.RiskFreeRate, pa.Vol)
	pa.RAROC = RAROC(pa.RealizedDollars, s.RiskFreeRate, report.HoldingDays, p.Notional, pa.DeltaNormalVaR)

	return pa, nil
}
