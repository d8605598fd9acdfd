package marketrisk

// AssetAnalysis carries everything computed for one security: its price
// window, both return series, and the fitted volatility model.
type AssetAnalysis struct {
	Asset  Asset
	Prices *Series
	Simple *Series // daily simple returns
	Log    *Series // daily log returns
	Fit    *GarchFit
}

// LastVol returns the asset's conditional volatility on the last fitted day.
func (a *AssetAnalysis) LastVol() float64 {
	_, v := a.Fit.Vols().Latest()
	return v
}

// PortfolioAnalysis carries the risk and performance measures of one
// portfolio. Dollar figures are positive loss amounts.
type PortfolioAnalysis struct {
	Portfolio Portfolio

	HistoricalVaR  float64
	Shortfall      float64
	DeltaNormalVaR float64

	Realized        float64 // simple return on the evaluation day
	RealizedDollars float64
	Vol             float64 // blended last conditional volatility
	Sharpe          float64
	RAROC           float64
}

// Report is the outcome of one full analysis run, ready to render.
type Report struct {
	Scenario *Scenario

	On          Date // evaluation day: the last common trading day
	HoldingDays int  // calendar days since the previous common trading day

	Assets []AssetAnalysis

	PriceCorrelation  float64
	ReturnCorrelation float64

	Portfolios []PortfolioAnalysis

	// Diversification is the historical-VaR benefit of the blend: the sum of
	// the single-asset VaRs minus the blended portfolio VaR.
	Diversification float64
}
