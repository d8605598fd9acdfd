package marketrisk

// PriceSource fetches daily adjusted closes for a ticker over a date range,
// both bounds included. A window with no trading days yields an empty
// series; unknown tickers surface however the remote service reports them,
// as an error or as an empty series.
//
// Implementations live in the marketdata package.
type PriceSource interface {
	// Name identifies the source in reports and error messages.
	Name() string
	// DailyCloses returns one adjusted close per trading day.
	DailyCloses(ticker string, from, to Date) (*Series, error)
}
