package marketrisk

import "errors"

// Sentinel errors returned by the analysis stages. Callers match them with
// errors.Is; the wrapped message carries the offending ticker or date.
var (
	// ErrInsufficientData reports a series too short for the requested
	// computation (returns need 2 prices, a fit needs 10 returns).
	ErrInsufficientData = errors.New("insufficient data")

	// ErrNonPositivePrice reports a zero or negative close in a price series.
	// Log returns are undefined there.
	ErrNonPositivePrice = errors.New("non-positive price")

	// ErrZeroVariance reports a constant series where a variance-based
	// statistic (correlation, volatility fit) is undefined.
	ErrZeroVariance = errors.New("zero variance")

	// ErrNotConverged reports a volatility fit whose optimizer failed to
	// reach a usable optimum.
	ErrNotConverged = errors.New("fit did not converge")

	// ErrNoOverlap reports two series with fewer than two common dates.
	ErrNoOverlap = errors.New("no overlapping dates")
)
