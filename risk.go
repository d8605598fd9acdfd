package marketrisk

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Correlation returns the Pearson correlation of two series aligned by date.
// Dates present in only one series are ignored.
//
// It returns ErrNoOverlap when fewer than two dates are common, and
// ErrZeroVariance when either aligned series is constant.
func Correlation(a, b *Series) (float64, error) {
	_, x, y := Align(a, b)
	if len(x) < 2 {
		return 0, fmt.Errorf("%w: %d common dates, need at least 2", ErrNoOverlap, len(x))
	}
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return 0, fmt.Errorf("%w: correlation is undefined on a constant series", ErrZeroVariance)
	}
	return stat.Correlation(x, y, nil), nil
}

// HistoricalVaR estimates value at risk by historical simulation: the
// (1-confidence) empirical quantile of the simple returns, scaled by the
// notional. The loss is reported as a positive dollar figure.
func HistoricalVaR(returns *Series, notional, confidence float64) (float64, error) {
	q, err := returnQuantile(returns, confidence)
	if err != nil {
		return 0, err
	}
	return math.Abs(q) * notional, nil
}

// ExpectedShortfall estimates the average dollar loss in the tail at or
// below the historical VaR threshold, as a positive figure. It is at least
// as large as HistoricalVaR whenever the tail is made of losses.
func ExpectedShortfall(returns *Series, notional, confidence float64) (float64, error) {
	q, err := returnQuantile(returns, confidence)
	if err != nil {
		return 0, err
	}
	sum, n := 0.0, 0
	for _, r := range returns.Values() {
		if r <= q {
			sum += r
			n++
		}
	}
	// n >= 1: the quantile is one of the observations.
	return math.Abs(sum/float64(n)) * notional, nil
}

// returnQuantile is the empirical (1-confidence) return quantile shared by
// the historical measures: the smallest observation whose empirical CDF
// reaches the tail probability.
func returnQuantile(returns *Series, confidence float64) (float64, error) {
	if returns.Len() == 0 {
		return 0, fmt.Errorf("%w: no returns to take a quantile of", ErrInsufficientData)
	}
	sorted := returns.Floats()
	slices.Sort(sorted)
	return stat.Quantile(1-confidence, stat.Empirical, sorted, nil), nil
}

// DeltaNormalVaR estimates value at risk parametrically, assuming normally
// distributed returns: z(confidence) x the sample standard deviation of the
// simple returns x the notional, as a positive dollar figure.
//
// It returns ErrInsufficientData for fewer than 2 returns and
// ErrZeroVariance for a constant series, where the estimate would be a
// meaningless zero.
func DeltaNormalVaR(returns *Series, notional, confidence float64) (float64, error) {
	if returns.Len() < 2 {
		return 0, fmt.Errorf("%w: volatility needs at least 2 returns, got %d", ErrInsufficientData, returns.Len())
	}
	sigma := stat.StdDev(returns.Floats(), nil)
	if sigma == 0 {
		return 0, fmt.Errorf("%w: returns are constant, parametric VaR would be zero", ErrZeroVariance)
	}
	z := distuv.UnitNormal.Quantile(confidence)
	return math.Abs(z*sigma) * notional, nil
}

// DiversificationBenefit is the saving from holding the assets together:
// the sum of the standalone dollar VaRs minus the combined portfolio VaR.
// It is zero when the assets move in lockstep and grows as they decouple.
func DiversificationBenefit(standalone []float64, combined float64) float64 {
	sum := 0.0
	for _, v := range standalone {
		sum += v
	}
	return sum - combined
}
