package marketrisk

import (
	"fmt"
	"math"
)

// SimpleReturns computes the daily simple returns (Pt-Pt-1)/Pt-1 of a price
// series. The result has one point less than the input, each return dated on
// the later of the two days it spans.
//
// It returns ErrInsufficientData when prices holds fewer than two points, and
// ErrNonPositivePrice when a price is zero or negative.
func SimpleReturns(prices *Series) (*Series, error) {
	return returns(prices, func(prev, cur float64) float64 { return (cur - prev) / prev })
}

// LogReturns computes the daily log returns ln(Pt/Pt-1) of a price series.
// The result has one point less than the input, each return dated on the
// later of the two days it spans.
//
// It returns ErrInsufficientData when prices holds fewer than two points, and
// ErrNonPositivePrice when a price is zero or negative.
func LogReturns(prices *Series) (*Series, error) {
	return returns(prices, func(prev, cur float64) float64 { return math.Log(cur / prev) })
}

func returns(prices *Series, f func(prev, cur float64) float64) (*Series, error) {
	if prices.Len() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 prices, got %d", ErrInsufficientData, prices.Len())
	}

	out := &Series{
		days: make([]Date, 0, prices.Len()-1),
		vals: make([]float64, 0, prices.Len()-1),
	}
	prevDay, prev := prices.At(0)
	if prev <= 0 {
		return nil, fmt.Errorf("%w: %v on %s", ErrNonPositivePrice, prev, prevDay)
	}
	for i := 1; i < prices.Len(); i++ {
		day, cur := prices.At(i)
		if cur <= 0 {
			return nil, fmt.Errorf("%w: %v on %s", ErrNonPositivePrice, cur, day)
		}
		out.days = append(out.days, day)
		out.vals = append(out.vals, f(prev, cur))
		prev = cur
	}
	return out, nil
}
