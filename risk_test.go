package marketrisk

import (
	"errors"
	"math"
	"testing"
)

// rampReturns builds n returns on consecutive days, ascending from lo in
// the given step, so the worst value sits on the first day and every value
// is distinct.
func rampReturns(n int, lo, step float64) *Series {
	s := &Series{}
	day := NewDate(2021, 1, 4)
	for i := range n {
		s.Append(day.Add(i), lo+step*float64(i))
	}
	return s
}

// workedReturns builds 100 returns with the worst value duplicated on the
// two first days, so the 1% quantile is that value under any resolution of
// the n*p = 1 boundary.
func workedReturns(worst, step float64) *Series {
	s := &Series{}
	day := NewDate(2021, 1, 4)
	s.Append(day, worst)
	for i := 1; i < 100; i++ {
		s.Append(day.Add(i), worst+step*float64(i-1))
	}
	return s
}

// scaledReturns returns a copy of s with every value multiplied by k.
func scaledReturns(s *Series, k float64) *Series {
	out := &Series{}
	for day, v := range s.Values() {
		out.Append(day, k*v)
	}
	return out
}

func TestCorrelation(t *testing.T) {
	a := rampReturns(50, -0.05, 0.001)

	tests := []struct {
		name string
		b    *Series
		want float64
	}{
		{"perfectly correlated", scaledReturns(a, 0.6), 1},
		{"perfectly anti-correlated", scaledReturns(a, -1), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Correlation(a, tt.b)
			if err != nil {
				t.Fatalf("Correlation() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Correlation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCorrelation_Errors(t *testing.T) {
	a := rampReturns(50, -0.05, 0.001)

	disjoint := &Series{}
	disjoint.Append(NewDate(2030, 1, 1), 0.01)
	disjoint.Append(NewDate(2030, 1, 2), 0.02)

	constant := &Series{}
	for i := range 50 {
		constant.Append(NewDate(2021, 1, 4+i), 0.01)
	}

	tests := []struct {
		name string
		b    *Series
		want error
	}{
		{"no overlap", disjoint, ErrNoOverlap},
		{"single common date", a.Slice(NewDate(2021, 1, 4), NewDate(2021, 1, 4)), ErrNoOverlap},
		{"constant series", constant, ErrZeroVariance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Correlation(a, tt.b); !errors.Is(err, tt.want) {
				t.Errorf("Correlation() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// Worked scenario: 100 returns per asset with the worst day at -5%, asset 2
// moving in lockstep with asset 1 at 0.6x. Standalone VaRs scale with the
// worst return, and the equal blend of both shows zero diversification
// benefit.
func TestHistoricalVaR_WorkedScenario(t *testing.T) {
	const notional = 1_000_000.0
	asset1 := workedReturns(-0.05, 0.001) // worst return -5%
	asset2 := scaledReturns(asset1, 0.6)  // worst return -3%

	var1, err := HistoricalVaR(asset1, notional, 0.99)
	if err != nil {
		t.Fatalf("HistoricalVaR(asset1) error = %v", err)
	}
	if math.Abs(var1-50_000) > 1e-6 {
		t.Errorf("VaR(asset1) = %v, want 50000", var1)
	}

	var2, err := HistoricalVaR(asset2, notional, 0.99)
	if err != nil {
		t.Fatalf("HistoricalVaR(asset2) error = %v", err)
	}
	if math.Abs(var2-30_000) > 1e-6 {
		t.Errorf("VaR(asset2) = %v, want 30000", var2)
	}

	blend := EqualBlend("blend", 2*notional, "A", "B")
	combined, err := blend.Blend(map[string]*Series{"A": asset1, "B": asset2})
	if err != nil {
		t.Fatalf("Blend() error = %v", err)
	}
	varBlend, err := HistoricalVaR(combined, 2*notional, 0.99)
	if err != nil {
		t.Fatalf("HistoricalVaR(blend) error = %v", err)
	}
	// Worst blended return is (-5% - 3%)/2 = -4% on 2M.
	if math.Abs(varBlend-80_000) > 1e-6 {
		t.Errorf("VaR(blend) = %v, want 80000", varBlend)
	}

	// Perfect correlation leaves nothing to diversify.
	if benefit := DiversificationBenefit([]float64{var1, var2}, varBlend); math.Abs(benefit) > 1e-6 {
		t.Errorf("diversification benefit = %v, want 0 under perfect correlation", benefit)
	}
}

func TestDiversificationBenefit_AntiCorrelated(t *testing.T) {
	const notional = 1_000_000.0
	asset1 := rampReturns(100, -0.05, 0.001)
	asset2 := scaledReturns(asset1, -1)

	var1, err := HistoricalVaR(asset1, notional, 0.99)
	if err != nil {
		t.Fatal(err)
	}
	var2, err := HistoricalVaR(asset2, notional, 0.99)
	if err != nil {
		t.Fatal(err)
	}

	blend := EqualBlend("hedged", 2*notional, "A", "B")
	combined, err := blend.Blend(map[string]*Series{"A": asset1, "B": asset2})
	if err != nil {
		t.Fatal(err)
	}
	varBlend, err := HistoricalVaR(combined, 2*notional, 0.99)
	if err != nil {
		t.Fatal(err)
	}

	// The two legs cancel exactly, so the whole standalone risk is saved.
	if varBlend != 0 {
		t.Errorf("VaR(hedged blend) = %v, want 0", varBlend)
	}
	if benefit := DiversificationBenefit([]float64{var1, var2}, varBlend); benefit <= 0 {
		t.Errorf("diversification benefit = %v, want > 0 under imperfect correlation", benefit)
	}
}

func TestExpectedShortfall(t *testing.T) {
	const notional = 1_000_000.0
	// 150 observations put the 1% quantile on the second-worst value, so
	// the tail holds two distinct losses and ES exceeds VaR strictly.
	returns := rampReturns(150, -0.06, 0.0005)

	v, err := HistoricalVaR(returns, notional, 0.99)
	if err != nil {
		t.Fatal(err)
	}
	es, err := ExpectedShortfall(returns, notional, 0.99)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(v-59_500) > 1e-6 {
		t.Errorf("VaR = %v, want 59500", v)
	}
	// Tail = mean(-6%, -5.95%) = -5.975% on 1M.
	if math.Abs(es-59_750) > 1e-6 {
		t.Errorf("ES = %v, want 59750", es)
	}
	if es < v {
		t.Errorf("ES = %v < VaR = %v, tail average cannot beat its threshold", es, v)
	}
}

func TestHistoricalMeasures_Errors(t *testing.T) {
	if _, err := HistoricalVaR(&Series{}, 1e6, 0.99); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("HistoricalVaR(empty) error = %v, want ErrInsufficientData", err)
	}
	if _, err := ExpectedShortfall(&Series{}, 1e6, 0.99); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("ExpectedShortfall(empty) error = %v, want ErrInsufficientData", err)
	}
}

func TestDeltaNormalVaR(t *testing.T) {
	const notional = 1_000_000.0
	returns := &Series{}
	returns.Append(NewDate(2021, 1, 4), -0.01)
	returns.Append(NewDate(2021, 1, 5), 0.01)

	got, err := DeltaNormalVaR(returns, notional, 0.99)
	if err != nil {
		t.Fatalf("DeltaNormalVaR() error = %v", err)
	}

	// Sample stddev is 0.01*sqrt(2); z(0.99) is between 2.326 and 2.327.
	sigma := 0.01 * math.Sqrt2
	if lo := 2.326 * sigma * notional; got < lo {
		t.Errorf("DeltaNormalVaR() = %v, want >= %v", got, lo)
	}
	if hi := 2.327 * sigma * notional; got > hi {
		t.Errorf("DeltaNormalVaR() = %v, want <= %v", got, hi)
	}
}

func TestDeltaNormalVaR_Errors(t *testing.T) {
	short := (&Series{}).Append(NewDate(2021, 1, 4), 0.01)

	constant := &Series{}
	for i := range 10 {
		constant.Append(NewDate(2021, 1, 4+i), 0.02)
	}

	tests := []struct {
		name    string
		returns *Series
		want    error
	}{
		{"one return", short, ErrInsufficientData},
		{"constant returns", constant, ErrZeroVariance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DeltaNormalVaR(tt.returns, 1e6, 0.99); !errors.Is(err, tt.want) {
				t.Errorf("DeltaNormalVaR() error = %v, want %v", err, tt.want)
			}
		})
	}
}
