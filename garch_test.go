package marketrisk

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// simulatedReturns generates a deterministic GARCH(1,1) sample so the fit
// tests exercise a surface the model can actually explain.
func simulatedReturns(n int, omega, alpha, beta float64) *Series {
	rng := rand.New(rand.NewSource(1))
	s := &Series{}
	day := NewDate(2021, 1, 4)
	h := omega / (1 - alpha - beta)
	eps := 0.0
	for i := range n {
		if i > 0 {
			h = omega + alpha*eps*eps + beta*h
		}
		eps = math.Sqrt(h) * rng.NormFloat64()
		s.Append(day.Add(i), eps)
	}
	return s
}

func TestFitGarch_Constraints(t *testing.T) {
	returns := simulatedReturns(500, 1e-5, 0.10, 0.85)

	fit, err := FitGarch(returns)
	if err != nil {
		t.Fatalf("FitGarch() error = %v", err)
	}

	if fit.Omega <= 0 {
		t.Errorf("omega = %v, want > 0", fit.Omega)
	}
	if fit.Alpha < 0 {
		t.Errorf("alpha = %v, want >= 0", fit.Alpha)
	}
	if fit.Beta < 0 {
		t.Errorf("beta = %v, want >= 0", fit.Beta)
	}
	if p := fit.Persistence(); p >= 1 {
		t.Errorf("alpha+beta = %v, want < 1 for stationarity", p)
	}
	if math.IsNaN(fit.LogLikelihood) || math.IsInf(fit.LogLikelihood, 0) {
		t.Errorf("log-likelihood = %v, want finite", fit.LogLikelihood)
	}
	if fit.Observations != returns.Len() {
		t.Errorf("observations = %d, want %d", fit.Observations, returns.Len())
	}
	if lrv := fit.LongRunVariance(); lrv <= 0 {
		t.Errorf("long-run variance = %v, want > 0", lrv)
	}
}

func TestFitGarch_Vols(t *testing.T) {
	returns := simulatedReturns(300, 2e-5, 0.08, 0.88)

	fit, err := FitGarch(returns)
	if err != nil {
		t.Fatalf("FitGarch() error = %v", err)
	}

	vols := fit.Vols()
	if vols.Len() != returns.Len() {
		t.Fatalf("Vols() len = %d, want %d", vols.Len(), returns.Len())
	}
	for day, v := range vols.Values() {
		if v <= 0 || math.IsNaN(v) {
			t.Fatalf("conditional volatility on %s = %v, want > 0", day, v)
		}
	}

	// h(1) is seeded with the sample variance, before any recursion.
	wantFirst := math.Sqrt(sampleVariance(returns.Floats()))
	if _, first := vols.At(0); math.Abs(first-wantFirst) > 1e-12 {
		t.Errorf("first conditional volatility = %v, want sample stddev %v", first, wantFirst)
	}

	// Dates carry over from the fitted returns unchanged.
	firstDay, _ := vols.At(0)
	wantDay, _ := returns.At(0)
	if firstDay != wantDay {
		t.Errorf("first volatility dated %v, want %v", firstDay, wantDay)
	}
}

func sampleVariance(xs []float64) float64 {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	v := 0.0
	for _, x := range xs {
		v += (x - mean) * (x - mean)
	}
	return v / float64(len(xs)-1)
}

func TestFitGarch_Params(t *testing.T) {
	returns := simulatedReturns(400, 1e-5, 0.10, 0.85)

	fit, err := FitGarch(returns)
	if err != nil {
		t.Fatalf("FitGarch() error = %v", err)
	}

	params := fit.Params()
	if len(params) != 3 {
		t.Fatalf("Params() len = %d, want 3", len(params))
	}
	wantNames := []string{"omega", "alpha", "beta"}
	wantValues := []float64{fit.Omega, fit.Alpha, fit.Beta}
	for i, p := range params {
		if p.Name != wantNames[i] {
			t.Errorf("params[%d].Name = %q, want %q", i, p.Name, wantNames[i])
		}
		if p.Value != wantValues[i] {
			t.Errorf("params[%d].Value = %v, want %v", i, p.Value, wantValues[i])
		}
		// Inference columns are either all defined or NaN on a singular
		// Hessian; when defined they must be consistent.
		if !math.IsNaN(p.StdErr) {
			if p.StdErr <= 0 {
				t.Errorf("params[%d].StdErr = %v, want > 0", i, p.StdErr)
			}
			if want := p.Value / p.StdErr; math.Abs(p.Z-want) > 1e-12 {
				t.Errorf("params[%d].Z = %v, want %v", i, p.Z, want)
			}
			if p.PValue < 0 || p.PValue > 1 {
				t.Errorf("params[%d].PValue = %v, want in [0,1]", i, p.PValue)
			}
		}
	}
}

func TestFitGarch_Errors(t *testing.T) {
	short := &Series{}
	for i := range 9 {
		short.Append(NewDate(2021, 1, 4+i), 0.01*float64(i%3-1))
	}

	constant := &Series{}
	for i := range 50 {
		constant.Append(NewDate(2021, 1, 4+i), 0.01)
	}

	tests := []struct {
		name    string
		returns *Series
		want    error
	}{
		{"too few observations", short, ErrInsufficientData},
		{"empty", &Series{}, ErrInsufficientData},
		{"constant returns", constant, ErrZeroVariance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitGarch(tt.returns)
			if !errors.Is(err, tt.want) {
				t.Errorf("FitGarch() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// The logistic map keeps any optimizer point inside the stationarity region.
func TestGarchNatural(t *testing.T) {
	points := [][]float64{
		{0, 0, 0},
		{-20, -5, 5},
		{3, 10, 10},
		{-40, 30, -30},
	}
	for _, x := range points {
		omega, alpha, beta := garchNatural(x)
		if omega <= 0 {
			t.Errorf("garchNatural(%v) omega = %v, want > 0", x, omega)
		}
		if alpha < 0 || beta < 0 {
			t.Errorf("garchNatural(%v) alpha, beta = %v, %v, want >= 0", x, alpha, beta)
		}
		if alpha+beta >= 1 {
			t.Errorf("garchNatural(%v) alpha+beta = %v, want < 1", x, alpha+beta)
		}
	}
}
