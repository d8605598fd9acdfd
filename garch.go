package marketrisk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minGarchObs is the smallest return sample a GARCH(1,1) fit accepts. Below
// that the likelihood surface is too flat to mean anything.
const minGarchObs = 10

// GarchParam is one fitted coefficient with its large-sample inference
// columns. StdErr, Z and PValue are NaN when the Hessian at the optimum is
// singular (typically a boundary solution).
type GarchParam struct {
	Name   string
	Value  float64
	StdErr float64
	Z      float64
	PValue float64
}

// GarchFit is the result of fitting a GARCH(1,1) conditional-variance model
//
//	h(t) = ω + α·ε(t-1)² + β·h(t-1)
//
// to a zero-mean return series by maximum likelihood under normal
// innovations. The constraints ω > 0, α ≥ 0, β ≥ 0 and α+β < 1 hold for
// every fit this package returns.
type GarchFit struct {
	Omega float64
	Alpha float64
	Beta  float64

	LogLikelihood float64
	Observations  int

	params []GarchParam
	vols   *Series
}

// Params returns the ω, α, β coefficients with standard errors, z statistics
// and two-sided p-values, in that order.
func (f *GarchFit) Params() []GarchParam { return f.params }

// Vols returns the conditional volatility series √h(t), dated like the
// returns the model was fitted on.
func (f *GarchFit) Vols() *Series { return f.vols }

// Persistence returns α+β, the decay rate of variance shocks.
func (f *GarchFit) Persistence() float64 { return f.Alpha + f.Beta }

// LongRunVariance returns ω/(1-α-β), the unconditional variance the model
// reverts to.
func (f *GarchFit) LongRunVariance() float64 { return f.Omega / (1 - f.Persistence()) }

// LongRunVol returns the square root of the long-run variance.
func (f *GarchFit) LongRunVol() float64 { return math.Sqrt(f.LongRunVariance()) }

// FitGarch fits a GARCH(1,1) model to a return series, usually daily log
// returns. The series mean is assumed to be zero, so ε(t) is the return
// itself; h(1) is seeded with the sample variance.
//
// It returns ErrInsufficientData for fewer than 10 observations,
// ErrZeroVariance for a constant series, and ErrNotConverged when the
// optimizer fails or lands on a non-finite likelihood.
func FitGarch(returns *Series) (*GarchFit, error) {
	eps := returns.Floats()
	if len(eps) < minGarchObs {
		return nil, fmt.Errorf("%w: volatility fit needs at least %d returns, got %d", ErrInsufficientData, minGarchObs, len(eps))
	}
	variance := stat.Variance(eps, nil)
	if variance <= 0 || math.IsNaN(variance) {
		return nil, fmt.Errorf("%w: returns are constant, variance model is undefined", ErrZeroVariance)
	}

	nll := garchNLL(eps, variance)

	// The optimizer runs unconstrained; the logistic map enforces ω > 0,
	// α ≥ 0, β ≥ 0 and α+β < 1.
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			omega, alpha, beta := garchNatural(x)
			return nll(omega, alpha, beta)
		},
	}

	// Start from the textbook daily-equity guess α=0.05, β=0.90, with ω
	// chosen so the long-run variance matches the sample.
	const alpha0, beta0 = 0.05, 0.90
	s0 := 1 - alpha0 - beta0
	x0 := []float64{
		math.Log(variance * s0),
		math.Log(alpha0 / s0),
		math.Log(beta0 / s0),
	}

	result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConverged, err)
	}
	if err := result.Status.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConverged, err)
	}
	if math.IsNaN(result.F) || math.IsInf(result.F, 0) {
		return nil, fmt.Errorf("%w: likelihood is not finite at the optimum", ErrNotConverged)
	}

	omega, alpha, beta := garchNatural(result.X)

	fit := &GarchFit{
		Omega:         omega,
		Alpha:         alpha,
		Beta:          beta,
		LogLikelihood: -result.F,
		Observations:  len(eps),
	}

	// Conditional volatility over the fitted sample, same recursion as the
	// likelihood.
	fit.vols = &Series{days: returns.Dates(), vals: make([]float64, len(eps))}
	h := variance
	for i := range eps {
		if i > 0 {
			h = omega + alpha*eps[i-1]*eps[i-1] + beta*h
		}
		fit.vols.vals[i] = math.Sqrt(h)
	}

	fit.params = garchInference(nll, omega, alpha, beta)
	return fit, nil
}

// garchNLL builds the negative log-likelihood of a GARCH(1,1)
// parameterization over eps, seeding h(1) with the given variance. Any
// parameterization driving h(t) non-positive scores +Inf.
func garchNLL(eps []float64, variance float64) func(omega, alpha, beta float64) float64 {
	ln2pi := math.Log(2 * math.Pi)
	return func(omega, alpha, beta float64) float64 {
		h := variance
		sum := 0.0
		for i, e := range eps {
			if i > 0 {
				h = omega + alpha*eps[i-1]*eps[i-1] + beta*h
			}
			if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
				return math.Inf(1)
			}
			sum += math.Log(h) + e*e/h
		}
		return 0.5 * (float64(len(eps))*ln2pi + sum)
	}
}

// garchNatural maps a point of the unconstrained optimizer space to the
// model space: ω = exp(x0), (α, β) = logistic shares of exp(x1), exp(x2).
func garchNatural(x []float64) (omega, alpha, beta float64) {
	den := 1 + math.Exp(x[1]) + math.Exp(x[2])
	return math.Exp(x[0]), math.Exp(x[1]) / den, math.Exp(x[2]) / den
}

// garchInference derives standard errors from the inverse Hessian of the
// negative log-likelihood at the optimum, in natural ω, α, β coordinates.
// The differentiation runs on relative offsets so the tiny scale of ω does
// not swamp the finite-difference steps.
func garchInference(nll func(omega, alpha, beta float64) float64, omega, alpha, beta float64) []GarchParam {
	scale := []float64{omega, alpha, beta}
	g := func(u []float64) float64 {
		return nll(omega*(1+u[0]), alpha*(1+u[1]), beta*(1+u[2]))
	}

	hess := mat.NewSymDense(3, nil)
	fd.Hessian(hess, g, []float64{0, 0, 0}, nil)

	se := []float64{math.NaN(), math.NaN(), math.NaN()}
	var inv mat.Dense
	if err := inv.Inverse(hess); err == nil {
		for i := range se {
			if v := inv.At(i, i) * scale[i] * scale[i]; v > 0 {
				se[i] = math.Sqrt(v)
			}
		}
	}

	names := []string{"omega", "alpha", "beta"}
	params := make([]GarchParam, 3)
	for i := range params {
		z := scale[i] / se[i]
		params[i] = GarchParam{
			Name:   names[i],
			Value:  scale[i],
			StdErr: se[i],
			Z:      z,
			PValue: 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z))),
		}
	}
	return params
}
