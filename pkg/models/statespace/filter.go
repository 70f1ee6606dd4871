package statespace

import (
	"time"

	"github.com/statecast/statecast/pkg/common"
)

const hoursPerDay = 24

// Parameters are the latent-process coefficients, in margin units per
// day. Frozen once returned from Fit.
type Parameters struct {
	Drift     float64 // mu
	Diffusion float64 // sigma^2
}

func DefaultParameters() Parameters {
	return Parameters{Drift: 0, Diffusion: 1e-4}
}

// Estimate is a (mean, variance) pair of the latent margin.
type Estimate struct {
	Mean     float64
	Variance float64
}

// filterStep is the per-observation filter state. The pre-update
// prediction is kept because both the smoother and the innovation
// likelihood need it.
type filterStep struct {
	dt           float64 // days since the previous observation
	predMean     float64
	predVariance float64
	mean         float64
	variance     float64
}

type filterResult struct {
	steps         []filterStep
	logLikelihood float64
	extrapolated  Estimate // at the cutoff date
	floored       bool     // a variance update hit the floor
}

// runFilter runs the forward Kalman pass over the series and
// extrapolates the final state to the cutoff date. The latent process
// is x_{t+1} = x_t + mu*dt + N(0, sigma^2*dt); observations are
// y_t = x_t + N(0, R_t).
func runFilter(series common.Series, params Parameters, cutoff time.Time, cfg Config) (filterResult, error) {
	if err := validateSeries(series); err != nil {
		return filterResult{}, err
	}

	var res filterResult
	res.steps = make([]filterStep, 0, series.Len())

	// Prior: first observed margin with a non-informative variance.
	mean := series.Observations[0].Margin
	variance := cfg.InitialVariance

	prev := series.Observations[0].Time
	for _, obs := range series.Observations {
		dt := daysBetween(prev, obs.Time)
		prev = obs.Time

		predMean := mean + params.Drift*dt
		predVariance := variance + params.Diffusion*dt

		innovation := obs.Margin - predMean
		s := predVariance + obs.Variance
		res.logLikelihood += gaussianLogPdf(innovation, s)

		gain := predVariance / s
		mean = predMean + gain*innovation
		variance = (1 - gain) * predVariance
		if variance < cfg.VarianceFloor {
			variance = cfg.VarianceFloor
			res.floored = true
		}

		res.steps = append(res.steps, filterStep{
			dt:           dt,
			predMean:     predMean,
			predVariance: predVariance,
			mean:         mean,
			variance:     variance,
		})
	}

	// One more predict over the residual gap to the cutoff. A zero gap
	// reproduces the last filtered state exactly.
	rem := daysBetween(series.Last().Time, cutoff)
	res.extrapolated = Estimate{
		Mean:     mean + params.Drift*rem,
		Variance: variance + params.Diffusion*rem,
	}
	return res, nil
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / hoursPerDay
}
