package statespace

import (
	"math"

	"go.uber.org/zap"

	"github.com/statecast/statecast/pkg/common"
)

// dtEps is the smallest gap (in days) that contributes to the M-step.
// Same-day poll pairs carry no information about drift or diffusion.
const dtEps = 1e-9

// FitDiagnostics reports how the EM iteration ended. None of its
// states is an error: a capped or floored fit is still usable.
type FitDiagnostics struct {
	LogLikelihood float64
	Iterations    int
	Converged     bool
	Floored       bool // diffusion variance hit Sigma2Min at least once
}

// Fit estimates drift and diffusion variance by expectation
// maximization: each iteration runs the forward filter and backward
// smoother, then applies the closed-form updates from the smoothed
// sufficient statistics. Pure function of its inputs; fitting the same
// series twice yields identical parameters.
func Fit(series common.Series, init Parameters, cfg Config, logger *zap.Logger) (Parameters, FitDiagnostics, error) {
	params := init
	var diag FitDiagnostics

	if series.Len() < 2 {
		// Nothing to estimate from; keep the initial parameters.
		diag.Converged = true
		return params, diag, nil
	}
	cutoff := series.Last().Time

	prevLL := math.Inf(-1)
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		fr, err := runFilter(series, params, cutoff, cfg)
		if err != nil {
			return params, diag, err
		}
		sm := runSmoother(fr.steps)

		diag.LogLikelihood = fr.logLikelihood
		diag.Iterations = iter + 1

		if iter > 0 {
			rel := math.Abs(fr.logLikelihood-prevLL) / (math.Abs(prevLL) + dtEps)
			if rel < cfg.Tolerance {
				diag.Converged = true
				return params, diag, nil
			}
		}
		prevLL = fr.logLikelihood

		updated, floored := mStep(fr.steps, sm, cfg)
		diag.Floored = diag.Floored || floored
		params = updated
	}

	logger.Warn("em iteration cap reached",
		zap.String("state", series.State),
		zap.Int("iterations", diag.Iterations),
		zap.Float64("log_likelihood", diag.LogLikelihood))
	return params, diag, nil
}

// mStep computes the closed-form drift and diffusion updates from the
// smoothed increments, accounting for the lag-one covariances.
func mStep(steps []filterStep, sm []smoothedStep, cfg Config) (Parameters, bool) {
	var (
		sumDx  float64
		sumDt  float64
		pairs  []int
		params Parameters
	)
	for t := 0; t+1 < len(steps); t++ {
		if steps[t+1].dt < dtEps {
			continue
		}
		sumDx += sm[t+1].mean - sm[t].mean
		sumDt += steps[t+1].dt
		pairs = append(pairs, t)
	}
	if len(pairs) == 0 || sumDt < dtEps {
		return Parameters{Drift: 0, Diffusion: cfg.Sigma2Min}, true
	}

	params.Drift = sumDx / sumDt

	var sumQ float64
	for _, t := range pairs {
		dt := steps[t+1].dt
		dx := sm[t+1].mean - sm[t].mean
		// E[(x_{t+1} - x_t)^2] under the smoothed posterior.
		dx2 := dx*dx + sm[t].variance + sm[t+1].variance - 2*sm[t].lagCov
		sumQ += (dx2 - 2*params.Drift*dt*dx + params.Drift*params.Drift*dt*dt) / dt
	}
	params.Diffusion = sumQ / float64(len(pairs))

	floored := false
	if params.Diffusion < cfg.Sigma2Min {
		params.Diffusion = cfg.Sigma2Min
		floored = true
	}
	return params, floored
}

func gaussianLogPdf(residual, variance float64) float64 {
	return -0.5 * (math.Log(2*math.Pi*variance) + residual*residual/variance)
}
