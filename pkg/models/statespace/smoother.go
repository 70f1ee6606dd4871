package statespace

// smoothedStep is the Rauch-Tung-Striebel posterior for one
// observation time. lagCov holds Cov(x_t, x_{t+1} | all observations),
// which the EM M-step needs; it is zero at the last step.
type smoothedStep struct {
	mean     float64
	variance float64
	lagCov   float64
}

// runSmoother refines the forward pass with future information. The
// last smoothed state equals the last filtered state, and smoothed
// variances never exceed the filtered ones.
func runSmoother(steps []filterStep) []smoothedStep {
	n := len(steps)
	out := make([]smoothedStep, n)
	if n == 0 {
		return out
	}

	out[n-1] = smoothedStep{
		mean:     steps[n-1].mean,
		variance: steps[n-1].variance,
	}

	for t := n - 2; t >= 0; t-- {
		next := steps[t+1]
		// Transition coefficient is 1, so the gain reduces to the
		// filtered variance over the next predicted variance.
		gain := steps[t].variance / next.predVariance

		out[t] = smoothedStep{
			mean:     steps[t].mean + gain*(out[t+1].mean-next.predMean),
			variance: steps[t].variance + gain*gain*(out[t+1].variance-next.predVariance),
			lagCov:   gain * out[t+1].variance,
		}
		if out[t].variance < 0 {
			out[t].variance = 0
		}
	}
	return out
}
