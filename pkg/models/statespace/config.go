package statespace

// Config carries every calibration constant of the pipeline. A model
// variant is a Config; the engine itself is shared.
type Config struct {
	// Series building
	MinPolls     int
	PollingError float64 // added in quadrature to 1/sampleSize

	// House effects
	Shrinkage   float64 // pollster counts are shrunk by n/(n+Shrinkage)
	HouseWindow int     // moving-average window for residual reference

	// Filter / EM
	InitialVariance float64 // non-informative prior on the latent margin
	VarianceFloor   float64 // lower bound on any posterior variance
	Sigma2Min       float64 // lower bound on the diffusion variance
	MaxIterations   int
	Tolerance       float64 // relative log-likelihood change to stop EM

	// Combination
	PriorWeight    float64 // scale of the fundamentals weight schedule
	BiasCorrection float64 // known systematic polling error, subtracted
	BiasVariance   float64 // fixed uncertainty for the bias term

	// Win probability
	ClipLow  float64
	ClipHigh float64
}

func DefaultConfig() Config {
	return Config{
		MinPolls:        10,
		PollingError:    0.03,
		Shrinkage:       10,
		HouseWindow:     5,
		InitialVariance: 1.0,
		VarianceFloor:   1e-8,
		Sigma2Min:       1e-6,
		MaxIterations:   50,
		Tolerance:       1e-6,
		PriorWeight:     0.25,
		BiasCorrection:  0.01,
		BiasVariance:    0.0004,
		ClipLow:         0.02,
		ClipHigh:        0.98,
	}
}
