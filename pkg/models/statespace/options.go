package statespace

type Option func(*Config)

func WithMinPolls(n int) Option {
	return func(c *Config) {
		c.MinPolls = n
	}
}

func WithShrinkage(lambda float64) Option {
	return func(c *Config) {
		c.Shrinkage = lambda
	}
}

func WithDiffusionFloor(sigma2Min float64) Option {
	return func(c *Config) {
		c.Sigma2Min = sigma2Min
	}
}

func WithClipBounds(lo, hi float64) Option {
	return func(c *Config) {
		c.ClipLow = lo
		c.ClipHigh = hi
	}
}

func WithPriorWeight(w float64) Option {
	return func(c *Config) {
		c.PriorWeight = w
	}
}

func WithBiasCorrection(bias float64) Option {
	return func(c *Config) {
		c.BiasCorrection = bias
	}
}

func WithMaxIterations(n int) Option {
	return func(c *Config) {
		c.MaxIterations = n
	}
}

func WithTolerance(tol float64) Option {
	return func(c *Config) {
		c.Tolerance = tol
	}
}
