package statespace

import "go.uber.org/zap"

// The four production variants share the engine and differ only in
// calibration constants.

// NewBaseline is the reference Kalman model with default constants.
func NewBaseline(logger *zap.Logger) *Model {
	return NewModel("kalman", logger)
}

// NewRegularized shrinks house effects harder, floors diffusion
// higher, and clips probabilities tighter.
func NewRegularized(logger *zap.Logger) *Model {
	return NewModel("kalman_regularized", logger,
		WithShrinkage(25),
		WithDiffusionFloor(5e-6),
		WithClipBounds(0.05, 0.95),
		WithPriorWeight(0.35))
}

// NewPollsOnly ignores the fundamentals prior entirely.
func NewPollsOnly(logger *zap.Logger) *Model {
	return NewModel("polls_only", logger,
		WithPriorWeight(0))
}

// NewFundamentalsHeavy leans on the historical baseline, for early
// dates when polling is thin.
func NewFundamentalsHeavy(logger *zap.Logger) *Model {
	return NewModel("fundamentals_heavy", logger,
		WithPriorWeight(0.6))
}

// AllVariants returns the four variants in a stable order.
func AllVariants(logger *zap.Logger) []*Model {
	return []*Model{
		NewBaseline(logger),
		NewFundamentalsHeavy(logger),
		NewPollsOnly(logger),
		NewRegularized(logger),
	}
}
