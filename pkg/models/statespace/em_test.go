package statespace

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/statecast/statecast/pkg/common"
)

func TestFit_DiffusionNeverCollapses(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	cfg := DefaultConfig()
	logger := zap.NewNop()

	for trial := 0; trial < 50; trial++ {
		series := randomSeries(rng, 5+rng.Intn(30))
		params, _, err := Fit(series, DefaultParameters(), cfg, logger)
		require.NoError(t, err)
		require.GreaterOrEqual(t, params.Diffusion, cfg.Sigma2Min, "trial %d", trial)
	}
}

func TestFit_FlooredOnConstantSeries(t *testing.T) {
	// Identical margins at tight variance would drive sigma^2 to zero
	// without the floor.
	series := common.Series{State: "UT"}
	for i := 0; i < 20; i++ {
		series.Observations = append(series.Observations, common.Observation{
			Time: day(i * 2), Margin: -0.20, Variance: 0.0001, Pollster: "acme",
		})
	}
	cfg := DefaultConfig()
	cfg.Sigma2Min = 1e-4

	params, diag, err := Fit(series, DefaultParameters(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, cfg.Sigma2Min, params.Diffusion)
	assert.True(t, diag.Floored)
}

func TestFit_Idempotent(t *testing.T) {
	series := randomSeries(rand.New(rand.NewSource(4)), 25)
	cfg := DefaultConfig()
	logger := zap.NewNop()

	first, firstDiag, err := Fit(series, DefaultParameters(), cfg, logger)
	require.NoError(t, err)
	second, secondDiag, err := Fit(series, DefaultParameters(), cfg, logger)
	require.NoError(t, err)

	// Pure function of its inputs: bit-identical across runs.
	require.Equal(t, first, second)
	require.Equal(t, firstDiag, secondDiag)
}

func TestFit_RecoversDriftSign(t *testing.T) {
	// A steadily climbing margin, ~0.002/day.
	series := common.Series{State: "AZ"}
	for i := 0; i < 30; i++ {
		series.Observations = append(series.Observations, common.Observation{
			Time: day(i * 3), Margin: -0.05 + float64(i)*0.006, Variance: 0.001, Pollster: "acme",
		})
	}
	cfg := DefaultConfig()

	params, diag, err := Fit(series, DefaultParameters(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Greater(t, params.Drift, 0.0005)
	assert.True(t, diag.Converged)
	assert.LessOrEqual(t, diag.Iterations, cfg.MaxIterations)
}

func TestFit_IterationCapIsNotAnError(t *testing.T) {
	series := randomSeries(rand.New(rand.NewSource(12)), 20)
	cfg := DefaultConfig()
	cfg.Tolerance = 0 // never converges
	cfg.MaxIterations = 5

	params, diag, err := Fit(series, DefaultParameters(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, diag.Converged)
	assert.Equal(t, cfg.MaxIterations, diag.Iterations)
	assert.GreaterOrEqual(t, params.Diffusion, cfg.Sigma2Min)
}

func TestFit_TooShortSeriesKeepsInit(t *testing.T) {
	series := common.Series{State: "VT", Observations: []common.Observation{
		{Time: day(0), Margin: 0.2, Variance: 0.002, Pollster: "acme"},
	}}

	init := Parameters{Drift: 0.001, Diffusion: 2e-4}
	params, diag, err := Fit(series, init, DefaultConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, init, params)
	assert.True(t, diag.Converged)
}
