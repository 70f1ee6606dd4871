package statespace

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statecast/statecast/pkg/common"
)

func TestRunSmoother_NeverIncreasesUncertainty(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	cfg := DefaultConfig()

	for trial := 0; trial < 100; trial++ {
		series := randomSeries(rng, 3+rng.Intn(30))
		params := Parameters{Drift: rng.NormFloat64() * 0.01, Diffusion: 1e-4}

		res, err := runFilter(series, params, series.Last().Time, cfg)
		require.NoError(t, err)
		sm := runSmoother(res.steps)
		require.Len(t, sm, len(res.steps))

		for i := range sm {
			require.LessOrEqual(t, sm[i].variance, res.steps[i].variance,
				"trial %d step %d", trial, i)
			require.GreaterOrEqual(t, sm[i].variance, 0.0)
		}
	}
}

func TestRunSmoother_TerminalStateUnchanged(t *testing.T) {
	series := randomSeries(rand.New(rand.NewSource(3)), 15)
	cfg := DefaultConfig()

	res, err := runFilter(series, DefaultParameters(), series.Last().Time, cfg)
	require.NoError(t, err)
	sm := runSmoother(res.steps)

	n := len(res.steps)
	require.Equal(t, res.steps[n-1].mean, sm[n-1].mean)
	require.Equal(t, res.steps[n-1].variance, sm[n-1].variance)
	assert.Zero(t, sm[n-1].lagCov)
}

func TestRunSmoother_PullsEarlyEstimatesTowardLaterData(t *testing.T) {
	// A series that jumps: early polls at 0, later polls at 0.10. The
	// smoother should lift early estimates using the later data.
	series := common.Series{State: "NV"}
	for i := 0; i < 10; i++ {
		margin := 0.0
		if i >= 5 {
			margin = 0.10
		}
		series.Observations = append(series.Observations, common.Observation{
			Time: day(i * 4), Margin: margin, Variance: 0.002, Pollster: "acme",
		})
	}
	cfg := DefaultConfig()

	res, err := runFilter(series, Parameters{Drift: 0, Diffusion: 5e-4}, day(36), cfg)
	require.NoError(t, err)
	sm := runSmoother(res.steps)

	// Step 4 is the last of the low regime; the filter only saw lows,
	// the smoother has seen the jump.
	assert.Greater(t, sm[4].mean, res.steps[4].mean)

	require.Empty(t, runSmoother(nil))
}
