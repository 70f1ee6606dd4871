package statespace

import (
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statecast/statecast/pkg/common"
)

func day(d int) time.Time {
	return time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func makePoll(state, pollster string, d int, dem, rep int64, n int) common.Poll {
	return common.Poll{
		State:      state,
		Pollster:   pollster,
		MidDate:    day(d),
		DemShare:   decimal.MustNew(dem, 3),
		RepShare:   decimal.MustNew(rep, 3),
		SampleSize: n,
	}
}

func TestBuildSeries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinPolls = 3

	polls := []common.Poll{
		makePoll("FL", "beta", 10, 480, 420, 800),
		makePoll("FL", "alpha", 5, 500, 450, 600),
		makePoll("FL", "gamma", 20, 510, 460, 1000),
		makePoll("FL", "late", 90, 520, 440, 900), // after cutoff
	}

	series, err := BuildSeries(polls, day(30), cfg)
	require.NoError(t, err)
	require.Equal(t, 3, series.Len())
	assert.Equal(t, "FL", series.State)

	// Sorted by time despite shuffled input, cutoff applied.
	assert.Equal(t, "alpha", series.Observations[0].Pollster)
	assert.Equal(t, "beta", series.Observations[1].Pollster)
	assert.Equal(t, "gamma", series.Observations[2].Pollster)

	// Two-party renormalization: (0.48-0.42)/0.90.
	assert.InDelta(t, 0.06/0.90, series.Observations[1].Margin, 1e-12)

	// Variance is 1/n plus the squared polling error.
	assert.InDelta(t, 1.0/800+cfg.PollingError*cfg.PollingError,
		series.Observations[1].Variance, 1e-12)
}

func TestBuildSeries_InsufficientData(t *testing.T) {
	cfg := DefaultConfig()

	// Exactly MinPolls-1 polls survive the cutoff.
	var polls []common.Poll
	for i := 0; i < cfg.MinPolls-1; i++ {
		polls = append(polls, makePoll("PA", "acme", i, 490, 470, 500))
	}

	_, err := BuildSeries(polls, day(60), cfg)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestBuildSeries_InvalidRows(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinPolls = 1

	tests := []struct {
		name string
		poll common.Poll
	}{
		{"zero sample size", makePoll("OH", "acme", 1, 480, 460, 0)},
		{"negative sample size", makePoll("OH", "acme", 1, 480, 460, -10)},
		{"zero two-party total", makePoll("OH", "acme", 1, 0, 0, 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSeries([]common.Poll{tt.poll}, day(30), cfg)
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestValidateSeries(t *testing.T) {
	valid := common.Series{State: "NC", Observations: []common.Observation{
		{Time: day(0), Margin: 0.01, Variance: 0.002},
		{Time: day(0), Margin: 0.02, Variance: 0.002}, // same-day polls allowed
		{Time: day(3), Margin: 0.00, Variance: 0.002},
	}}
	require.NoError(t, validateSeries(valid))

	outOfOrder := common.Series{State: "NC", Observations: []common.Observation{
		{Time: day(3), Margin: 0.01, Variance: 0.002},
		{Time: day(0), Margin: 0.02, Variance: 0.002},
	}}
	require.ErrorIs(t, validateSeries(outOfOrder), ErrInvalidParameter)

	badVariance := common.Series{State: "NC", Observations: []common.Observation{
		{Time: day(0), Margin: 0.01, Variance: 0},
	}}
	require.ErrorIs(t, validateSeries(badVariance), ErrInvalidParameter)

	require.ErrorIs(t, validateSeries(common.Series{}), ErrInvalidParameter)
}
