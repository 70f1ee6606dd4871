package statespace

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/statecast/statecast/pkg/common"
	"github.com/statecast/statecast/pkg/utility/stat"
)

// Model is one named configuration of the shared state-space pipeline.
// It holds no per-forecast state; a single Model may serve concurrent
// forecasts.
type Model struct {
	name   string
	cfg    Config
	logger *zap.Logger
}

func NewModel(name string, logger *zap.Logger, opts ...Option) *Model {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Model{name: name, cfg: cfg, logger: logger}
}

func (m *Model) Name() string {
	return m.name
}

func (m *Model) Config() Config {
	return m.cfg
}

// Forecast runs the full pipeline for one state: series building,
// house-effect debiasing, EM fitting, filtering to the forecast date,
// and hierarchical combination with the fundamentals prior.
//
// Returns ErrInsufficientData when the state has too few polls by the
// forecast date and ErrInvalidParameter on malformed input; neither
// should abort forecasting of other states.
func (m *Model) Forecast(polls []common.Poll, hist common.HistoricalResult,
	forecastDate, electionDate time.Time) (common.ForecastResult, error) {

	if !electionDate.After(forecastDate) {
		return common.ForecastResult{}, fmt.Errorf("election %s not after forecast %s: %w",
			electionDate.Format(time.DateOnly), forecastDate.Format(time.DateOnly), ErrInvalidParameter)
	}

	series, err := BuildSeries(polls, forecastDate, m.cfg)
	if err != nil {
		return common.ForecastResult{}, err
	}

	effects := HouseEffects(series, m.cfg.HouseWindow, m.cfg.Shrinkage)
	debiased := Debias(series, effects)

	params, diag, err := Fit(debiased, DefaultParameters(), m.cfg, m.logger)
	if err != nil {
		return common.ForecastResult{}, err
	}

	fr, err := runFilter(debiased, params, forecastDate, m.cfg)
	if err != nil {
		return common.ForecastResult{}, err
	}
	if fr.floored {
		m.logger.Warn("filter variance floored",
			zap.String("model", m.name),
			zap.String("state", series.State))
	}

	daysOut := daysBetween(forecastDate, electionDate)
	result := m.combine(fr.extrapolated, params, FundamentalsPrior(hist), daysOut, series.Len())

	m.logger.Debug("state forecast",
		zap.String("model", m.name),
		zap.String("state", series.State),
		zap.Int("polls", series.Len()),
		zap.Float64("drift", params.Drift),
		zap.Float64("diffusion", params.Diffusion),
		zap.Bool("converged", diag.Converged),
		zap.Float64("predicted_margin", result.PredictedMargin),
		zap.Float64("win_probability", result.WinProbability))

	return result, nil
}

// combine merges the forecast-date poll estimate with the fundamentals
// prior. The prior weight decays both as the election nears and as
// poll volume grows; variance components are summed, never subtracted.
func (m *Model) combine(polls Estimate, params Parameters, fundamentals float64,
	daysOut float64, pollCount int) common.ForecastResult {

	wPrior := m.cfg.PriorWeight * daysOut / (daysOut + float64(pollCount))
	wPrior = stat.Clip(wPrior, 0, 1)

	margin := wPrior*fundamentals + (1-wPrior)*polls.Mean - m.cfg.BiasCorrection
	variance := polls.Variance + params.Diffusion*daysOut + m.cfg.BiasVariance
	std := math.Sqrt(variance)

	return common.ForecastResult{
		WinProbability:  stat.WinProbability(margin, std, m.cfg.ClipLow, m.cfg.ClipHigh),
		PredictedMargin: margin,
		MarginStd:       std,
	}
}
