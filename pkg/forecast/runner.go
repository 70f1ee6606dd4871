package forecast

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"

	"github.com/statecast/statecast/pkg/common"
	"github.com/statecast/statecast/pkg/models/statespace"
	"github.com/statecast/statecast/pkg/utility"
)

// Input is everything one run consumes: per-state polls, the
// fundamentals source, optional realized margins, and the date grid.
type Input struct {
	Polls         map[string][]common.Poll
	Historical    map[string]common.HistoricalResult
	Actual        map[string]float64
	ForecastDates []time.Time
	ElectionDate  time.Time
}

// Runner fans state forecasts out over a bounded worker pool. States
// are independent computations, so output does not depend on worker
// count or scheduling; predictions are re-sorted before return.
type Runner struct {
	logger  *zap.Logger
	models  []*statespace.Model
	workers int
}

func NewRunner(logger *zap.Logger, workers int, models ...*statespace.Model) *Runner {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Runner{logger: logger, models: models, workers: workers}
}

// Run forecasts every model variant for every state and forecast date.
// Insufficient data skips the pair; any other per-state failure is
// logged and isolated, never aborting the batch.
func (r *Runner) Run(ctx context.Context, in Input) ([]common.Prediction, error) {
	runID := utility.NewRunID()

	states := maps.Keys(in.Polls)
	sort.Strings(states)

	r.logger.Info("forecast run started",
		zap.String("run_id", runID.String()),
		zap.Int("states", len(states)),
		zap.Int("models", len(r.models)),
		zap.Int("workers", r.workers))

	jobs := make(chan string)
	var (
		mu    sync.Mutex
		preds []common.Prediction
		wg    sync.WaitGroup
	)

	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for state := range jobs {
				out := r.forecastState(state, in)
				mu.Lock()
				preds = append(preds, out...)
				mu.Unlock()
			}
		}()
	}

	var err error
feed:
	for _, state := range states {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- state:
		}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(preds, func(i, j int) bool {
		a, b := preds[i], preds[j]
		if a.Model != b.Model {
			return a.Model < b.Model
		}
		if a.State != b.State {
			return a.State < b.State
		}
		return a.ForecastDate.Before(b.ForecastDate)
	})

	r.logger.Info("forecast run finished",
		zap.String("run_id", runID.String()),
		zap.Int("predictions", len(preds)))
	return preds, err
}

func (r *Runner) forecastState(state string, in Input) []common.Prediction {
	hist, ok := in.Historical[state]
	if !ok {
		r.logger.Debug("no historical results for state", zap.String("state", state))
		return nil
	}
	actual, hasActual := in.Actual[state]

	var out []common.Prediction
	for _, model := range r.models {
		for _, date := range in.ForecastDates {
			if !in.ElectionDate.After(date) {
				continue
			}
			result, err := model.Forecast(in.Polls[state], hist, date, in.ElectionDate)
			switch {
			case errors.Is(err, statespace.ErrInsufficientData):
				r.logger.Debug("state skipped",
					zap.String("model", model.Name()),
					zap.String("state", state),
					zap.Time("forecast_date", date),
					zap.Error(err))
				continue
			case err != nil:
				r.logger.Warn("state forecast failed",
					zap.String("model", model.Name()),
					zap.String("state", state),
					zap.Time("forecast_date", date),
					zap.Error(err))
				continue
			}
			out = append(out, common.Prediction{
				Model:        model.Name(),
				State:        state,
				ForecastDate: date,
				Result:       result,
				ActualMargin: actual,
				HasActual:    hasActual,
			})
		}
	}
	return out
}
