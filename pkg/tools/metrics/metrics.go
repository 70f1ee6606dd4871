package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/statecast/statecast/pkg/common"
)

// probEps keeps log loss finite for clipped-to-extreme probabilities.
const probEps = 1e-6

// Row is the accuracy summary for one forecast date across all states
// that have a realized result.
type Row struct {
	ForecastDate time.Time
	States       int
	BrierScore   float64
	LogLoss      float64
	MAEMargin    float64
}

// Evaluate scores predictions against realized margins, grouped by
// forecast date. Predictions without an actual margin are ignored.
func Evaluate(preds []common.Prediction) []Row {
	byDate := make(map[time.Time][]common.Prediction)
	for _, p := range preds {
		if !p.HasActual {
			continue
		}
		byDate[p.ForecastDate] = append(byDate[p.ForecastDate], p)
	}

	dates := make([]time.Time, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]Row, 0, len(dates))
	for _, date := range dates {
		group := byDate[date]
		row := Row{ForecastDate: date, States: len(group)}

		for _, p := range group {
			outcome := 0.0
			if p.ActualMargin > 0 {
				outcome = 1.0
			}
			prob := p.Result.WinProbability
			if prob < probEps {
				prob = probEps
			} else if prob > 1-probEps {
				prob = 1 - probEps
			}

			diff := prob - outcome
			row.BrierScore += diff * diff
			row.LogLoss -= outcome*math.Log(prob) + (1-outcome)*math.Log(1-prob)
			row.MAEMargin += math.Abs(p.Result.PredictedMargin - p.ActualMargin)
		}

		n := float64(row.States)
		row.BrierScore /= n
		row.LogLoss /= n
		row.MAEMargin /= n
		rows = append(rows, row)
	}
	return rows
}
