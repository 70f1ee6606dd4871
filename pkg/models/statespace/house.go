package statespace

import "github.com/statecast/statecast/pkg/common"

// HouseEffects estimates a systematic bias per pollster. Each poll is
// compared against a centered moving average of the state's series,
// residuals are averaged per pollster and shrunk toward zero by
// n/(n+lambda), so pollsters with few polls keep effects near zero.
func HouseEffects(series common.Series, window int, lambda float64) map[string]float64 {
	if window < 1 {
		window = 1
	}

	n := series.Len()
	sums := make(map[string]float64)
	counts := make(map[string]int)

	half := window / 2
	for i, obs := range series.Observations {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > n-1 {
			hi = n - 1
		}
		var ref float64
		for j := lo; j <= hi; j++ {
			ref += series.Observations[j].Margin
		}
		ref /= float64(hi - lo + 1)

		sums[obs.Pollster] += obs.Margin - ref
		counts[obs.Pollster]++
	}

	effects := make(map[string]float64, len(sums))
	for pollster, sum := range sums {
		np := float64(counts[pollster])
		effects[pollster] = np / (np + lambda) * (sum / np)
	}
	return effects
}

// Debias subtracts each observation's pollster effect, returning a new
// series. The input series is not modified.
func Debias(series common.Series, effects map[string]float64) common.Series {
	out := common.Series{
		State:        series.State,
		Observations: make([]common.Observation, series.Len()),
	}
	for i, obs := range series.Observations {
		obs.Margin -= effects[obs.Pollster]
		out.Observations[i] = obs
	}
	return out
}
