package statespace

import "github.com/statecast/statecast/pkg/common"

// FundamentalsPrior is the historical-baseline margin for a state,
// weighting the more recent cycle at 0.7.
func FundamentalsPrior(hist common.HistoricalResult) float64 {
	return 0.7*hist.Margin2012 + 0.3*hist.Margin2008
}
