package common

import "time"

// ForecastResult is the engine output for one (state, forecast date)
// pair.
type ForecastResult struct {
	WinProbability  float64
	PredictedMargin float64
	MarginStd       float64
}

// Prediction pairs a forecast with the context needed for evaluation
// and export.
type Prediction struct {
	Model        string
	State        string
	ForecastDate time.Time
	Result       ForecastResult
	ActualMargin float64
	HasActual    bool
}
