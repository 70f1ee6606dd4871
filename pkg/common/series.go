package common

import "time"

// Observation is one variance-weighted poll reading on the two-party
// margin scale.
type Observation struct {
	Time     time.Time
	Margin   float64
	Variance float64
	Pollster string
}

// Series is a time-ordered observation sequence for one state. It is
// owned by a single forecast invocation and never shared between
// forecasts.
type Series struct {
	State        string
	Observations []Observation
}

func (s Series) Len() int {
	return len(s.Observations)
}

func (s Series) Last() Observation {
	return s.Observations[len(s.Observations)-1]
}
