package common

import (
	"time"

	"github.com/govalues/decimal"
)

// Poll is a single raw poll row for one state, as produced by the data
// loader. Vote shares stay exact decimals until the series builder
// derives the two-party margin.
type Poll struct {
	State      string
	Pollster   string
	MidDate    time.Time
	DemShare   decimal.Decimal
	RepShare   decimal.Decimal
	SampleSize int
}

// HistoricalResult carries the prior-cycle margins the fundamentals
// prior is built from.
type HistoricalResult struct {
	State      string
	Margin2012 float64
	Margin2008 float64
}
