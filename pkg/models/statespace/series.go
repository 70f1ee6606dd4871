package statespace

import (
	"fmt"
	"sort"
	"time"

	"github.com/statecast/statecast/pkg/common"
)

// BuildSeries turns raw poll rows into a time-ordered observation
// series: polls after the cutoff are dropped, the two-party margin is
// derived exactly from the reported shares, and each observation gets
// variance 1/sampleSize + pollingError^2.
//
// Returns ErrInsufficientData when fewer than cfg.MinPolls rows
// survive the cutoff, and ErrInvalidParameter on malformed rows.
func BuildSeries(polls []common.Poll, cutoff time.Time, cfg Config) (common.Series, error) {
	var kept []common.Poll
	for _, p := range polls {
		if p.MidDate.After(cutoff) {
			continue
		}
		if p.SampleSize <= 0 {
			return common.Series{}, fmt.Errorf("%s %s sample size %d: %w",
				p.State, p.Pollster, p.SampleSize, ErrInvalidParameter)
		}
		kept = append(kept, p)
	}

	if len(kept) < cfg.MinPolls {
		return common.Series{}, fmt.Errorf("%d polls before %s: %w",
			len(kept), cutoff.Format(time.DateOnly), ErrInsufficientData)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if !kept[i].MidDate.Equal(kept[j].MidDate) {
			return kept[i].MidDate.Before(kept[j].MidDate)
		}
		return kept[i].Pollster < kept[j].Pollster
	})

	obsVar := cfg.PollingError * cfg.PollingError

	series := common.Series{State: kept[0].State}
	for _, p := range kept {
		margin, err := twoPartyMargin(p)
		if err != nil {
			return common.Series{}, err
		}
		series.Observations = append(series.Observations, common.Observation{
			Time:     p.MidDate,
			Margin:   margin,
			Variance: 1/float64(p.SampleSize) + obsVar,
			Pollster: p.Pollster,
		})
	}
	return series, nil
}

// twoPartyMargin renormalizes (dem - rep) over the two-party vote in
// decimal space before the value enters float arithmetic.
func twoPartyMargin(p common.Poll) (float64, error) {
	total, err := p.DemShare.Add(p.RepShare)
	if err != nil || total.IsZero() {
		return 0, fmt.Errorf("%s %s shares %s/%s: %w",
			p.State, p.Pollster, p.DemShare, p.RepShare, ErrInvalidParameter)
	}
	lead, err := p.DemShare.Sub(p.RepShare)
	if err != nil {
		return 0, fmt.Errorf("%s %s shares: %w", p.State, p.Pollster, ErrInvalidParameter)
	}
	ratio, err := lead.Quo(total)
	if err != nil {
		return 0, fmt.Errorf("%s %s shares: %w", p.State, p.Pollster, ErrInvalidParameter)
	}
	margin, ok := ratio.Float64()
	if !ok {
		return 0, fmt.Errorf("%s %s margin overflow: %w", p.State, p.Pollster, ErrInvalidParameter)
	}
	return margin, nil
}

// validateSeries enforces the filter input contract: a non-empty
// series with non-decreasing times and positive variances.
func validateSeries(s common.Series) error {
	if s.Len() == 0 {
		return fmt.Errorf("empty series: %w", ErrInvalidParameter)
	}
	for i, obs := range s.Observations {
		if obs.Variance <= 0 {
			return fmt.Errorf("%s observation %d variance %g: %w",
				s.State, i, obs.Variance, ErrInvalidParameter)
		}
		if i > 0 && obs.Time.Before(s.Observations[i-1].Time) {
			return fmt.Errorf("%s observation %d out of order: %w",
				s.State, i, ErrInvalidParameter)
		}
	}
	return nil
}
