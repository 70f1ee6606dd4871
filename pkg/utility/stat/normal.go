package stat

import "math"

const degenerateStd = 1e-9

// NormCDF evaluates the standard normal cumulative distribution at z.
func NormCDF(z float64) float64 {
	return 0.5 * math.Erfc(-z/math.Sqrt2)
}

// Clip bounds v to [lo, hi].
func Clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// WinProbability maps a margin distribution to a win probability,
// clipped to [clipLo, clipHi]. A vanishing standard deviation is a
// deterministic outcome and returns exactly 0 or 1 by margin sign,
// bypassing the clip.
func WinProbability(margin, std, clipLo, clipHi float64) float64 {
	if std <= degenerateStd {
		switch {
		case margin > 0:
			return 1
		case margin < 0:
			return 0
		default:
			return 0.5
		}
	}
	return Clip(NormCDF(margin/std), clipLo, clipHi)
}
