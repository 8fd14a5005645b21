// Package anomaly provides outlier detection over depth-indexed well-log
// curves. Three independent, stateless detectors are offered: a prior-rule
// filter driven by physical-range bounds, a 3-sigma statistical filter, and
// an IQR (interquartile range) filter. Each returns a fresh boolean mask with
// positional correspondence to the input curve; callers combine masks as
// needed (e.g. union). Detectors never mutate their input.
package anomaly

import (
	"math"

	"github.com/Sumatoshi-tech/wellfang/pkg/alg/stats"
)

// Default detector parameters.
const (
	// DefaultSigma is the standard deviation multiplier for the 3-sigma filter.
	DefaultSigma = 3.0

	// DefaultIQRMultiplier marks mild outliers. Use ExtremeIQRMultiplier for
	// extreme-only detection.
	DefaultIQRMultiplier = 1.5

	// ExtremeIQRMultiplier marks extreme outliers only.
	ExtremeIQRMultiplier = 3.0
)

// Reporter receives diagnostic lines from the statistical detectors
// (computed mean/stddev, quartiles, fence bounds). Diagnostics are a side
// channel with no effect on the returned masks; a nil Reporter is silent.
type Reporter interface {
	Diag(format string, args ...any)
}

// PriorRuleMask flags samples that violate prior physical-range rules:
// every NaN, every ±Inf, every sample <= *minVal when minVal is non-nil, and
// every sample >= *maxVal when maxVal is non-nil. Bound violation is
// non-strict at the boundary: a sample exactly equal to a configured bound is
// flagged, since boundary values (e.g. density exactly 1.0) are physically
// implausible for the curves the rule table covers. Nil bounds skip that
// check. Never fails.
func PriorRuleMask(data []float64, minVal, maxVal *float64) []bool {
	mask := make([]bool, len(data))

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			mask[i] = true

			continue
		}

		if minVal != nil && v <= *minVal {
			mask[i] = true

			continue
		}

		if maxVal != nil && v >= *maxVal {
			mask[i] = true
		}
	}

	return mask
}

// ThreeSigmaMask flags samples whose absolute deviation from the mean
// strictly exceeds sigma times the population standard deviation. Mean and
// stddev are computed over the finite subset of data only, but the mask test
// runs against the original curve: NaN compares false and stays unflagged,
// while ±Inf exceeds any finite fence and is flagged. When data holds no
// finite samples the mask is all false (no error, no division by zero).
func ThreeSigmaMask(data []float64, sigma float64, rep Reporter) []bool {
	mask := make([]bool, len(data))

	finite := stats.Finite(data)
	if len(finite) == 0 {
		return mask
	}

	mean, stddev := stats.MeanStdDev(finite)

	if rep != nil {
		rep.Diag("[3-sigma] mean: %.2f, stddev: %.2f", mean, stddev)
	}

	fence := sigma * stddev

	for i, v := range data {
		mask[i] = math.Abs(v-mean) > fence
	}

	return mask
}

// IQRMask flags samples strictly below q1 - multiplier*iqr or strictly above
// q3 + multiplier*iqr, where q1/q3 are the 25th/75th percentile of the finite
// subset of data (linear interpolation between closest ranks). More robust
// than the 3-sigma filter on skewed distributions. Non-finite handling and
// the degenerate no-finite-samples case match [ThreeSigmaMask].
func IQRMask(data []float64, multiplier float64, rep Reporter) []bool {
	mask := make([]bool, len(data))

	finite := stats.Finite(data)
	if len(finite) == 0 {
		return mask
	}

	q1, q3 := stats.Quartiles(finite)
	iqr := q3 - q1

	lower := q1 - multiplier*iqr
	upper := q3 + multiplier*iqr

	if rep != nil {
		rep.Diag("[IQR] q1: %.2f, q3: %.2f, iqr: %.2f", q1, q3, iqr)
		rep.Diag("[IQR] fences: [%.2f, %.2f]", lower, upper)
	}

	for i, v := range data {
		mask[i] = v < lower || v > upper
	}

	return mask
}

// Union returns the element-wise OR of masks. All masks must share the same
// length; Union panics on mismatched lengths since that indicates masks from
// different curves. Returns nil when called with no masks.
func Union(masks ...[]bool) []bool {
	if len(masks) == 0 {
		return nil
	}

	result := make([]bool, len(masks[0]))

	for _, mask := range masks {
		if len(mask) != len(result) {
			panic("anomaly: Union over masks of different lengths")
		}

		for i, flagged := range mask {
			if flagged {
				result[i] = true
			}
		}
	}

	return result
}

// Count returns the number of true entries in mask.
func Count(mask []bool) int {
	var n int

	for _, flagged := range mask {
		if flagged {
			n++
		}
	}

	return n
}
