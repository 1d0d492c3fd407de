package lrge

import (
	"math"
	"sort"
)

// Result is the final point estimate plus a confidence interval derived
// from the per-read estimate distribution (spec §4.6).
type Result struct {
	Estimate float64
	Low      float64
	High     float64
}

// Aggregate reduces a slice of per-read genome-size estimates to a single
// Result. Non-finite estimates (PerReadEstimate's +Inf for zero-overlap
// reads) are dropped unless includeInfinite is set, in which case they are
// kept and will dominate the upper quantile. qLow and qHigh select the
// confidence bounds and the median of the filtered, sorted estimates is
// reported as the point estimate.
//
// If filtering leaves no estimates, the Result's three fields are all
// math.NaN() and a warning is logged (spec §7).
func Aggregate(estimates []float64, includeInfinite bool, qLow, qHigh float64) Result {
	kept := make([]float64, 0, len(estimates))
	for _, e := range estimates {
		if math.IsInf(e, 1) && !includeInfinite {
			continue
		}
		if math.IsNaN(e) {
			continue
		}
		kept = append(kept, e)
	}

	if len(kept) == 0 {
		discardLogger.Warningf("no finite per-read estimates to aggregate (includeInfinite=%v, n=%d)", includeInfinite, len(estimates))
		return Result{Estimate: math.NaN(), Low: math.NaN(), High: math.NaN()}
	}

	sort.Float64s(kept)

	quantile := func(q float64) float64 {
		h := float64(len(kept)-1) * q
		lo, hi := int(math.Floor(h)), int(math.Ceil(h))
		if kept[lo] == kept[hi] {
			return kept[lo]
		}
		return kept[lo] + (h-float64(lo))*(kept[hi]-kept[lo])
	}

	return Result{
		Estimate: quantile(0.5),
		Low:      quantile(qLow),
		High:     quantile(qHigh),
	}
}
