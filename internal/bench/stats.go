package bench

import (
	"math"
	"sort"
)

// Stats summarizes a sample of iteration timings in seconds.
type Stats struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stddev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	IQR      float64 `json:"iqr"`
	Outliers int     `json:"outliers"`
	CILow    float64 `json:"ci_low"`
	CIHigh   float64 `json:"ci_high"`
}

// Two-sided 95% critical values of Student's t distribution, indexed
// by degrees of freedom. Samples with 30 or more observations fall
// back to the normal approximation.
var tCritical95 = []float64{
	0, 12.706, 4.303, 3.182, 2.776, 2.571, 2.447, 2.365, 2.306, 2.262,
	2.228, 2.201, 2.179, 2.160, 2.145, 2.131, 2.120, 2.110, 2.101, 2.093,
	2.086, 2.080, 2.074, 2.069, 2.064, 2.060, 2.056, 2.052, 2.048, 2.045,
}

const zCritical95 = 1.96

// ComputeStats calculates summary statistics over a sample, rejecting
// Tukey outliers (beyond 1.5 IQR of the quartiles) before computing
// the mean, standard deviation and confidence interval. The reported
// Min and Max always come from the raw sample.
func ComputeStats(sample []float64) Stats {
	if len(sample) == 0 {
		return Stats{}
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	stats := Stats{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: quantile(sorted, 0.5),
	}

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	stats.IQR = q3 - q1

	kept := sorted
	if len(sorted) >= 4 {
		low := q1 - 1.5*stats.IQR
		high := q3 + 1.5*stats.IQR
		kept = kept[:0:0]
		for _, v := range sorted {
			if v >= low && v <= high {
				kept = append(kept, v)
			}
		}
	}
	stats.N = len(kept)
	stats.Outliers = len(sorted) - len(kept)

	var sum float64
	for _, v := range kept {
		sum += v
	}
	stats.Mean = sum / float64(len(kept))

	if len(kept) > 1 {
		var sq float64
		for _, v := range kept {
			d := v - stats.Mean
			sq += d * d
		}
		stats.StdDev = math.Sqrt(sq / float64(len(kept)-1))
	}

	stats.CILow, stats.CIHigh = confidenceInterval(stats.Mean, stats.StdDev, len(kept))
	return stats
}

// confidenceInterval returns the two-sided 95% interval around the
// mean, using Student's t for small samples and the normal
// approximation from 30 observations on.
func confidenceInterval(mean, stddev float64, n int) (float64, float64) {
	if n < 2 {
		return mean, mean
	}

	critical := zCritical95
	if df := n - 1; df < len(tCritical95) {
		critical = tCritical95[df]
	}

	margin := critical * stddev / math.Sqrt(float64(n))
	return mean - margin, mean + margin
}

// quantile interpolates the q-th quantile of an already sorted sample.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}

	frac := pos - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
