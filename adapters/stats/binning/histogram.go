// Package binning turns a field's values into an equal-width histogram.
package binning

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"quantix/adapters/stats/engine"
	"quantix/domain/dataset"
	domainstats "quantix/domain/stats"
)

// DefaultBins is the bin count used when none (or a non-positive one) is given
const DefaultBins = 10

// Histogram buckets the valid values into numBins equal-width bins between
// their min and max. The max value lands in the last bin. When every valid
// value is identical a single [min, max] bin holds all of them. No valid
// values yields no bins.
func Histogram(vals []dataset.Value, numBins int) domainstats.FrequencyDistribution {
	return Bucket(engine.ValidValues(vals), numBins)
}

// Bucket is Histogram over already-filtered values
func Bucket(data []float64, numBins int) domainstats.FrequencyDistribution {
	if numBins <= 0 {
		numBins = DefaultBins
	}
	if len(data) == 0 {
		return domainstats.FrequencyDistribution{Bins: []domainstats.Bin{}}
	}

	lo, hi := floats.Min(data), floats.Max(data)
	if lo == hi {
		return domainstats.FrequencyDistribution{
			Bins:       []domainstats.Bin{newBin(lo, hi, len(data))},
			Total:      len(data),
			Degenerate: true,
		}
	}

	// Work in half scale when the spread itself overflows float64.
	scale := 1.0
	if math.IsInf(hi-lo, 0) {
		scale = 0.5
	}
	slo, shi := lo*scale, hi*scale
	width := (shi - slo) / float64(numBins)
	counts := make([]int, numBins)
	for _, v := range data {
		counts[binIndex(v*scale, slo, width, numBins)]++
	}

	bins := make([]domainstats.Bin, numBins)
	for i := range bins {
		lower := (slo + float64(i)*width) / scale
		upper := (slo + float64(i+1)*width) / scale
		if i == 0 {
			lower = lo
		}
		if i == numBins-1 {
			upper = hi
		}
		bins[i] = newBin(lower, upper, counts[i])
	}
	return domainstats.FrequencyDistribution{Bins: bins, Total: len(data)}
}

// binIndex clamps into [0, numBins-1] so rounding at either edge never
// drops a value
func binIndex(v, lo, width float64, numBins int) int {
	idx := int(math.Floor((v - lo) / width))
	if idx < 0 {
		return 0
	}
	if idx >= numBins {
		return numBins - 1
	}
	return idx
}

func newBin(lower, upper float64, count int) domainstats.Bin {
	return domainstats.Bin{
		Label: Label(lower, upper),
		Lower: lower,
		Upper: upper,
		Count: count,
	}
}

// Label renders a bin range as "<lower> - <upper>", rounded half up
func Label(lower, upper float64) string {
	return fmt.Sprintf("%.0f - %.0f", roundHalfUp(lower), roundHalfUp(upper))
}

func roundHalfUp(x float64) float64 {
	r := math.Floor(x + 0.5)
	if r == 0 {
		return 0 // no "-0"
	}
	return r
}
