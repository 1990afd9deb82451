package binning

import (
	"math"
	"math/rand/v2"
	"testing"

	"quantix/domain/core"
	"quantix/domain/dataset"
	domainstats "quantix/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nums(fs ...float64) []dataset.Value {
	out := make([]dataset.Value, len(fs))
	for i, f := range fs {
		out[i] = dataset.NumericValue(f)
	}
	return out
}

func countSum(bins []domainstats.Bin) int {
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	return total
}

func TestHistogramOneToTen(t *testing.T) {
	dist := Histogram(nums(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), 10)
	require.Len(t, dist.Bins, 10)
	for i, b := range dist.Bins {
		assert.Equal(t, 1, b.Count, "bin %d (%s)", i, b.Label)
	}
	assert.Equal(t, 1.0, dist.Bins[0].Lower)
	assert.Equal(t, 10.0, dist.Bins[9].Upper)
	assert.Equal(t, "1 - 2", dist.Bins[0].Label)
	assert.Equal(t, "9 - 10", dist.Bins[9].Label)
	assert.Equal(t, 10, dist.Total)
	assert.False(t, dist.Degenerate)
	assert.NoError(t, dist.Err())
}

func TestHistogramDegenerateRange(t *testing.T) {
	dist := Histogram(nums(5, 5, 5), 10)
	require.Len(t, dist.Bins, 1)
	b := dist.Bins[0]
	assert.Equal(t, "5 - 5", b.Label)
	assert.Equal(t, 5.0, b.Lower)
	assert.Equal(t, 5.0, b.Upper)
	assert.Equal(t, 3, b.Count)
	assert.True(t, dist.Degenerate)
	assert.False(t, math.IsNaN(b.Lower) || math.IsNaN(b.Upper))
	assert.ErrorIs(t, dist.Err(), core.ErrDegenerateRange)
}

func TestHistogramEmpty(t *testing.T) {
	dist := Histogram([]dataset.Value{dataset.MissingValue(), dataset.TextValue("n/a")}, 10)
	assert.NotNil(t, dist.Bins)
	assert.Empty(t, dist.Bins)
	assert.Equal(t, 0, dist.Total)
	assert.ErrorIs(t, dist.Err(), core.ErrInsufficientData)

	assert.Empty(t, Histogram(nil, 5).Bins)
}

func TestHistogramMaxLandsInLastBin(t *testing.T) {
	dist := Histogram(nums(0, 0.1, 1), 4)
	require.Len(t, dist.Bins, 4)
	assert.Equal(t, 2, dist.Bins[0].Count)
	assert.Equal(t, 0, dist.Bins[1].Count)
	assert.Equal(t, 0, dist.Bins[2].Count)
	assert.Equal(t, 1, dist.Bins[3].Count)
}

func TestHistogramSpreadBeyondFloatRange(t *testing.T) {
	dist := Histogram(nums(-1e308, 3e307, 1e308), 10)
	require.Len(t, dist.Bins, 10)
	assert.Equal(t, 1, dist.Bins[0].Count)
	assert.Equal(t, 1, dist.Bins[6].Count)
	assert.Equal(t, 1, dist.Bins[9].Count)
	assert.Equal(t, 3, countSum(dist.Bins))
	assert.Equal(t, -1e308, dist.Bins[0].Lower)
	assert.Equal(t, 1e308, dist.Bins[9].Upper)
	for i, b := range dist.Bins {
		assert.False(t, math.IsNaN(b.Lower) || math.IsInf(b.Lower, 0), "bin %d lower", i)
		assert.False(t, math.IsNaN(b.Upper) || math.IsInf(b.Upper, 0), "bin %d upper", i)
		assert.NotContains(t, b.Label, "Inf", "bin %d", i)
		assert.NotContains(t, b.Label, "NaN", "bin %d", i)
		if i > 0 {
			assert.Equal(t, dist.Bins[i-1].Upper, b.Lower, "bin %d is contiguous", i)
		}
	}
}

func TestHistogramIgnoresInvalidValues(t *testing.T) {
	vals := append(nums(10, 20, 30), dataset.MissingValue(), dataset.TextValue("absent"))
	dist := Histogram(vals, 3)
	assert.Equal(t, 3, dist.Total)
	assert.Equal(t, 3, countSum(dist.Bins))
}

func TestHistogramCountsSumToValidCount(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 100; trial++ {
		n := 2 + rng.IntN(200)
		data := make([]float64, n)
		for i := range data {
			data[i] = rng.NormFloat64()*15 + 70
		}
		bins := 1 + rng.IntN(20)
		dist := Bucket(data, bins)
		assert.Equal(t, n, countSum(dist.Bins))
		assert.Equal(t, n, dist.Total)
		assert.Len(t, dist.Bins, bins)

		for i := 1; i < len(dist.Bins); i++ {
			assert.LessOrEqual(t, dist.Bins[i-1].Lower, dist.Bins[i].Lower, "bins ascend")
		}
	}
}

func TestHistogramDefaultBinCount(t *testing.T) {
	assert.Len(t, Bucket([]float64{1, 2, 3}, 0).Bins, DefaultBins)
	assert.Len(t, Bucket([]float64{1, 2, 3}, -4).Bins, DefaultBins)
}

func TestLabel(t *testing.T) {
	tests := []struct {
		lower, upper float64
		expected     string
	}{
		{1, 1.9, "1 - 2"},
		{2.5, 3.5, "3 - 4"},
		{-0.4, 0.4, "0 - 0"},
		{-2.5, -1.5, "-2 - -1"},
		{62.75, 71.1, "63 - 71"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Label(tt.lower, tt.upper))
	}
}
