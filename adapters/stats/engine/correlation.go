package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"quantix/domain/dataset"
	domainstats "quantix/domain/stats"
)

// minPairs is the smallest paired sample a correlation is defined for
const minPairs = 2

// PairedValues keeps the positions where both xs[i] and ys[i] are valid.
// Sequences of unequal length are compared over their common prefix.
func PairedValues(xs, ys []dataset.Value) (px, py []float64) {
	n := min(len(xs), len(ys))
	px = make([]float64, 0, n)
	py = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x, okX := xs[i].Float64()
		y, okY := ys[i].Float64()
		if okX && okY {
			px = append(px, x)
			py = append(py, y)
		}
	}
	return px, py
}

// Correlation is the Pearson coefficient over pairwise-complete
// observations. It is undefined with fewer than two pairs or when either
// paired marginal has zero variance.
func Correlation(xs, ys []dataset.Value) domainstats.CorrelationResult {
	px, py := PairedValues(xs, ys)
	return domainstats.CorrelationResult{
		Coefficient: pearson(px, py),
		PairedCount: len(px),
	}
}

func pearson(x, y []float64) domainstats.Statistic {
	if len(x) < minPairs {
		return domainstats.Undefined(domainstats.ReasonInsufficientData)
	}
	if constant(x) || constant(y) {
		return domainstats.Undefined(domainstats.ReasonUndefinedStatistic)
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return domainstats.Undefined(domainstats.ReasonUndefinedStatistic)
	}
	return domainstats.Defined(math.Max(-1, math.Min(1, r)))
}

// constant reports whether every value in data is identical
func constant(data []float64) bool {
	return len(data) == 0 || floats.Min(data) == floats.Max(data)
}
