// Package engine implements the descriptive statistics used by every
// section: a validity filter, mean, median, population variance and
// pairwise-complete Pearson correlation. All functions are pure.
package engine

import (
	"github.com/montanaflynn/stats"

	"quantix/domain/dataset"
	domainstats "quantix/domain/stats"
)

// ValidValues returns the numeric values of vals in order. Missing and
// non-numeric entries are dropped, never coerced to zero.
func ValidValues(vals []dataset.Value) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if f, ok := v.Float64(); ok {
			out = append(out, f)
		}
	}
	return out
}

// Mean is the arithmetic average of the valid values
func Mean(vals []dataset.Value) domainstats.Statistic {
	return mean(ValidValues(vals))
}

// Median is the middle valid value, or the average of the two middle ones
func Median(vals []dataset.Value) domainstats.Statistic {
	return median(ValidValues(vals))
}

// Variance is the population variance (divide by N) of the valid values.
// A single value has variance 0.
func Variance(vals []dataset.Value) domainstats.Statistic {
	return variance(ValidValues(vals))
}

// Summarize computes mean, median and variance over one filtered pass
func Summarize(vals []dataset.Value) domainstats.StatisticsResult {
	valid := ValidValues(vals)
	return domainstats.StatisticsResult{
		Mean:         mean(valid),
		Median:       median(valid),
		Variance:     variance(valid),
		ValidCount:   len(valid),
		InvalidCount: len(vals) - len(valid),
	}
}

func mean(data []float64) domainstats.Statistic {
	if len(data) == 0 {
		return domainstats.Undefined(domainstats.ReasonInsufficientData)
	}
	m, err := stats.Mean(data)
	if err != nil {
		return domainstats.Undefined(domainstats.ReasonInsufficientData)
	}
	return domainstats.Defined(m)
}

func median(data []float64) domainstats.Statistic {
	if len(data) == 0 {
		return domainstats.Undefined(domainstats.ReasonInsufficientData)
	}
	// stats.Median sorts a copy; data is left in record order
	m, err := stats.Median(data)
	if err != nil {
		return domainstats.Undefined(domainstats.ReasonInsufficientData)
	}
	return domainstats.Defined(m)
}

func variance(data []float64) domainstats.Statistic {
	if len(data) == 0 {
		return domainstats.Undefined(domainstats.ReasonInsufficientData)
	}
	if constant(data) {
		return domainstats.Defined(0)
	}
	v, err := stats.PopulationVariance(data)
	if err != nil {
		return domainstats.Undefined(domainstats.ReasonInsufficientData)
	}
	return domainstats.Defined(v)
}
