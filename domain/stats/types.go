package stats

import (
	"encoding/json"
	"fmt"

	"quantix/domain/core"
	"quantix/domain/dataset"
)

// ============================================================================
// STATISTIC (defined value or explicit undefined marker)
// ============================================================================

// UndefinedReason explains why a statistic has no value
type UndefinedReason string

const (
	ReasonNone               UndefinedReason = ""
	ReasonInsufficientData   UndefinedReason = "insufficient_data"
	ReasonUndefinedStatistic UndefinedReason = "undefined_statistic"
)

// Statistic is a number that may be undefined. Consumers must check
// IsDefined before display; an undefined statistic is never 0.
type Statistic struct {
	value   float64
	defined bool
	reason  UndefinedReason
}

// Defined wraps a computed value
func Defined(v float64) Statistic {
	return Statistic{value: v, defined: true}
}

// Undefined returns a statistic with no value
func Undefined(reason UndefinedReason) Statistic {
	return Statistic{reason: reason}
}

// IsDefined reports whether the statistic holds a value
func (s Statistic) IsDefined() bool { return s.defined }

// Get returns the value and whether it is defined
func (s Statistic) Get() (float64, bool) { return s.value, s.defined }

// Reason returns why the statistic is undefined (empty when defined)
func (s Statistic) Reason() UndefinedReason { return s.reason }

// Err maps an undefined statistic to its domain sentinel
func (s Statistic) Err() error {
	if s.defined {
		return nil
	}
	switch s.reason {
	case ReasonInsufficientData:
		return core.ErrInsufficientData
	default:
		return core.ErrUndefinedStatistic
	}
}

// Format renders the value with the given precision, or "undefined"
func (s Statistic) Format(precision int) string {
	if !s.defined {
		return "undefined"
	}
	return fmt.Sprintf("%.*f", precision, s.value)
}

func (s Statistic) String() string { return s.Format(4) }

type statisticJSON struct {
	Value  *float64        `json:"value"`
	Reason UndefinedReason `json:"undefined_reason,omitempty"`
}

// MarshalJSON emits {"value": x} or {"value": null, "undefined_reason": "..."}
func (s Statistic) MarshalJSON() ([]byte, error) {
	out := statisticJSON{Reason: s.reason}
	if s.defined {
		v := s.value
		out.Value = &v
	}
	return json.Marshal(out)
}

// ============================================================================
// RESULTS (transient, recreated on every recompute)
// ============================================================================

// StatisticsResult summarizes one field's valid values
type StatisticsResult struct {
	Mean     Statistic `json:"mean"`
	Median   Statistic `json:"median"`
	Variance Statistic `json:"variance"` // population variance (divide by N)

	ValidCount   int `json:"valid_count"`
	InvalidCount int `json:"invalid_count"` // missing or non-numeric
}

// CorrelationResult is a Pearson coefficient in [-1, 1] or undefined
type CorrelationResult struct {
	Coefficient Statistic `json:"coefficient"`
	PairedCount int       `json:"paired_count"` // pairwise-complete observations
}

// Bin is one contiguous value-range bucket
type Bin struct {
	Label string  `json:"label"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// FrequencyDistribution is an ordered histogram. Counts sum to Total.
type FrequencyDistribution struct {
	Bins       []Bin `json:"bins"`
	Total      int   `json:"total"`
	Degenerate bool  `json:"degenerate,omitempty"` // every valid value identical
}

// Err reports why the distribution is not a regular equal-width layout:
// ErrInsufficientData when there were no valid values, ErrDegenerateRange
// for the single-bin fallback. Neither is a failure.
func (d FrequencyDistribution) Err() error {
	switch {
	case d.Total == 0:
		return core.ErrInsufficientData
	case d.Degenerate:
		return core.ErrDegenerateRange
	}
	return nil
}

// Point is one scatter observation
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScatterSeries plots one Y field against the X field
type ScatterSeries struct {
	Label  string           `json:"label"`
	X      dataset.FieldKey `json:"x"`
	Y      dataset.FieldKey `json:"y"`
	Points []Point          `json:"points"`
}
