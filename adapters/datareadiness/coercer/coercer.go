package coercer

import (
	"math"
	"strconv"
	"strings"

	"quantix/domain/dataset"
)

// TypeCoercer turns raw spreadsheet cells into dataset values with fixed,
// deterministic rules
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	NumericThreshold float64  `json:"numeric_threshold"` // share of present cells that must parse for a column to count as numeric
	MissingTokens    []string `json:"missing_tokens"`    // cells treated as blank (case-insensitive)
	DecimalComma     bool     `json:"decimal_comma"`     // accept "72,5" as 72.5
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NumericThreshold: 0.8,
		MissingTokens:    []string{"", "na", "n/a", "null", "nan", "-"},
		DecimalComma:     true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// CoerceCell converts one raw cell. Blank cells and missing tokens become
// missing; anything that parses as a finite number becomes numeric; the rest
// is kept as text, which the statistics treat as invalid.
func (c *TypeCoercer) CoerceCell(raw string) dataset.Value {
	trimmed := strings.TrimSpace(raw)
	if c.isMissingToken(trimmed) {
		return dataset.MissingValue()
	}
	if f, ok := c.tryParseNumeric(trimmed); ok {
		return dataset.NumericValue(f)
	}
	return dataset.TextValue(trimmed)
}

// ColumnAnalysis counts how a column's cells coerce
type ColumnAnalysis struct {
	TotalCount   int     `json:"total_count"`
	MissingCount int     `json:"missing_count"`
	NumericCount int     `json:"numeric_count"`
	TextCount    int     `json:"text_count"`
	NumericRatio float64 `json:"numeric_ratio"` // of present cells
	IsNumeric    bool    `json:"is_numeric"`
}

// AnalyzeColumn coerces every cell and reports the mix
func (c *TypeCoercer) AnalyzeColumn(cells []string) ColumnAnalysis {
	analysis := ColumnAnalysis{TotalCount: len(cells)}
	for _, cell := range cells {
		switch c.CoerceCell(cell).Kind() {
		case dataset.KindMissing:
			analysis.MissingCount++
		case dataset.KindNumeric:
			analysis.NumericCount++
		default:
			analysis.TextCount++
		}
	}

	present := analysis.NumericCount + analysis.TextCount
	if present > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(present)
	}
	analysis.IsNumeric = present > 0 && analysis.NumericRatio >= c.config.NumericThreshold
	return analysis
}

func (c *TypeCoercer) isMissingToken(s string) bool {
	for _, token := range c.config.MissingTokens {
		if strings.EqualFold(s, token) {
			return true
		}
	}
	return s == ""
}

// tryParseNumeric accepts plain and scientific notation, percentages,
// currency marks, thousands separators and accounting negatives "(12)"
func (c *TypeCoercer) tryParseNumeric(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	clean := s

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = strings.TrimSuffix(strings.TrimPrefix(clean, "("), ")")
		negative = true
	}

	for _, symbol := range []string{"$", "€", "£", "¥", "%"} {
		clean = strings.ReplaceAll(clean, symbol, "")
	}
	clean = strings.TrimSpace(clean)
	clean = c.normalizeSeparators(clean)

	if negative {
		clean = "-" + clean
	}

	f, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// normalizeSeparators rewrites grouping and decimal marks into Go syntax
func (c *TypeCoercer) normalizeSeparators(s string) string {
	hasComma := strings.Contains(s, ",")
	hasPeriod := strings.Contains(s, ".")

	switch {
	case hasComma && hasPeriod:
		// whichever mark comes last is the decimal point
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		afterLast := s[strings.LastIndex(s, ",")+1:]
		if c.config.DecimalComma && strings.Count(s, ",") == 1 && len(afterLast) != 3 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	return strings.ReplaceAll(s, " ", "")
}
