package testkit

import (
	"encoding/csv"
	"io"
	"math"
	"math/rand"
	"strconv"

	"quantix/domain/dataset"
)

// StudentGeneratorConfig configures the synthetic student dataset
type StudentGeneratorConfig struct {
	StudentCount int     `json:"student_count"`
	MissingRate  float64 `json:"missing_rate"` // chance a cell is left blank
	Seed         int64   `json:"seed"`
}

// DefaultStudentConfig returns a class-sized dataset with a few blanks
func DefaultStudentConfig() StudentGeneratorConfig {
	return StudentGeneratorConfig{
		StudentCount: 40,
		MissingRate:  0.03,
		Seed:         42,
	}
}

// StudentGenerator produces plausible, reproducible student records. Study
// hours and attendance drive the current score so correlations are visible.
type StudentGenerator struct {
	config StudentGeneratorConfig
	rng    *rand.Rand
}

// NewStudentGenerator creates a generator; equal configs yield equal data
func NewStudentGenerator(config StudentGeneratorConfig) *StudentGenerator {
	return &StudentGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateRows returns one row of raw attribute values per student, in
// SchemaFields order without the derived field. NaN marks a blank cell.
func (g *StudentGenerator) GenerateRows() [][]float64 {
	rows := make([][]float64, 0, g.config.StudentCount)
	for i := 0; i < g.config.StudentCount; i++ {
		rows = append(rows, g.student())
	}
	return rows
}

// GenerateRecords converts GenerateRows into records
func (g *StudentGenerator) GenerateRecords() []dataset.Record {
	keys := inputFields()
	rows := g.GenerateRows()
	records := make([]dataset.Record, 0, len(rows))
	for _, row := range rows {
		values := make(map[dataset.FieldKey]dataset.Value, len(keys))
		for j, key := range keys {
			values[key] = dataset.NumericValue(row[j]) // NaN becomes missing
		}
		records = append(records, dataset.MustRecord(values))
	}
	return records
}

// GenerateDataset wraps GenerateRecords in a snapshot
func (g *StudentGenerator) GenerateDataset() *dataset.Dataset {
	return dataset.New(g.GenerateRecords(), "synthetic")
}

// WriteCSV writes the generated rows with catalog headers, blanks for NaN
func (g *StudentGenerator) WriteCSV(w io.Writer) error {
	keys := inputFields()
	cw := csv.NewWriter(w)

	header := make([]string, len(keys))
	for i, key := range keys {
		meta, _ := dataset.Lookup(key)
		header[i] = meta.Header
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range g.GenerateRows() {
		cells := make([]string, len(row))
		for i, v := range row {
			if !math.IsNaN(v) {
				cells[i] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (g *StudentGenerator) student() []float64 {
	weekday := clamp(math.Round((1.5+g.rng.NormFloat64()*0.8)*2)/2, 0, 6)
	weekend := clamp(math.Round((2.5+g.rng.NormFloat64()*1.2)*2)/2, 0, 10)
	attendance := clamp(math.Round(88+g.rng.NormFloat64()*8), 40, 100)
	homework := clamp(math.Round(attendance-5+g.rng.NormFloat64()*10), 0, 100)
	understanding := clamp(math.Round(3+g.rng.NormFloat64()), 1, 5)
	last := clamp(math.Round(62+g.rng.NormFloat64()*12), 0, 100)
	current := clamp(math.Round(last+4*(weekday-1.5)+1.5*(weekend-2.5)+0.3*(attendance-88)+g.rng.NormFloat64()*5), 0, 100)

	row := []float64{last, current, attendance, homework, weekday, weekend, understanding}
	for i := range row {
		if g.rng.Float64() < g.config.MissingRate {
			row[i] = math.NaN()
		}
	}
	return row
}

// inputFields are the schema fields supplied by a source, in catalog order
func inputFields() []dataset.FieldKey {
	var keys []dataset.FieldKey
	for _, meta := range dataset.SchemaFields() {
		if !meta.Derived {
			keys = append(keys, meta.Key)
		}
	}
	return keys
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
