package excel

import (
	"context"
	"fmt"

	"quantix/adapters/datareadiness/coercer"
	"quantix/domain/dataset"
	"quantix/internal"
	"quantix/internal/errors"
	"quantix/ports"
)

// StudentSource loads student records from a CSV or XLSX file. Headers are
// matched against the field catalog; unrecognised columns are ignored and a
// missing catalog column leaves that attribute missing on every record.
type StudentSource struct {
	config  ExcelConfig
	reader  *DataReader
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewStudentSource creates a source for config.FilePath
func NewStudentSource(config ExcelConfig) *StudentSource {
	return &StudentSource{
		config:  config,
		reader:  NewDataReader(config.FilePath, config.Sheet),
		coercer: coercer.NewTypeCoercer(config.CoercionConfig),
		logger:  internal.DefaultLogger.With("DataReader"),
	}
}

// Describe names the underlying file
func (s *StudentSource) Describe() string { return s.config.FilePath }

// Load reads the file and builds a fresh snapshot
func (s *StudentSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.reader.ReadData()
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", s.config.FilePath)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Build(data)
}

// Build coerces raw sheet data into a dataset
func (s *StudentSource) Build(data *ExcelData) (*dataset.Dataset, error) {
	columns, err := s.mapHeaders(data.Headers)
	if err != nil {
		return nil, err
	}

	for header, key := range columns {
		analysis := s.coercer.AnalyzeColumn(data.Column(header))
		if !analysis.IsNumeric && analysis.NumericCount+analysis.TextCount > 0 {
			s.logger.Warn("column %q (%s) is mostly non-numeric: %d of %d present cells parse",
				header, key, analysis.NumericCount, analysis.NumericCount+analysis.TextCount)
		}
	}

	records := make([]dataset.Record, 0, len(data.Rows))
	for _, row := range data.Rows {
		values := make(map[dataset.FieldKey]dataset.Value, len(columns))
		for header, key := range columns {
			values[key] = s.coercer.CoerceCell(row[header])
		}
		// mapHeaders admits input fields only
		records = append(records, dataset.MustRecord(values))
	}

	ds := dataset.New(records, s.config.FilePath)
	s.logger.Info("loaded dataset %s: %d records from %s", ds.ID(), ds.Len(), s.config.FilePath)
	return ds, nil
}

// mapHeaders resolves headers to input fields. Derived and synthetic
// columns are ignored: GradeDifference is always recomputed.
func (s *StudentSource) mapHeaders(headers []string) (map[string]dataset.FieldKey, error) {
	columns := make(map[string]dataset.FieldKey)
	seen := make(map[dataset.FieldKey]string)
	for _, header := range headers {
		if header == "" {
			continue
		}
		key, err := dataset.ParseFieldKey(header)
		if err != nil {
			s.logger.Debug("ignoring column %q", header)
			continue
		}
		meta, _ := dataset.Lookup(key)
		if meta.Derived || meta.Synthetic {
			s.logger.Debug("ignoring computed column %q", header)
			continue
		}
		if prev, dup := seen[key]; dup {
			return nil, errors.InvalidInput(fmt.Sprintf("columns %q and %q both map to %s", prev, header, key))
		}
		seen[key] = header
		columns[header] = key
	}

	for _, meta := range dataset.SchemaFields() {
		if _, ok := seen[meta.Key]; !ok && !meta.Derived {
			s.logger.Warn("column %q not found; %s will be missing for every record", meta.Header, meta.Key)
		}
	}
	return columns, nil
}

var _ ports.DatasetSource = (*StudentSource)(nil)
