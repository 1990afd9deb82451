package testkit

import (
	"context"
	"sync/atomic"

	"quantix/domain/dataset"
)

// StaticSource is an in-memory DatasetSource. Each Load returns a fresh
// snapshot of the configured records; Err, when set, fails every Load.
type StaticSource struct {
	Records []dataset.Record
	Err     error

	loads atomic.Int64
}

// NewStaticSource creates a source over records
func NewStaticSource(records []dataset.Record) *StaticSource {
	return &StaticSource{Records: records}
}

// NewSyntheticSource creates a source over the default synthetic class
func NewSyntheticSource() *StaticSource {
	return NewStaticSource(NewStudentGenerator(DefaultStudentConfig()).GenerateRecords())
}

func (s *StaticSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	s.loads.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return dataset.New(s.Records, s.Describe()), nil
}

func (s *StaticSource) Describe() string { return "memory" }

// Loads reports how many times Load was called
func (s *StaticSource) Loads() int64 { return s.loads.Load() }
