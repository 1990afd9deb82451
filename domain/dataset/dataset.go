package dataset

import (
	"fmt"

	"quantix/domain/core"
)

// Dataset is an immutable, ordered snapshot of records. It is replaced as a
// whole, never updated in place.
type Dataset struct {
	id       core.DatasetID
	source   string
	loadedAt core.Timestamp
	records  []Record
}

// Info summarizes a snapshot for presentation
type Info struct {
	ID          core.DatasetID `json:"id"`
	Source      string         `json:"source"`
	RecordCount int            `json:"record_count"`
	LoadedAt    core.Timestamp `json:"loaded_at"`
}

// New creates a snapshot with a fresh ID. The records slice is copied.
func New(records []Record, source string) *Dataset {
	owned := make([]Record, len(records))
	copy(owned, records)
	return &Dataset{
		id:       core.NewDatasetID(),
		source:   source,
		loadedAt: core.Now(),
		records:  owned,
	}
}

// Empty returns a snapshot with no records
func Empty() *Dataset {
	return New(nil, "empty")
}

func (d *Dataset) ID() core.DatasetID       { return d.id }
func (d *Dataset) Source() string           { return d.source }
func (d *Dataset) LoadedAt() core.Timestamp { return d.loadedAt }
func (d *Dataset) Len() int                 { return len(d.records) }

// Info returns the snapshot summary
func (d *Dataset) Info() Info {
	return Info{ID: d.id, Source: d.source, RecordCount: len(d.records), LoadedAt: d.loadedAt}
}

// Record returns the record at position i
func (d *Dataset) Record(i int) (Record, bool) {
	if i < 0 || i >= len(d.records) {
		return Record{}, false
	}
	return d.records[i], true
}

// Column returns one value per record, in record order. For the index
// pseudo-field the values are the 1-based ordinal positions.
func (d *Dataset) Column(key FieldKey) ([]Value, error) {
	meta, ok := catalogByKey[key]
	if !ok {
		return nil, core.NewSelectionError(core.ErrUnknownField, fmt.Sprintf("%q", key))
	}

	values := make([]Value, len(d.records))
	if meta.Synthetic {
		for i := range d.records {
			values[i] = NumericValue(float64(i + 1))
		}
		return values, nil
	}
	for i, r := range d.records {
		values[i] = meta.extract(r)
	}
	return values, nil
}
