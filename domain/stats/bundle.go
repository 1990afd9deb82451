package stats

import (
	"quantix/domain/core"
	"quantix/domain/dataset"
	"quantix/domain/selection"
)

// FieldStatistics ties a StatisticsResult to the slot it was computed for
type FieldStatistics struct {
	Slot   int              `json:"slot"`
	Field  dataset.FieldKey `json:"field"`
	Label  string           `json:"label"`
	Result StatisticsResult `json:"result"`
}

// FieldHistogram ties a FrequencyDistribution to its slot
type FieldHistogram struct {
	Slot         int                   `json:"slot"`
	Field        dataset.FieldKey      `json:"field"`
	Label        string                `json:"label"`
	Distribution FrequencyDistribution `json:"distribution"`
}

// PairCorrelation is the correlation of the X field with one Y slot
type PairCorrelation struct {
	YSlot  int               `json:"y_slot"`
	X      dataset.FieldKey  `json:"x"`
	Y      dataset.FieldKey  `json:"y"`
	Label  string            `json:"label"`
	Result CorrelationResult `json:"result"`
}

// SectionView is everything derived for one section. Selection is the
// exact state the results were computed from.
type SectionView struct {
	Selection    selection.State   `json:"selection"`
	Statistics   []FieldStatistics `json:"statistics,omitempty"`
	Histograms   []FieldHistogram  `json:"histograms,omitempty"`
	Correlations []PairCorrelation `json:"correlations,omitempty"`
	Series       []ScatterSeries   `json:"series,omitempty"`
}

// ResultBundle is one consistent derivation from a dataset snapshot and the
// selections of every section
type ResultBundle struct {
	DatasetID   core.DatasetID `json:"dataset_id"`
	RecordCount int            `json:"record_count"`
	Fingerprint core.Hash      `json:"fingerprint"`
	ComputedAt  core.Timestamp `json:"computed_at"`
	Sections    []SectionView  `json:"sections"`
}

// Section returns the view for kind
func (b *ResultBundle) Section(kind selection.SectionKind) (SectionView, bool) {
	if b == nil {
		return SectionView{}, false
	}
	for _, view := range b.Sections {
		if view.Selection.Kind == kind {
			return view, true
		}
	}
	return SectionView{}, false
}
