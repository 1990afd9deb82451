package app

import (
	"fmt"
	"strings"

	"quantix/adapters/stats/binning"
	"quantix/adapters/stats/engine"
	"quantix/domain/core"
	"quantix/domain/dataset"
	"quantix/domain/selection"
	"quantix/domain/stats"
)

// DeriveOptions tunes derivation. The zero value is usable.
type DeriveOptions struct {
	Bins int // histogram bins; <= 0 means binning.DefaultBins
}

// products lists what each section kind derives
var products = map[selection.SectionKind]struct {
	statistics, histograms, correlations, series bool
}{
	selection.SectionDistribution: {histograms: true},
	selection.SectionGraph:        {correlations: true, series: true},
	selection.SectionSummary:      {statistics: true},
	selection.SectionCorrelation:  {correlations: true},
}

// DeriveViews computes one consistent ResultBundle from a dataset snapshot
// and section selections. It is pure: the same inputs always produce the
// same bundle (ComputedAt is left for the caller to stamp).
func DeriveViews(ds *dataset.Dataset, sections []selection.State, opts DeriveOptions) (*stats.ResultBundle, error) {
	if ds == nil {
		ds = dataset.Empty()
	}
	bundle := &stats.ResultBundle{
		DatasetID:   ds.ID(),
		RecordCount: ds.Len(),
		Fingerprint: Fingerprint(ds.ID(), sections),
		Sections:    make([]stats.SectionView, 0, len(sections)),
	}

	cols := columnCache{ds: ds, cols: make(map[dataset.FieldKey][]dataset.Value)}
	for _, state := range sections {
		view, err := deriveSection(&cols, state, opts)
		if err != nil {
			return nil, fmt.Errorf("derive %s: %w", state.Kind, err)
		}
		bundle.Sections = append(bundle.Sections, view)
	}
	return bundle, nil
}

// Fingerprint identifies the inputs a bundle was derived from
func Fingerprint(id core.DatasetID, sections []selection.State) core.Hash {
	parts := make([]string, 0, 1+len(sections))
	parts = append(parts, id.String())
	for _, state := range sections {
		var b strings.Builder
		b.WriteString(string(state.Kind))
		for _, rs := range state.Roles {
			b.WriteString("|" + string(rs.Role) + "=")
			for i, key := range rs.Slots {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString(string(key))
			}
		}
		parts = append(parts, b.String())
	}
	return core.ComputeFingerprint(parts...)
}

func deriveSection(cols *columnCache, state selection.State, opts DeriveOptions) (stats.SectionView, error) {
	want, ok := products[state.Kind]
	if !ok {
		return stats.SectionView{}, fmt.Errorf("%w: %q", core.ErrUnknownSection, state.Kind)
	}
	if err := validateState(state); err != nil {
		return stats.SectionView{}, err
	}
	view := stats.SectionView{Selection: state}

	for slot, key := range state.Slots(selection.RoleFields) {
		if key == dataset.Unselected {
			continue
		}
		vals, err := cols.get(key)
		if err != nil {
			return view, err
		}
		if want.statistics {
			view.Statistics = append(view.Statistics, stats.FieldStatistics{
				Slot: slot, Field: key, Label: key.DisplayName(), Result: engine.Summarize(vals),
			})
		}
		if want.histograms {
			view.Histograms = append(view.Histograms, stats.FieldHistogram{
				Slot: slot, Field: key, Label: key.DisplayName(), Distribution: binning.Histogram(vals, opts.Bins),
			})
		}
	}

	if !want.correlations && !want.series {
		return view, nil
	}
	xs := state.Slots(selection.RoleX)
	if len(xs) == 0 || xs[0] == dataset.Unselected {
		return view, nil
	}
	xKey := xs[0]
	xVals, err := cols.get(xKey)
	if err != nil {
		return view, err
	}
	for slot, yKey := range state.Slots(selection.RoleY) {
		if yKey == dataset.Unselected {
			continue
		}
		yVals, err := cols.get(yKey)
		if err != nil {
			return view, err
		}
		label := PairLabel(xKey, yKey)
		if want.correlations {
			view.Correlations = append(view.Correlations, stats.PairCorrelation{
				YSlot: slot, X: xKey, Y: yKey, Label: label, Result: engine.Correlation(xVals, yVals),
			})
		}
		if want.series {
			view.Series = append(view.Series, scatter(label, xKey, yKey, xVals, yVals))
		}
	}
	return view, nil
}

// validateState applies the selection model's contract to a state built
// outside a Section
func validateState(state selection.State) error {
	for _, rs := range state.Roles {
		if !rs.Role.IsMulti() && len(rs.Slots) != 1 {
			return core.NewSelectionError(core.ErrRoleMismatch,
				fmt.Sprintf("role %s holds %d slots", rs.Role, len(rs.Slots)))
		}
		for _, key := range rs.Slots {
			if key != dataset.Unselected && !key.IsKnown() {
				return core.NewSelectionError(core.ErrUnknownField, fmt.Sprintf("%q", key))
			}
			if !rs.Role.Accepts(key) {
				return core.NewSelectionError(core.ErrRoleMismatch, fmt.Sprintf("%s in role %s", key, rs.Role))
			}
		}
	}
	return nil
}

// PairLabel is the legend label of a Y series plotted against X
func PairLabel(x, y dataset.FieldKey) string {
	return x.DisplayName() + " vs " + y.DisplayName()
}

func scatter(label string, xKey, yKey dataset.FieldKey, xs, ys []dataset.Value) stats.ScatterSeries {
	px, py := engine.PairedValues(xs, ys)
	points := make([]stats.Point, len(px))
	for i := range px {
		points[i] = stats.Point{X: px[i], Y: py[i]}
	}
	return stats.ScatterSeries{Label: label, X: xKey, Y: yKey, Points: points}
}

// columnCache extracts each column at most once per derivation
type columnCache struct {
	ds   *dataset.Dataset
	cols map[dataset.FieldKey][]dataset.Value
}

func (c *columnCache) get(key dataset.FieldKey) ([]dataset.Value, error) {
	if vals, ok := c.cols[key]; ok {
		return vals, nil
	}
	vals, err := c.ds.Column(key)
	if err != nil {
		return nil, err
	}
	c.cols[key] = vals
	return vals, nil
}
