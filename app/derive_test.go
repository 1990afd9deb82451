package app

import (
	"testing"

	"quantix/domain/core"
	"quantix/domain/dataset"
	"quantix/domain/selection"
	"quantix/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func student(last, current, weekday float64) dataset.Record {
	return dataset.MustRecord(map[dataset.FieldKey]dataset.Value{
		dataset.LastSemesterScore:    dataset.NumericValue(last),
		dataset.CurrentSemesterScore: dataset.NumericValue(current),
		dataset.WeekdayStudyHours:    dataset.NumericValue(weekday),
	})
}

func classroom() *dataset.Dataset {
	return dataset.New([]dataset.Record{
		student(60, 62, 1),
		student(70, 74, 2),
		student(80, 86, 3),
		dataset.MustRecord(map[dataset.FieldKey]dataset.Value{
			dataset.LastSemesterScore: dataset.NumericValue(90),
			dataset.WeekdayStudyHours: dataset.TextValue("unknown"),
		}),
	}, "fixture")
}

func state(kind selection.SectionKind, roles ...selection.RoleState) selection.State {
	return selection.State{Kind: kind, Roles: roles}
}

func role(r selection.Role, keys ...dataset.FieldKey) selection.RoleState {
	return selection.RoleState{Role: r, Slots: keys}
}

func TestDeriveViewsSummary(t *testing.T) {
	ds := classroom()
	bundle, err := DeriveViews(ds, []selection.State{
		state(selection.SectionSummary, role(selection.RoleFields,
			dataset.LastSemesterScore, dataset.Unselected, dataset.GradeDifference)),
	}, DeriveOptions{})
	require.NoError(t, err)

	assert.Equal(t, ds.ID(), bundle.DatasetID)
	assert.Equal(t, 4, bundle.RecordCount)
	view, ok := bundle.Section(selection.SectionSummary)
	require.True(t, ok)
	require.Len(t, view.Statistics, 2, "unselected slots produce nothing")
	assert.Empty(t, view.Histograms)

	last := view.Statistics[0]
	assert.Equal(t, 0, last.Slot)
	assert.Equal(t, 4, last.Result.ValidCount)
	mean, _ := last.Result.Mean.Get()
	assert.InDelta(t, 75.0, mean, 1e-9)

	diff := view.Statistics[1]
	assert.Equal(t, 2, diff.Slot)
	assert.Equal(t, 3, diff.Result.ValidCount, "missing current score yields missing difference")
	assert.Equal(t, 1, diff.Result.InvalidCount)
	mean, _ = diff.Result.Mean.Get()
	assert.InDelta(t, 4.0, mean, 1e-9)
}

func TestDeriveViewsDistribution(t *testing.T) {
	bundle, err := DeriveViews(classroom(), []selection.State{
		state(selection.SectionDistribution, role(selection.RoleFields, dataset.WeekdayStudyHours)),
	}, DeriveOptions{Bins: 2})
	require.NoError(t, err)

	view, _ := bundle.Section(selection.SectionDistribution)
	require.Len(t, view.Histograms, 1)
	dist := view.Histograms[0].Distribution
	assert.Len(t, dist.Bins, 2)
	assert.Equal(t, 3, dist.Total, "non-numeric study hours are dropped")
	assert.Empty(t, view.Statistics)
}

func TestDeriveViewsCorrelationAndSeries(t *testing.T) {
	bundle, err := DeriveViews(classroom(), []selection.State{
		state(selection.SectionGraph,
			role(selection.RoleX, dataset.FieldIndex),
			role(selection.RoleY, dataset.CurrentSemesterScore, dataset.WeekdayStudyHours)),
		state(selection.SectionCorrelation,
			role(selection.RoleX, dataset.LastSemesterScore),
			role(selection.RoleY, dataset.Unselected, dataset.WeekdayStudyHours)),
	}, DeriveOptions{})
	require.NoError(t, err)

	graph, _ := bundle.Section(selection.SectionGraph)
	require.Len(t, graph.Series, 2)
	assert.Equal(t, "Student vs Current semester score", graph.Series[0].Label)
	assert.Equal(t, []stats.Point{{X: 1, Y: 62}, {X: 2, Y: 74}, {X: 3, Y: 86}}, graph.Series[0].Points)
	require.Len(t, graph.Correlations, 2)

	corr, _ := bundle.Section(selection.SectionCorrelation)
	assert.Empty(t, corr.Series)
	require.Len(t, corr.Correlations, 1)
	pc := corr.Correlations[0]
	assert.Equal(t, 1, pc.YSlot)
	assert.Equal(t, 3, pc.Result.PairedCount)
	r, ok := pc.Result.Coefficient.Get()
	require.True(t, ok)
	assert.InDelta(t, 1.0, r, 1e-9)
}

func TestDeriveViewsUnselectedXDerivesNoPairs(t *testing.T) {
	bundle, err := DeriveViews(classroom(), []selection.State{
		state(selection.SectionCorrelation,
			role(selection.RoleX, dataset.Unselected),
			role(selection.RoleY, dataset.CurrentSemesterScore)),
	}, DeriveOptions{})
	require.NoError(t, err)
	view, _ := bundle.Section(selection.SectionCorrelation)
	assert.Empty(t, view.Correlations)
}

func TestDeriveViewsRejectsContractViolations(t *testing.T) {
	tests := []struct {
		name  string
		state selection.State
		want  error
	}{
		{"index on y", state(selection.SectionCorrelation,
			role(selection.RoleX, dataset.LastSemesterScore),
			role(selection.RoleY, dataset.FieldIndex)), core.ErrRoleMismatch},
		{"unknown field", state(selection.SectionSummary,
			role(selection.RoleFields, "shoe_size")), core.ErrUnknownField},
		{"two x slots", state(selection.SectionGraph,
			role(selection.RoleX, dataset.FieldIndex, dataset.LastSemesterScore),
			role(selection.RoleY, dataset.CurrentSemesterScore)), core.ErrRoleMismatch},
		{"unknown section", state("pie"), core.ErrUnknownSection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveViews(classroom(), []selection.State{tt.state}, DeriveOptions{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeriveViewsIsDeterministic(t *testing.T) {
	ds := classroom()
	states := []selection.State{
		state(selection.SectionSummary, role(selection.RoleFields, dataset.AttendanceRate)),
	}
	a, err := DeriveViews(ds, states, DeriveOptions{})
	require.NoError(t, err)
	b, err := DeriveViews(ds, states, DeriveOptions{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFingerprintTracksInputs(t *testing.T) {
	ds := classroom()
	s1 := []selection.State{state(selection.SectionSummary, role(selection.RoleFields, dataset.AttendanceRate))}
	s2 := []selection.State{state(selection.SectionSummary, role(selection.RoleFields, dataset.WeekendStudyHours))}

	assert.Equal(t, Fingerprint(ds.ID(), s1), Fingerprint(ds.ID(), s1))
	assert.NotEqual(t, Fingerprint(ds.ID(), s1), Fingerprint(ds.ID(), s2))
	assert.NotEqual(t, Fingerprint(ds.ID(), s1), Fingerprint(classroom().ID(), s1))
}

func TestDeriveViewsNilDataset(t *testing.T) {
	bundle, err := DeriveViews(nil, []selection.State{
		state(selection.SectionSummary, role(selection.RoleFields, dataset.AttendanceRate)),
	}, DeriveOptions{})
	require.NoError(t, err)
	view, _ := bundle.Section(selection.SectionSummary)
	require.Len(t, view.Statistics, 1)
	assert.False(t, view.Statistics[0].Result.Mean.IsDefined())
}
