package dataset

import (
	"encoding/json"
	"math"
	"testing"

	"quantix/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsExhaustive(t *testing.T) {
	fields := Fields()
	require.Len(t, fields, 9)
	assert.Equal(t, FieldIndex, fields[len(fields)-1].Key, "index pseudo-field is listed last")

	for _, meta := range SchemaFields() {
		assert.False(t, meta.Synthetic)
		assert.NotNil(t, meta.extract, "field %s has no extractor", meta.Key)
	}
	assert.Len(t, SchemaFields(), 8)
}

func TestParseFieldKey(t *testing.T) {
	tests := []struct {
		input    string
		expected FieldKey
		wantErr  bool
	}{
		{"last_semester_score", LastSemesterScore, false},
		{"Last Semester Score", LastSemesterScore, false},
		{"  weekend study hours ", WeekendStudyHours, false},
		{"GradeDifference", GradeDifference, false},
		{"Student-wise", FieldIndex, false},
		{"index", FieldIndex, false},
		{"", Unselected, false},
		{"Shoe Size", Unselected, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFieldKey(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, core.ErrInvalidSelection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValueValidity(t *testing.T) {
	assert.True(t, NumericValue(3).IsValid())
	assert.False(t, NumericValue(math.NaN()).IsValid())
	assert.True(t, NumericValue(math.Inf(1)).IsMissing())
	assert.False(t, TextValue("good").IsValid())
	assert.Equal(t, KindText, TextValue("good").Kind())
	assert.True(t, TextValue("").IsMissing())

	_, ok := MissingValue().Float64()
	assert.False(t, ok)
}

func TestNewRecordDerivesGradeDifference(t *testing.T) {
	r, err := NewRecord(map[FieldKey]Value{
		LastSemesterScore:    NumericValue(72),
		CurrentSemesterScore: NumericValue(65.5),
	})
	require.NoError(t, err)

	diff, ok := r.Get(GradeDifference).Float64()
	require.True(t, ok)
	assert.InDelta(t, -6.5, diff, 1e-12)
}

func TestNewRecordMissingOperandYieldsMissingDifference(t *testing.T) {
	cases := map[string]map[FieldKey]Value{
		"missing current": {LastSemesterScore: NumericValue(70)},
		"missing last":    {CurrentSemesterScore: NumericValue(70)},
		"text current":    {LastSemesterScore: NumericValue(70), CurrentSemesterScore: TextValue("absent")},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := NewRecord(values)
			require.NoError(t, err)
			diff := r.Get(GradeDifference)
			assert.False(t, diff.IsValid())
			_, ok := diff.Float64()
			assert.False(t, ok, "difference must not be coerced to zero")
		})
	}
}

func TestNewRecordRejectsDerivedAndSyntheticFields(t *testing.T) {
	for _, key := range []FieldKey{GradeDifference, FieldIndex, FieldKey("shoe_size")} {
		_, err := NewRecord(map[FieldKey]Value{key: NumericValue(1)})
		assert.ErrorIs(t, err, core.ErrInvalidRecord, "key %s", key)
	}
}

func TestDatasetColumn(t *testing.T) {
	ds := New([]Record{
		MustRecord(map[FieldKey]Value{AttendanceRate: NumericValue(0.9)}),
		MustRecord(map[FieldKey]Value{}),
		MustRecord(map[FieldKey]Value{AttendanceRate: NumericValue(0.75)}),
	}, "test")

	col, err := ds.Column(AttendanceRate)
	require.NoError(t, err)
	require.Len(t, col, 3)
	assert.True(t, col[0].IsValid())
	assert.True(t, col[1].IsMissing())

	idx, err := ds.Column(FieldIndex)
	require.NoError(t, err)
	for i, v := range idx {
		f, ok := v.Float64()
		require.True(t, ok)
		assert.Equal(t, float64(i+1), f)
	}

	_, err = ds.Column(FieldKey("bogus"))
	assert.ErrorIs(t, err, core.ErrUnknownField)
}

func TestDatasetIsASnapshot(t *testing.T) {
	records := []Record{MustRecord(map[FieldKey]Value{ClassUnderstanding: NumericValue(3)})}
	ds := New(records, "test")

	records[0] = MustRecord(map[FieldKey]Value{ClassUnderstanding: NumericValue(5)})

	r, ok := ds.Record(0)
	require.True(t, ok)
	v, _ := r.Get(ClassUnderstanding).Float64()
	assert.Equal(t, 3.0, v, "caller mutation must not reach the snapshot")

	other := New(records, "test")
	assert.NotEqual(t, ds.ID(), other.ID())
}

func TestRecordMarshalJSON(t *testing.T) {
	r := MustRecord(map[FieldKey]Value{
		LastSemesterScore:    NumericValue(80),
		CurrentSemesterScore: NumericValue(85),
		ClassUnderstanding:   TextValue("good"),
	})
	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, 5.0, decoded["grade_difference"])
	assert.Equal(t, "good", decoded["class_understanding"])
	assert.Nil(t, decoded["attendance_rate"])
	_, hasIndex := decoded["index"]
	assert.False(t, hasIndex)
}
