package dataset

import (
	"encoding/json"
	"fmt"

	"quantix/domain/core"
)

// Record is one student's observation. Records are immutable: fields are
// only set by NewRecord, and GradeDifference is derived there.
type Record struct {
	lastSemesterScore      Value
	currentSemesterScore   Value
	attendanceRate         Value
	homeworkSubmissionRate Value
	weekdayStudyHours      Value
	weekendStudyHours      Value
	classUnderstanding     Value
	gradeDifference        Value
}

// NewRecord builds a record from schema attribute values. Absent keys are
// missing. Supplying the derived GradeDifference, the index pseudo-field or
// an unknown key is an error.
func NewRecord(values map[FieldKey]Value) (Record, error) {
	var r Record
	for key, v := range values {
		switch key {
		case LastSemesterScore:
			r.lastSemesterScore = v
		case CurrentSemesterScore:
			r.currentSemesterScore = v
		case AttendanceRate:
			r.attendanceRate = v
		case HomeworkSubmissionRate:
			r.homeworkSubmissionRate = v
		case WeekdayStudyHours:
			r.weekdayStudyHours = v
		case WeekendStudyHours:
			r.weekendStudyHours = v
		case ClassUnderstanding:
			r.classUnderstanding = v
		case GradeDifference:
			return Record{}, core.NewRecordError(string(key), "derived field cannot be supplied")
		case FieldIndex:
			return Record{}, core.NewRecordError(string(key), "pseudo-field cannot be supplied")
		default:
			return Record{}, core.NewRecordError(string(key), "not in field catalog")
		}
	}
	r.gradeDifference = deriveGradeDifference(r.currentSemesterScore, r.lastSemesterScore)
	return r, nil
}

// MustRecord is NewRecord for fixtures; it panics on error
func MustRecord(values map[FieldKey]Value) Record {
	r, err := NewRecord(values)
	if err != nil {
		panic(err)
	}
	return r
}

// deriveGradeDifference is current - last, missing unless both operands are valid
func deriveGradeDifference(current, last Value) Value {
	c, okC := current.Float64()
	l, okL := last.Float64()
	if !okC || !okL {
		return MissingValue()
	}
	return NumericValue(c - l)
}

// Get extracts a schema attribute. The index pseudo-field and unknown keys
// yield missing; use Dataset.Column for positional values.
func (r Record) Get(key FieldKey) Value {
	meta, ok := catalogByKey[key]
	if !ok || meta.extract == nil {
		return MissingValue()
	}
	return meta.extract(r)
}

// MarshalJSON encodes the record keyed by FieldKey
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]Value, len(catalog))
	for _, meta := range SchemaFields() {
		out[string(meta.Key)] = meta.extract(r)
	}
	return json.Marshal(out)
}

func (r Record) String() string {
	return fmt.Sprintf("Record{last=%s current=%s diff=%s}",
		r.lastSemesterScore, r.currentSemesterScore, r.gradeDifference)
}
