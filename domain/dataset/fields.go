package dataset

import (
	"fmt"
	"strings"

	"quantix/domain/core"
)

// FieldKey identifies one attribute of the student record schema, or the
// synthetic index pseudo-field. The set is closed: see Fields.
type FieldKey string

const (
	// Unselected marks an empty selection slot. It is not a field.
	Unselected FieldKey = ""

	LastSemesterScore      FieldKey = "last_semester_score"
	CurrentSemesterScore   FieldKey = "current_semester_score"
	AttendanceRate         FieldKey = "attendance_rate"
	HomeworkSubmissionRate FieldKey = "homework_submission_rate"
	WeekdayStudyHours      FieldKey = "weekday_study_hours"
	WeekendStudyHours      FieldKey = "weekend_study_hours"
	ClassUnderstanding     FieldKey = "class_understanding"
	GradeDifference        FieldKey = "grade_difference"

	// FieldIndex plots records by ordinal position. X roles only.
	FieldIndex FieldKey = "index"
)

// FieldMeta describes one entry of the field catalog
type FieldMeta struct {
	Key         FieldKey `json:"key"`
	Header      string   `json:"header"`       // column header in source files
	DisplayName string   `json:"display_name"` // legend / table label
	Derived     bool     `json:"derived,omitempty"`
	Synthetic   bool     `json:"synthetic,omitempty"`

	extract func(Record) Value
}

var catalog = []FieldMeta{
	{Key: LastSemesterScore, Header: "Last Semester Score", DisplayName: "Last semester score",
		extract: func(r Record) Value { return r.lastSemesterScore }},
	{Key: CurrentSemesterScore, Header: "Current Semester Score", DisplayName: "Current semester score",
		extract: func(r Record) Value { return r.currentSemesterScore }},
	{Key: AttendanceRate, Header: "Attendance Rate", DisplayName: "Attendance rate",
		extract: func(r Record) Value { return r.attendanceRate }},
	{Key: HomeworkSubmissionRate, Header: "Homework Submission Rate", DisplayName: "Homework submission rate",
		extract: func(r Record) Value { return r.homeworkSubmissionRate }},
	{Key: WeekdayStudyHours, Header: "Weekday Study Hours", DisplayName: "Weekday study hours",
		extract: func(r Record) Value { return r.weekdayStudyHours }},
	{Key: WeekendStudyHours, Header: "Weekend Study Hours", DisplayName: "Weekend study hours",
		extract: func(r Record) Value { return r.weekendStudyHours }},
	{Key: ClassUnderstanding, Header: "Class Understanding", DisplayName: "Class understanding",
		extract: func(r Record) Value { return r.classUnderstanding }},
	{Key: GradeDifference, Header: "GradeDifference", DisplayName: "Grade difference (current - last)", Derived: true,
		extract: func(r Record) Value { return r.gradeDifference }},
	{Key: FieldIndex, Header: "Student-wise", DisplayName: "Student", Synthetic: true},
}

var catalogByKey = make(map[FieldKey]FieldMeta, len(catalog))

func init() {
	headers := make(map[string]FieldKey, len(catalog))
	for _, meta := range catalog {
		if meta.Key == Unselected {
			panic("dataset: catalog entry with empty key")
		}
		if _, dup := catalogByKey[meta.Key]; dup {
			panic(fmt.Sprintf("dataset: duplicate catalog key %q", meta.Key))
		}
		if prev, dup := headers[normalizeHeader(meta.Header)]; dup {
			panic(fmt.Sprintf("dataset: header %q shared by %q and %q", meta.Header, prev, meta.Key))
		}
		// Every schema attribute must be extractable; only the synthetic index is positional.
		if meta.extract == nil && !meta.Synthetic {
			panic(fmt.Sprintf("dataset: no extractor for field %q", meta.Key))
		}
		catalogByKey[meta.Key] = meta
		headers[normalizeHeader(meta.Header)] = meta.Key
	}
}

// Fields returns the full catalog in presentation order, index last
func Fields() []FieldMeta {
	out := make([]FieldMeta, len(catalog))
	copy(out, catalog)
	return out
}

// SchemaFields returns the record attributes (everything except the index pseudo-field)
func SchemaFields() []FieldMeta {
	out := make([]FieldMeta, 0, len(catalog))
	for _, meta := range catalog {
		if !meta.Synthetic {
			out = append(out, meta)
		}
	}
	return out
}

// Lookup returns catalog metadata for a key
func Lookup(key FieldKey) (FieldMeta, bool) {
	meta, ok := catalogByKey[key]
	return meta, ok
}

// ParseFieldKey resolves a key or a source header (case-insensitive) to a FieldKey.
// An empty string resolves to Unselected.
func ParseFieldKey(s string) (FieldKey, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Unselected, nil
	}
	if _, ok := catalogByKey[FieldKey(trimmed)]; ok {
		return FieldKey(trimmed), nil
	}
	normalized := normalizeHeader(trimmed)
	for _, meta := range catalog {
		if normalizeHeader(meta.Header) == normalized || normalizeHeader(string(meta.Key)) == normalized {
			return meta.Key, nil
		}
	}
	return Unselected, core.NewSelectionError(core.ErrUnknownField, fmt.Sprintf("%q", s))
}

// IsKnown reports whether k is a catalog member
func (k FieldKey) IsKnown() bool {
	_, ok := catalogByKey[k]
	return ok
}

// IsSynthetic reports whether k is the index pseudo-field
func (k FieldKey) IsSynthetic() bool {
	return k == FieldIndex
}

// DisplayName returns the catalog label, or the raw key for unknown values
func (k FieldKey) DisplayName() string {
	if meta, ok := catalogByKey[k]; ok {
		return meta.DisplayName
	}
	return string(k)
}

func (k FieldKey) String() string { return string(k) }

// normalizeHeader folds "Last Semester Score", "last_semester_score" and
// "last-semester-score" onto the same form
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "_", " ")
	h = strings.ReplaceAll(h, "-", " ")
	return strings.Join(strings.Fields(h), " ")
}
