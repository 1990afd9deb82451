package ports

import (
	"quantix/domain/dataset"
	"quantix/domain/selection"
	"quantix/domain/stats"
)

// ReaderPort provides read-only access to session state for presentation
// collaborators. It cannot change selections or the dataset.
type ReaderPort interface {
	Fields() []dataset.FieldMeta
	DatasetInfo() dataset.Info
	Bundle() *stats.ResultBundle
	SectionState(kind selection.SectionKind) (selection.State, error)
}

// SelectionPort mutates a session's selections. Every call leaves the
// session holding a bundle derived from the new state.
type SelectionPort interface {
	AddSlot(kind selection.SectionKind, role selection.Role) error
	RemoveSlot(kind selection.SectionKind, role selection.Role, index int) (bool, error)
	SetSlot(kind selection.SectionKind, role selection.Role, index int, key dataset.FieldKey) error
}
