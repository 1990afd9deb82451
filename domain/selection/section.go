package selection

import (
	"fmt"

	"quantix/domain/core"
	"quantix/domain/dataset"
)

// SectionKind names an analytical section. Each section owns its own,
// independent axis selections.
type SectionKind string

const (
	SectionDistribution SectionKind = "distribution"
	SectionGraph        SectionKind = "graph"
	SectionSummary      SectionKind = "summary"
	SectionCorrelation  SectionKind = "correlation"
)

// layouts lists each section's roles in presentation order
var layouts = map[SectionKind][]Role{
	SectionDistribution: {RoleFields},
	SectionGraph:        {RoleX, RoleY},
	SectionSummary:      {RoleFields},
	SectionCorrelation:  {RoleX, RoleY},
}

// SectionKinds returns all section kinds in presentation order
func SectionKinds() []SectionKind {
	return []SectionKind{SectionDistribution, SectionGraph, SectionSummary, SectionCorrelation}
}

// ParseSectionKind validates a section name
func ParseSectionKind(s string) (SectionKind, error) {
	kind := SectionKind(s)
	if _, ok := layouts[kind]; !ok {
		return "", fmt.Errorf("%w: %q", core.ErrUnknownSection, s)
	}
	return kind, nil
}

// Section holds the axis selections of one section instance
type Section struct {
	kind  SectionKind
	roles []Role
	axes  map[Role]*AxisSelection
}

// NewSection creates a section with one unselected slot per role
func NewSection(kind SectionKind) (*Section, error) {
	roles, ok := layouts[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSection, kind)
	}
	s := &Section{kind: kind, roles: roles, axes: make(map[Role]*AxisSelection, len(roles))}
	for _, role := range roles {
		s.axes[role] = Initialize(role)
	}
	return s, nil
}

// Kind returns the section kind
func (s *Section) Kind() SectionKind { return s.kind }

// Roles returns the section's roles in presentation order
func (s *Section) Roles() []Role {
	out := make([]Role, len(s.roles))
	copy(out, s.roles)
	return out
}

// Axis returns the selection for role
func (s *Section) Axis(role Role) (*AxisSelection, error) {
	axis, ok := s.axes[role]
	if !ok {
		return nil, fmt.Errorf("%w: section %s has no role %q", core.ErrUnknownRole, s.kind, role)
	}
	return axis, nil
}

// HasPairs reports whether the section correlates an X role against a Y role
func (s *Section) HasPairs() bool {
	_, hasX := s.axes[RoleX]
	_, hasY := s.axes[RoleY]
	return hasX && hasY
}

// Snapshot captures the current slots of every role
func (s *Section) Snapshot() State {
	state := State{Kind: s.kind, Roles: make([]RoleState, 0, len(s.roles))}
	for _, role := range s.roles {
		state.Roles = append(state.Roles, RoleState{Role: role, Slots: s.axes[role].Slots()})
	}
	return state
}

// State is an immutable view of a section's selections
type State struct {
	Kind  SectionKind `json:"section"`
	Roles []RoleState `json:"roles"`
}

// RoleState lists the slots of one role
type RoleState struct {
	Role  Role               `json:"role"`
	Slots []dataset.FieldKey `json:"slots"`
}

// Slots returns the slots recorded for role
func (st State) Slots(role Role) []dataset.FieldKey {
	for _, rs := range st.Roles {
		if rs.Role == role {
			return rs.Slots
		}
	}
	return nil
}
