package selection

import (
	"fmt"

	"quantix/domain/core"
	"quantix/domain/dataset"
)

// Role is the analytical purpose of an axis selection
type Role string

const (
	RoleX      Role = "x"      // exactly one slot; accepts the index pseudo-field
	RoleY      Role = "y"      // one or more slots
	RoleFields Role = "fields" // generic multi-field role
)

// ParseRole validates a role name
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleX, RoleY, RoleFields:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnknownRole, s)
}

// IsMulti reports whether the role may hold more than one slot
func (r Role) IsMulti() bool { return r != RoleX }

// Accepts reports whether key may be assigned to a slot of this role
func (r Role) Accepts(key dataset.FieldKey) bool {
	if key == dataset.Unselected {
		return true
	}
	if !key.IsKnown() {
		return false
	}
	return !key.IsSynthetic() || r == RoleX
}

// ActiveSlot is a slot holding a field, with its position
type ActiveSlot struct {
	Index int              `json:"index"`
	Field dataset.FieldKey `json:"field"`
}

// AxisSelection is an ordered list of slots for one role. Slot order maps to
// series / legend position; duplicate fields across slots are allowed.
// It always holds at least one slot.
type AxisSelection struct {
	role  Role
	slots []dataset.FieldKey
}

// Initialize returns a selection holding one unselected slot
func Initialize(role Role) *AxisSelection {
	return &AxisSelection{role: role, slots: []dataset.FieldKey{dataset.Unselected}}
}

// Role returns the selection's role
func (a *AxisSelection) Role() Role { return a.role }

// Len returns the slot count (always >= 1)
func (a *AxisSelection) Len() int { return len(a.slots) }

// Slots returns a copy of all slots, unselected ones included
func (a *AxisSelection) Slots() []dataset.FieldKey {
	out := make([]dataset.FieldKey, len(a.slots))
	copy(out, a.slots)
	return out
}

// Slot returns the value of slot i
func (a *AxisSelection) Slot(i int) (dataset.FieldKey, bool) {
	if i < 0 || i >= len(a.slots) {
		return dataset.Unselected, false
	}
	return a.slots[i], true
}

// Active returns the slots that hold a field, in slot order
func (a *AxisSelection) Active() []ActiveSlot {
	active := make([]ActiveSlot, 0, len(a.slots))
	for i, key := range a.slots {
		if key != dataset.Unselected {
			active = append(active, ActiveSlot{Index: i, Field: key})
		}
	}
	return active
}

// AddSlot appends an unselected slot. X roles hold exactly one slot.
func (a *AxisSelection) AddSlot() error {
	if !a.role.IsMulti() {
		return core.NewSelectionError(core.ErrRoleMismatch, fmt.Sprintf("role %s holds exactly one slot", a.role))
	}
	a.slots = append(a.slots, dataset.Unselected)
	return nil
}

// RemoveSlot removes slot i unless that would leave no slots. It reports
// whether a slot was removed; out-of-range indexes are a no-op.
func (a *AxisSelection) RemoveSlot(i int) bool {
	if len(a.slots) <= 1 || i < 0 || i >= len(a.slots) {
		return false
	}
	a.slots = append(a.slots[:i], a.slots[i+1:]...)
	return true
}

// SetSlot assigns key to slot i. Unknown keys, the index pseudo-field outside
// an X role and out-of-range indexes fail with ErrInvalidSelection.
func (a *AxisSelection) SetSlot(i int, key dataset.FieldKey) error {
	if i < 0 || i >= len(a.slots) {
		return core.NewSelectionError(core.ErrSlotOutOfRange, fmt.Sprintf("%d of %d", i, len(a.slots)))
	}
	if !key.IsKnown() && key != dataset.Unselected {
		return core.NewSelectionError(core.ErrUnknownField, fmt.Sprintf("%q", key))
	}
	if !a.role.Accepts(key) {
		return core.NewSelectionError(core.ErrRoleMismatch, fmt.Sprintf("%s in role %s", key, a.role))
	}
	a.slots[i] = key
	return nil
}
