package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PlanField is a value of the next planned session. It is either absent,
// a pre-fill carried over automatically, or a value the user edited.
//
// On the wire a pre-fill is a bare number and an edit is
// {"value": n, "edited": true}. An object may carry a null value; it is
// present but holds no number.
type PlanField struct {
	present bool
	value   *float64
	edited  bool
}

// Unedited returns a pre-filled plan value.
func Unedited(v float64) PlanField {
	return PlanField{present: true, value: &v}
}

// Edited returns a plan value the user explicitly chose.
func Edited(v float64) PlanField {
	return PlanField{present: true, value: &v, edited: true}
}

// UneditedPtr returns a pre-fill for v, or an absent field when v is nil.
func UneditedPtr(v *float64) PlanField {
	if v == nil {
		return PlanField{}
	}
	return Unedited(*v)
}

// Value returns the planned number and whether one is present.
func (p PlanField) Value() (float64, bool) {
	if p.value == nil {
		return 0, false
	}
	return *p.value, true
}

// Ptr returns a copy of the planned number, or nil.
func (p PlanField) Ptr() *float64 {
	return clonePtr(p.value)
}

// IsEdited reports whether the user set this field, possibly to null.
func (p PlanField) IsEdited() bool {
	return p.present && p.edited
}

// IsSet reports whether a number is present.
func (p PlanField) IsSet() bool {
	return p.value != nil
}

// IsAbsent reports whether the field carries nothing at all.
func (p PlanField) IsAbsent() bool {
	return !p.present
}

func (p PlanField) String() string {
	kind := "unedited"
	if p.edited {
		kind = "edited"
	}
	v, ok := p.Value()
	switch {
	case !p.present:
		return "absent"
	case !ok:
		return kind + "(null)"
	default:
		return fmt.Sprintf("%s(%g)", kind, v)
	}
}

type editedPlanField struct {
	Value  *float64 `json:"value"`
	Edited bool     `json:"edited,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (p PlanField) MarshalJSON() ([]byte, error) {
	if !p.present {
		return []byte("null"), nil
	}
	if p.edited || p.value == nil {
		return json.Marshal(editedPlanField{Value: p.value, Edited: p.edited})
	}
	return json.Marshal(*p.value)
}

// UnmarshalJSON implements json.Unmarshaler. Objects without the edited
// flag are read as pre-fills. An object keeps its presence even when its
// value is null.
func (p *PlanField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = PlanField{}
		return nil
	case len(data) > 0 && data[0] == '{':
		var obj editedPlanField
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("decoding plan field: %w", err)
		}
		*p = PlanField{present: true, value: obj.Value, edited: obj.Edited}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding plan field: %w", err)
	}
	*p = Unedited(v)
	return nil
}
