package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// FieldState drives both how a value is displayed and how it is carried
// over when a session rotates.
type FieldState string

const (
	StateEmpty         FieldState = "empty"
	StatePrevious      FieldState = "previous"
	StatePlanned       FieldState = "planned"
	StatePlannedFilled FieldState = "plannedFilled"
	StateFilled        FieldState = "filled"
)

// Valid reports whether s is one of the known states.
func (s FieldState) Valid() bool {
	switch s {
	case StateEmpty, StatePrevious, StatePlanned, StatePlannedFilled, StateFilled:
		return true
	}
	return false
}

// UnmarshalText rejects unknown states.
func (s *FieldState) UnmarshalText(b []byte) error {
	v := FieldState(b)
	if !v.Valid() {
		return fmt.Errorf("unknown field state %q", string(b))
	}
	*s = v
	return nil
}

// FieldName identifies one of the three values of a set.
type FieldName string

const (
	FieldWeight FieldName = "weight"
	FieldReps   FieldName = "reps"
	FieldRIR    FieldName = "rir"
)

// ParseFieldName validates a field name coming from a request.
func ParseFieldName(s string) (FieldName, error) {
	switch f := FieldName(s); f {
	case FieldWeight, FieldReps, FieldRIR:
		return f, nil
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// Field is a value of the current session together with its state.
type Field struct {
	Value *float64   `json:"value"`
	State FieldState `json:"state"`
}

// EmptyField returns a field with no data.
func EmptyField() Field {
	return Field{State: StateEmpty}
}

func (f Field) clone() Field {
	return Field{Value: clonePtr(f.Value), State: f.State}
}

// SetKind is implemented by the set representations stored in each slot.
type SetKind[S any] interface {
	Clone() S
}

// Set is a set of the current session. Every field is resolved independently.
type Set struct {
	ID        string `json:"id"`
	Weight    Field  `json:"weight"`
	Reps      Field  `json:"reps"`
	RIR       Field  `json:"rir"`
	Completed bool   `json:"completed"`
}

// Clone returns a deep copy.
func (s Set) Clone() Set {
	return Set{
		ID:        s.ID,
		Weight:    s.Weight.clone(),
		Reps:      s.Reps.clone(),
		RIR:       s.RIR.clone(),
		Completed: s.Completed,
	}
}

// Field returns a pointer to the named field.
func (s *Set) Field(name FieldName) *Field {
	switch name {
	case FieldWeight:
		return &s.Weight
	case FieldReps:
		return &s.Reps
	case FieldRIR:
		return &s.RIR
	}
	return nil
}

// IsComplete reports whether weight and reps were both confirmed this session.
func (s Set) IsComplete() bool {
	return confirmed(s.Weight.State) && confirmed(s.Reps.State)
}

func confirmed(st FieldState) bool {
	return st == StateFilled || st == StatePlannedFilled
}

// HistorySet is a set of a completed session, reduced to raw numbers.
type HistorySet struct {
	ID     string   `json:"id"`
	Weight *float64 `json:"weight"`
	Reps   *float64 `json:"reps"`
	RIR    *float64 `json:"rir"`
}

// Clone returns a deep copy.
func (s HistorySet) Clone() HistorySet {
	return HistorySet{
		ID:     s.ID,
		Weight: clonePtr(s.Weight),
		Reps:   clonePtr(s.Reps),
		RIR:    clonePtr(s.RIR),
	}
}

// PlanSet is a set of the next planned session. RIR is never planned.
type PlanSet struct {
	ID     string    `json:"id"`
	Weight PlanField `json:"weight"`
	Reps   PlanField `json:"reps"`
}

// Clone returns a deep copy. PlanField is immutable so a plain copy suffices.
func (s PlanSet) Clone() PlanSet {
	return s
}

// Field returns a pointer to the named plan field, or nil for rir.
func (s *PlanSet) Field(name FieldName) *PlanField {
	switch name {
	case FieldWeight:
		return &s.Weight
	case FieldReps:
		return &s.Reps
	}
	return nil
}

// Exercise is one movement within a workout. Its ID is the join key
// between the previous, current and next slots.
type Exercise[S SetKind[S]] struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	RestTimerSeconds int    `json:"restTimerSeconds,omitempty"`
	Sets             []S    `json:"sets"`
}

// Clone returns a deep copy.
func (e Exercise[S]) Clone() Exercise[S] {
	out := e
	out.Sets = make([]S, len(e.Sets))
	for i, s := range e.Sets {
		out.Sets[i] = s.Clone()
	}
	return out
}

// SetAt returns the set at position i, or nil when out of range.
func (e *Exercise[S]) SetAt(i int) *S {
	if e == nil || i < 0 || i >= len(e.Sets) {
		return nil
	}
	return &e.Sets[i]
}

// Workout is one training session.
type Workout[S SetKind[S]] struct {
	ID          string        `json:"id"`
	MuscleGroup string        `json:"muscleGroup"`
	StartedAt   *time.Time    `json:"startedAt,omitempty"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	Exercises   []Exercise[S] `json:"exercises"`
}

// Clone returns a deep copy.
func (w Workout[S]) Clone() Workout[S] {
	out := w
	out.StartedAt = clonePtr(w.StartedAt)
	out.CompletedAt = clonePtr(w.CompletedAt)
	out.Exercises = make([]Exercise[S], len(w.Exercises))
	for i, e := range w.Exercises {
		out.Exercises[i] = e.Clone()
	}
	return out
}

// FindExercise returns the exercise with the given ID, or nil.
func (w *Workout[S]) FindExercise(id string) *Exercise[S] {
	for i := range w.Exercises {
		if w.Exercises[i].ID == id {
			return &w.Exercises[i]
		}
	}
	return nil
}

type (
	CurrentWorkout  = Workout[Set]
	PreviousWorkout = Workout[HistorySet]
	NextWorkout     = Workout[PlanSet]
)

// Triple is the full persisted state: the last session, the running one and the plan.
type Triple struct {
	Previous PreviousWorkout `json:"previous"`
	Current  CurrentWorkout  `json:"current"`
	Next     NextWorkout     `json:"next"`
}

// Clone returns a deep copy.
func (t Triple) Clone() Triple {
	return Triple{
		Previous: t.Previous.Clone(),
		Current:  t.Current.Clone(),
		Next:     t.Next.Clone(),
	}
}

// Slot names one of the three persisted workouts.
type Slot string

const (
	SlotPrevious Slot = "previous"
	SlotCurrent  Slot = "current"
	SlotNext     Slot = "next"
)

// ParseSlot validates a slot name.
func ParseSlot(s string) (Slot, error) {
	switch v := Slot(s); v {
	case SlotPrevious, SlotCurrent, SlotNext:
		return v, nil
	}
	return "", fmt.Errorf("unknown slot %q", s)
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Decode parses a serialized workout of any slot.
func Decode[S SetKind[S]](data []byte) (Workout[S], error) {
	var w Workout[S]
	if err := json.Unmarshal(data, &w); err != nil {
		return Workout[S]{}, err
	}
	return w, nil
}
