package models

import (
	"encoding/json"
	"testing"
	"time"
)

func sampleCurrent() CurrentWorkout {
	started := time.Date(2025, 2, 1, 10, 30, 0, 0, time.UTC)
	return CurrentWorkout{
		ID:          "w1",
		MuscleGroup: "Pectoraux",
		StartedAt:   &started,
		Exercises: []Exercise[Set]{{
			ID:   "e1",
			Name: "Bench Press",
			Sets: []Set{{
				ID:     "s1",
				Weight: Field{Value: Float(120.5), State: StateFilled},
				Reps:   Field{Value: Float(5), State: StatePlannedFilled},
				RIR:    EmptyField(),
			}},
		}},
	}
}

// TestWorkoutCloneIsDeep verifies that mutating a clone leaves the original
// untouched, down to field values and timestamps.
func TestWorkoutCloneIsDeep(t *testing.T) {
	orig := sampleCurrent()
	c := orig.Clone()

	*c.Exercises[0].Sets[0].Weight.Value = 999
	c.Exercises[0].Sets[0].Reps.State = StateEmpty
	c.Exercises[0].Sets = append(c.Exercises[0].Sets, Set{ID: "s2"})
	*c.StartedAt = c.StartedAt.Add(time.Hour)

	set := orig.Exercises[0].Sets[0]
	if *set.Weight.Value != 120.5 || set.Reps.State != StatePlannedFilled {
		t.Errorf("original set changed: %+v", set)
	}
	if len(orig.Exercises[0].Sets) != 1 {
		t.Errorf("original sets = %d, want 1", len(orig.Exercises[0].Sets))
	}
	if orig.StartedAt.Hour() != 10 {
		t.Errorf("original start changed: %v", orig.StartedAt)
	}
}

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name   string
		weight FieldState
		reps   FieldState
		want   bool
	}{
		{"both filled", StateFilled, StateFilled, true},
		{"planned confirmed", StatePlannedFilled, StateFilled, true},
		{"reps carried", StateFilled, StatePrevious, false},
		{"weight planned", StatePlanned, StateFilled, false},
		{"empty", StateEmpty, StateEmpty, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Set{Weight: Field{State: tt.weight}, Reps: Field{State: tt.reps}}
			if got := s.IsComplete(); got != tt.want {
				t.Errorf("IsComplete = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFieldStateUnmarshal(t *testing.T) {
	var f Field
	if err := json.Unmarshal([]byte(`{"value":3,"state":"plannedFilled"}`), &f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.State != StatePlannedFilled || *f.Value != 3 {
		t.Errorf("field = %+v", f)
	}
	if err := json.Unmarshal([]byte(`{"value":3,"state":"done"}`), &f); err == nil {
		t.Error("expected error for unknown state")
	}
}

func TestSetAtBounds(t *testing.T) {
	var missing *Exercise[PlanSet]
	if missing.SetAt(0) != nil {
		t.Error("SetAt on nil exercise should be nil")
	}
	ex := &Exercise[PlanSet]{Sets: []PlanSet{{ID: "ns1"}}}
	if ex.SetAt(0) == nil || ex.SetAt(1) != nil || ex.SetAt(-1) != nil {
		t.Error("SetAt bounds not respected")
	}
}

func TestParseNames(t *testing.T) {
	if _, err := ParseFieldName("rir"); err != nil {
		t.Errorf("rir: %v", err)
	}
	if _, err := ParseFieldName("tempo"); err == nil {
		t.Error("expected error for tempo")
	}
	if _, err := ParseSlot("next"); err != nil {
		t.Errorf("next: %v", err)
	}
	if _, err := ParseSlot("archive"); err == nil {
		t.Error("expected error for archive")
	}
}

func TestDecode(t *testing.T) {
	data, err := json.Marshal(sampleCurrent())
	if err != nil {
		t.Fatal(err)
	}
	w, err := Decode[Set](data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.FindExercise("e1") == nil || w.FindExercise("e9") != nil {
		t.Errorf("decoded = %+v", w)
	}
	if _, err := Decode[Set]([]byte(`{"exercises":"nope"}`)); err == nil {
		t.Error("expected error for malformed workout")
	}
}
