package state

import (
	"context"
	"errors"
	"testing"

	"github.com/claude/push/internal/models"
)

func TestUpdateCurrentField(t *testing.T) {
	s, mem := loadedStore(t)
	ctx := context.Background()
	writes := mem.Writes()

	set, err := s.UpdateCurrentField(ctx, "e2", "s6", models.FieldReps, models.Float(9))
	if err != nil {
		t.Fatal(err)
	}
	if set.Reps.State != models.StateFilled || *set.Reps.Value != 9 {
		t.Errorf("reps = %+v, want filled 9", set.Reps)
	}
	if mem.Writes() != writes+1 {
		t.Errorf("writes = %d, want %d", mem.Writes(), writes+1)
	}

	set, err = s.UpdateCurrentField(ctx, "e2", "s6", models.FieldReps, nil)
	if err != nil {
		t.Fatal(err)
	}
	if set.Reps.State != models.StateEmpty || set.Reps.Value != nil {
		t.Errorf("cleared reps = %+v, want empty", set.Reps)
	}
}

func TestUpdateCurrentFieldErrors(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		exercise string
		set      string
		field    models.FieldName
		want     error
	}{
		{"unknown exercise", "e9", "s1", models.FieldWeight, ErrExerciseNotFound},
		{"unknown set", "e1", "s9", models.FieldWeight, ErrSetNotFound},
		{"set of another exercise", "e1", "s4", models.FieldWeight, ErrSetNotFound},
		{"unknown field", "e1", "s1", models.FieldName("tempo"), ErrUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.UpdateCurrentField(ctx, tt.exercise, tt.set, tt.field, models.Float(1))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConfirmCurrentField(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		ex    string
		set   string
		field models.FieldName
		want  models.FieldState
		err   error
	}{
		{"planned becomes plannedFilled", "e1", "s3", models.FieldWeight, models.StatePlannedFilled, nil},
		{"carried becomes filled", "e1", "s2", models.FieldReps, models.StateFilled, nil},
		{"filled stays filled", "e1", "s1", models.FieldWeight, models.StateFilled, nil},
		{"empty cannot be confirmed", "e2", "s6", models.FieldWeight, "", ErrNothingToConfirm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := s.ConfirmCurrentField(ctx, tt.ex, tt.set, tt.field)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if tt.err != nil {
				return
			}
			if got := set.Field(tt.field).State; got != tt.want {
				t.Errorf("state = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestEditWriteFailureKeepsMemory verifies a failed write is reported while
// the edit stays visible.
func TestEditWriteFailureKeepsMemory(t *testing.T) {
	s, mem := loadedStore(t)
	ctx := context.Background()
	mem.FailSets(errors.New("read-only"))

	if _, err := s.SetCompleted(ctx, "e1", "s2", true); err == nil {
		t.Fatal("expected write error")
	}
	cur, _ := s.Current()
	if !cur.Exercises[0].Sets[1].Completed {
		t.Error("edit should stay in memory")
	}
}

func TestAddSetSuggestsLastValues(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	set, err := s.AddSet(ctx, "e1")
	if err != nil {
		t.Fatal(err)
	}
	if set.ID == "" || set.Completed {
		t.Errorf("new set = %+v", set)
	}
	if set.Weight.State != models.StatePrevious || *set.Weight.Value != 120.5 {
		t.Errorf("weight = %+v, want previous 120.5", set.Weight)
	}
	if set.RIR.State != models.StateEmpty {
		t.Errorf("rir = %+v, want empty", set.RIR)
	}

	// Machine press's last set is empty, so is the suggestion.
	set, err = s.AddSet(ctx, "e2")
	if err != nil {
		t.Fatal(err)
	}
	if set.Weight.State != models.StateEmpty || set.Reps.State != models.StateEmpty {
		t.Errorf("suggestion from empty set = %+v", set)
	}

	other, _ := s.AddSet(ctx, "e2")
	if other.ID == set.ID {
		t.Error("set IDs should be unique")
	}
}

func TestRemoveSet(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := s.RemoveSet(ctx, "e1"); err != nil {
			t.Fatalf("remove %d: %v", i, err)
		}
	}
	if err := s.RemoveSet(ctx, "e1"); !errors.Is(err, ErrLastSet) {
		t.Errorf("err = %v, want ErrLastSet", err)
	}
	cur, _ := s.Current()
	if sets := cur.Exercises[0].Sets; len(sets) != 1 || sets[0].ID != "s1" {
		t.Errorf("sets = %+v, want only s1", sets)
	}
	if err := s.RemoveSet(ctx, "e9"); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("err = %v, want ErrExerciseNotFound", err)
	}
}

func TestUpdateNextField(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	set, err := s.UpdateNextField(ctx, "e2", "ns5", models.FieldWeight, models.Float(170))
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := set.Weight.Value(); !set.Weight.IsEdited() || v != 170 {
		t.Errorf("weight = %s, want edited 170", set.Weight)
	}

	set, err = s.UpdateNextField(ctx, "e2", "ns5", models.FieldWeight, nil)
	if err != nil {
		t.Fatal(err)
	}
	if set.Weight.IsSet() {
		t.Errorf("weight = %s, want absent", set.Weight)
	}

	if _, err := s.UpdateNextField(ctx, "e2", "ns5", models.FieldRIR, models.Float(1)); !errors.Is(err, ErrFieldNotPlannable) {
		t.Errorf("rir err = %v, want ErrFieldNotPlannable", err)
	}
	if _, err := s.UpdateNextField(ctx, "e2", "s5", models.FieldReps, models.Float(1)); !errors.Is(err, ErrSetNotFound) {
		t.Errorf("current set id err = %v, want ErrSetNotFound", err)
	}
}

func TestViews(t *testing.T) {
	s, _ := loadedStore(t)

	v, err := s.Views("e1")
	if err != nil {
		t.Fatal(err)
	}
	if v.Current.ID != "e1" || v.Previous == nil || v.Next == nil {
		t.Fatalf("views = %+v", v)
	}
	if *v.Previous.Sets[0].Weight != 117.5 {
		t.Errorf("previous weight = %v, want 117.5", *v.Previous.Sets[0].Weight)
	}

	// Views are copies.
	v.Current.Sets[0].Completed = false
	cur, _ := s.Current()
	if !cur.Exercises[0].Sets[0].Completed {
		t.Error("mutating a view changed the store")
	}

	if _, err := s.Views("e9"); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("err = %v, want ErrExerciseNotFound", err)
	}
}
