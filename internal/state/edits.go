package state

import (
	"context"
	"fmt"

	"github.com/claude/push/internal/models"
	"github.com/google/uuid"
)

// mutateCurrent applies fn to a copy of the current workout and swaps it in
// when fn succeeds. The new value is written through to the store; a write
// failure is returned but the in-memory value is kept.
func (s *Store) mutateCurrent(ctx context.Context, fn func(*models.CurrentWorkout) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	w := s.slots.Current.Clone()
	if err := fn(&w); err != nil {
		return err
	}
	s.slots.Current = w
	return persist(ctx, s, KeyCurrent, w)
}

func (s *Store) mutateNext(ctx context.Context, fn func(*models.NextWorkout) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	w := s.slots.Next.Clone()
	if err := fn(&w); err != nil {
		return err
	}
	s.slots.Next = w
	return persist(ctx, s, KeyNext, w)
}

func currentSet(w *models.CurrentWorkout, exerciseID, setID string) (*models.Set, error) {
	ex := w.FindExercise(exerciseID)
	if ex == nil {
		return nil, fmt.Errorf("exercise %s: %w", exerciseID, ErrExerciseNotFound)
	}
	for i := range ex.Sets {
		if ex.Sets[i].ID == setID {
			return &ex.Sets[i], nil
		}
	}
	return nil, fmt.Errorf("set %s of exercise %s: %w", setID, exerciseID, ErrSetNotFound)
}

func nextSet(w *models.NextWorkout, exerciseID, setID string) (*models.PlanSet, error) {
	ex := w.FindExercise(exerciseID)
	if ex == nil {
		return nil, fmt.Errorf("planned exercise %s: %w", exerciseID, ErrExerciseNotFound)
	}
	for i := range ex.Sets {
		if ex.Sets[i].ID == setID {
			return &ex.Sets[i], nil
		}
	}
	return nil, fmt.Errorf("planned set %s of exercise %s: %w", setID, exerciseID, ErrSetNotFound)
}

// UpdateCurrentField records a value entered during the session. A nil
// value clears the field.
func (s *Store) UpdateCurrentField(ctx context.Context, exerciseID, setID string, name models.FieldName, value *float64) (models.Set, error) {
	var out models.Set
	err := s.mutateCurrent(ctx, func(w *models.CurrentWorkout) error {
		set, err := currentSet(w, exerciseID, setID)
		if err != nil {
			return err
		}
		f := set.Field(name)
		if f == nil {
			return fmt.Errorf("%q: %w", name, ErrUnknownField)
		}
		if value == nil {
			*f = models.EmptyField()
		} else {
			*f = models.Field{Value: models.Float(*value), State: models.StateFilled}
		}
		out = set.Clone()
		return nil
	})
	return out, err
}

// ConfirmCurrentField accepts a suggested value unchanged. A planned value
// becomes plannedFilled and a carried-over value becomes filled.
func (s *Store) ConfirmCurrentField(ctx context.Context, exerciseID, setID string, name models.FieldName) (models.Set, error) {
	var out models.Set
	err := s.mutateCurrent(ctx, func(w *models.CurrentWorkout) error {
		set, err := currentSet(w, exerciseID, setID)
		if err != nil {
			return err
		}
		f := set.Field(name)
		if f == nil {
			return fmt.Errorf("%q: %w", name, ErrUnknownField)
		}
		switch f.State {
		case models.StatePlanned:
			f.State = models.StatePlannedFilled
		case models.StatePrevious:
			f.State = models.StateFilled
		case models.StateEmpty:
			return fmt.Errorf("%s of set %s: %w", name, setID, ErrNothingToConfirm)
		}
		out = set.Clone()
		return nil
	})
	return out, err
}

// SetCompleted marks a set as done or not done.
func (s *Store) SetCompleted(ctx context.Context, exerciseID, setID string, completed bool) (models.Set, error) {
	var out models.Set
	err := s.mutateCurrent(ctx, func(w *models.CurrentWorkout) error {
		set, err := currentSet(w, exerciseID, setID)
		if err != nil {
			return err
		}
		set.Completed = completed
		out = set.Clone()
		return nil
	})
	return out, err
}

// AddSet appends a set to an exercise of the current workout, suggesting
// the weight and reps of the last set.
func (s *Store) AddSet(ctx context.Context, exerciseID string) (models.Set, error) {
	var out models.Set
	err := s.mutateCurrent(ctx, func(w *models.CurrentWorkout) error {
		ex := w.FindExercise(exerciseID)
		if ex == nil {
			return fmt.Errorf("exercise %s: %w", exerciseID, ErrExerciseNotFound)
		}
		set := models.Set{
			ID:     uuid.NewString(),
			Weight: models.EmptyField(),
			Reps:   models.EmptyField(),
			RIR:    models.EmptyField(),
		}
		if last := ex.SetAt(len(ex.Sets) - 1); last != nil {
			set.Weight = suggest(last.Weight)
			set.Reps = suggest(last.Reps)
		}
		ex.Sets = append(ex.Sets, set)
		out = set.Clone()
		return nil
	})
	return out, err
}

func suggest(f models.Field) models.Field {
	if f.Value == nil {
		return models.EmptyField()
	}
	return models.Field{Value: models.Float(*f.Value), State: models.StatePrevious}
}

// RemoveSet drops the last set of an exercise of the current workout.
func (s *Store) RemoveSet(ctx context.Context, exerciseID string) error {
	return s.mutateCurrent(ctx, func(w *models.CurrentWorkout) error {
		ex := w.FindExercise(exerciseID)
		if ex == nil {
			return fmt.Errorf("exercise %s: %w", exerciseID, ErrExerciseNotFound)
		}
		if len(ex.Sets) <= 1 {
			return fmt.Errorf("exercise %s: %w", exerciseID, ErrLastSet)
		}
		ex.Sets = ex.Sets[:len(ex.Sets)-1]
		return nil
	})
}

// UpdateNextField stores a user-chosen plan value. A nil value clears the
// plan so the next session falls back to history.
func (s *Store) UpdateNextField(ctx context.Context, exerciseID, setID string, name models.FieldName, value *float64) (models.PlanSet, error) {
	var out models.PlanSet
	err := s.mutateNext(ctx, func(w *models.NextWorkout) error {
		set, err := nextSet(w, exerciseID, setID)
		if err != nil {
			return err
		}
		if name == models.FieldRIR {
			return fmt.Errorf("%s: %w", name, ErrFieldNotPlannable)
		}
		f := set.Field(name)
		if f == nil {
			return fmt.Errorf("%q: %w", name, ErrUnknownField)
		}
		if value == nil {
			*f = models.PlanField{}
		} else {
			*f = models.Edited(*value)
		}
		out = set.Clone()
		return nil
	})
	return out, err
}

// ExerciseViews is one exercise as seen in each of the three slots.
type ExerciseViews struct {
	Previous *models.Exercise[models.HistorySet] `json:"previous"`
	Current  models.Exercise[models.Set]         `json:"current"`
	Next     *models.Exercise[models.PlanSet]    `json:"next"`
}

// Views returns the previous, current and next rendition of an exercise
// of the current workout. Missing counterparts are nil.
func (s *Store) Views(exerciseID string) (ExerciseViews, error) {
	t, err := s.Triple()
	if err != nil {
		return ExerciseViews{}, err
	}
	cur := t.Current.FindExercise(exerciseID)
	if cur == nil {
		return ExerciseViews{}, fmt.Errorf("exercise %s: %w", exerciseID, ErrExerciseNotFound)
	}
	return ExerciseViews{
		Previous: t.Previous.FindExercise(exerciseID),
		Current:  *cur,
		Next:     t.Next.FindExercise(exerciseID),
	}, nil
}
