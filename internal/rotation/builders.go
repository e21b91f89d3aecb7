package rotation

import (
	"time"

	"github.com/claude/push/internal/models"
)

// BuildPrevious flattens the current session into its historical form.
// The session start becomes the completion time.
func BuildPrevious(cur models.CurrentWorkout) models.PreviousWorkout {
	prev := models.PreviousWorkout{
		ID:          cur.ID,
		MuscleGroup: cur.MuscleGroup,
		StartedAt:   copyTime(cur.StartedAt),
		CompletedAt: copyTime(cur.StartedAt),
		Exercises:   make([]models.Exercise[models.HistorySet], 0, len(cur.Exercises)),
	}
	for _, ex := range cur.Exercises {
		sets := make([]models.HistorySet, 0, len(ex.Sets))
		for _, s := range ex.Sets {
			sets = append(sets, models.HistorySet{
				ID:     s.ID,
				Weight: copyFloat(s.Weight.Value),
				Reps:   copyFloat(s.Reps.Value),
				RIR:    copyFloat(s.RIR.Value),
			})
		}
		prev.Exercises = append(prev.Exercises, models.Exercise[models.HistorySet]{
			ID:               ex.ID,
			Name:             ex.Name,
			RestTimerSeconds: ex.RestTimerSeconds,
			Sets:             sets,
		})
	}
	return prev
}

// BuildCurrent builds the new session. The exercise list of cur defines
// what exists; exercises are matched by ID and sets by position. RIR always
// starts empty and every set starts incomplete.
func BuildCurrent(cur models.CurrentWorkout, prev models.PreviousWorkout, next models.NextWorkout, now time.Time) models.CurrentWorkout {
	started := now
	out := models.CurrentWorkout{
		ID:          cur.ID,
		MuscleGroup: cur.MuscleGroup,
		StartedAt:   &started,
		Exercises:   make([]models.Exercise[models.Set], 0, len(cur.Exercises)),
	}
	for _, ex := range cur.Exercises {
		nextEx := next.FindExercise(ex.ID)
		prevEx := prev.FindExercise(ex.ID)

		sets := make([]models.Set, 0, len(ex.Sets))
		for i, s := range ex.Sets {
			var nextWeight, nextReps models.PlanField
			if ns := nextEx.SetAt(i); ns != nil {
				nextWeight, nextReps = ns.Weight, ns.Reps
			}
			var prevWeight, prevReps *float64
			if ps := prevEx.SetAt(i); ps != nil {
				prevWeight, prevReps = ps.Weight, ps.Reps
			}
			sets = append(sets, models.Set{
				ID:     s.ID,
				Weight: ResolveField(nextWeight, prevWeight),
				Reps:   ResolveField(nextReps, prevReps),
				RIR:    models.EmptyField(),
			})
		}
		out.Exercises = append(out.Exercises, models.Exercise[models.Set]{
			ID:               ex.ID,
			Name:             ex.Name,
			RestTimerSeconds: ex.RestTimerSeconds,
			Sets:             sets,
		})
	}
	return out
}

// BuildNext re-seeds the plan from the values of cur, as unedited
// pre-fills. Set IDs of the old plan are kept where a set exists at the
// same position.
func BuildNext(cur models.CurrentWorkout, next models.NextWorkout) models.NextWorkout {
	out := models.NextWorkout{
		ID:          next.ID,
		MuscleGroup: next.MuscleGroup,
		StartedAt:   copyTime(next.StartedAt),
		CompletedAt: copyTime(next.CompletedAt),
		Exercises:   make([]models.Exercise[models.PlanSet], 0, len(cur.Exercises)),
	}
	for _, ex := range cur.Exercises {
		nextEx := next.FindExercise(ex.ID)

		planned := models.Exercise[models.PlanSet]{
			ID:               ex.ID,
			Name:             ex.Name,
			RestTimerSeconds: ex.RestTimerSeconds,
			Sets:             make([]models.PlanSet, 0, len(ex.Sets)),
		}
		if nextEx != nil {
			planned.Name = nextEx.Name
			planned.RestTimerSeconds = nextEx.RestTimerSeconds
		}

		for i, s := range ex.Sets {
			id := s.ID
			if ns := nextEx.SetAt(i); ns != nil && ns.ID != "" {
				id = ns.ID
			}
			planned.Sets = append(planned.Sets, models.PlanSet{
				ID:     id,
				Weight: models.UneditedPtr(s.Weight.Value),
				Reps:   models.UneditedPtr(s.Reps.Value),
			})
		}
		out.Exercises = append(out.Exercises, planned)
	}
	return out
}

// Rotate computes the whole new triple from the old one before any slot is
// replaced. The new plan is seeded from the values just resolved into the
// new current session.
func Rotate(t models.Triple, now time.Time) models.Triple {
	current := BuildCurrent(t.Current, t.Previous, t.Next, now)
	return models.Triple{
		Previous: BuildPrevious(t.Current),
		Current:  current,
		Next:     BuildNext(current, t.Next),
	}
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return models.Float(*p)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
