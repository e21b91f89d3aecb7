package state

import (
	"time"

	"github.com/claude/push/internal/models"
)

// Built-in dataset used when nothing usable is stored yet.

func filled(v float64) models.Field {
	return models.Field{Value: models.Float(v), State: models.StateFilled}
}

func carried(v float64) models.Field {
	return models.Field{Value: models.Float(v), State: models.StatePrevious}
}

func planned(v float64) models.Field {
	return models.Field{Value: models.Float(v), State: models.StatePlanned}
}

func at(s string) *time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// DefaultCurrent returns the built-in current session.
func DefaultCurrent() models.CurrentWorkout {
	return models.CurrentWorkout{
		ID:          "w1",
		MuscleGroup: "Pectoraux",
		StartedAt:   at("2025-02-01T10:30:00"),
		Exercises: []models.Exercise[models.Set]{
			{
				ID:               "e1",
				Name:             "Bench Press",
				RestTimerSeconds: 90,
				Sets: []models.Set{
					{ID: "s1", Weight: filled(120.5), Reps: filled(5), RIR: filled(2), Completed: true},
					{ID: "s2", Weight: carried(120.5), Reps: carried(3), RIR: carried(1)},
					{ID: "s3", Weight: planned(120.5), Reps: planned(1), RIR: planned(0)},
				},
			},
			{
				ID:               "e2",
				Name:             "Machine Press",
				RestTimerSeconds: 90,
				Sets: []models.Set{
					{ID: "s4", Weight: filled(161.5), Reps: filled(11), RIR: models.EmptyField(), Completed: true},
					{ID: "s5", Weight: carried(161.5), Reps: carried(12), RIR: models.EmptyField()},
					{ID: "s6", Weight: models.EmptyField(), Reps: models.EmptyField(), RIR: models.EmptyField()},
				},
			},
		},
	}
}

// DefaultPrevious returns the built-in last completed session.
func DefaultPrevious() models.PreviousWorkout {
	hist := func(id string, weight, reps float64, rir *float64) models.HistorySet {
		return models.HistorySet{ID: id, Weight: models.Float(weight), Reps: models.Float(reps), RIR: rir}
	}
	return models.PreviousWorkout{
		ID:          "w0",
		MuscleGroup: "Pectoraux",
		CompletedAt: at("2025-01-28T11:15:00"),
		Exercises: []models.Exercise[models.HistorySet]{
			{
				ID:   "e1",
				Name: "Bench Press",
				Sets: []models.HistorySet{
					hist("ps1", 117.5, 5, models.Float(2)),
					hist("ps2", 117.5, 4, models.Float(1)),
					hist("ps3", 117.5, 3, models.Float(0)),
				},
			},
			{
				ID:   "e2",
				Name: "Machine Press",
				Sets: []models.HistorySet{
					hist("ps4", 155, 12, nil),
					hist("ps5", 155, 11, nil),
					hist("ps6", 155, 10, nil),
				},
			},
		},
	}
}

// DefaultNext returns the built-in plan.
func DefaultNext() models.NextWorkout {
	plan := func(id string, weight, reps float64) models.PlanSet {
		return models.PlanSet{ID: id, Weight: models.Unedited(weight), Reps: models.Unedited(reps)}
	}
	return models.NextWorkout{
		ID:          "w2",
		MuscleGroup: "Pectoraux",
		Exercises: []models.Exercise[models.PlanSet]{
			{
				ID:   "e1",
				Name: "Bench Press",
				Sets: []models.PlanSet{
					plan("ns1", 122.5, 5),
					plan("ns2", 122.5, 4),
					plan("ns3", 122.5, 3),
				},
			},
			{
				ID:   "e2",
				Name: "Machine Press",
				Sets: []models.PlanSet{
					plan("ns4", 165, 12),
					plan("ns5", 165, 12),
					plan("ns6", 165, 12),
				},
			},
		},
	}
}

// DefaultTriple returns the complete built-in dataset.
func DefaultTriple() models.Triple {
	return models.Triple{
		Previous: DefaultPrevious(),
		Current:  DefaultCurrent(),
		Next:     DefaultNext(),
	}
}
