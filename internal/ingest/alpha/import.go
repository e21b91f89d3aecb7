package alpha

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/claude/push/internal/models"
)

// ErrNoSessions is returned for an export without any session.
var ErrNoSessions = errors.New("export contains no sessions")

// Target receives the imported workout.
type Target interface {
	Current() (models.CurrentWorkout, error)
	ReplacePrevious(ctx context.Context, w models.PreviousWorkout) error
}

// Result summarises an import.
type Result struct {
	SessionName       string    `json:"session_name"`
	SessionDate       time.Time `json:"session_date"`
	ExercisesImported int       `json:"exercises_imported"`
	ExercisesMatched  int       `json:"exercises_matched"`
	SetsImported      int       `json:"sets_imported"`
}

// Importer replaces the previous workout with the latest session of an export.
type Importer struct {
	target Target
	log    *slog.Logger
}

// NewImporter creates an Importer.
func NewImporter(target Target, log *slog.Logger) *Importer {
	return &Importer{target: target, log: log}
}

// Import parses r and stores its most recent session as the previous workout.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	latest, ok := Latest(sessions)
	if !ok {
		return nil, ErrNoSessions
	}

	current, err := i.target.Current()
	if err != nil {
		return nil, err
	}

	prev, matched := ToPrevious(latest, current)
	if err := i.target.ReplacePrevious(ctx, prev); err != nil {
		return nil, fmt.Errorf("storing previous workout: %w", err)
	}

	result := &Result{
		SessionName:       latest.Name,
		SessionDate:       latest.Date,
		ExercisesImported: len(prev.Exercises),
		ExercisesMatched:  matched,
	}
	for _, ex := range prev.Exercises {
		result.SetsImported += len(ex.Sets)
	}
	i.log.Info("alpha session imported",
		"session", latest.Name,
		"exercises", result.ExercisesImported,
		"matched", matched,
	)
	return result, nil
}

// ToPrevious converts a session into the previous-workout form. Exercises
// whose name matches one of the current workout take its ID so rotation
// can join them; the others get a stable "alpha-<n>" ID. It returns the
// converted workout and the number of matched exercises.
func ToPrevious(s Session, current models.CurrentWorkout) (models.PreviousWorkout, int) {
	byName := make(map[string]string, len(current.Exercises))
	for _, ex := range current.Exercises {
		byName[normalize(ex.Name)] = ex.ID
	}

	completed := s.Date
	prev := models.PreviousWorkout{
		ID:          "alpha-" + s.Date.Format("20060102T1504"),
		MuscleGroup: current.MuscleGroup,
		CompletedAt: &completed,
	}

	matched := 0
	for _, ex := range s.Exercises {
		id, ok := byName[normalize(ex.Name)]
		if ok {
			matched++
		} else {
			id = fmt.Sprintf("alpha-%d", ex.Number)
		}

		sets := make([]models.HistorySet, 0, len(ex.Sets))
		for _, set := range ex.Sets {
			sets = append(sets, models.HistorySet{
				ID:     fmt.Sprintf("%s-s%d", id, set.Number),
				Weight: models.Float(set.WeightKg),
				Reps:   models.Float(float64(set.Reps)),
				RIR:    models.Float(set.RIR),
			})
		}
		prev.Exercises = append(prev.Exercises, models.Exercise[models.HistorySet]{
			ID:   id,
			Name: ex.Name,
			Sets: sets,
		})
	}
	return prev, matched
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
