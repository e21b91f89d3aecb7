package mcp

import (
	"context"

	"github.com/claude/push/internal/models"
	"github.com/claude/push/internal/rotation"
	"github.com/claude/push/internal/state"
)

// DataSource abstracts the workout state for MCP tools. Both Local
// (in-process) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Workouts(ctx context.Context) (models.Triple, error)
	ExerciseViews(ctx context.Context, exerciseID string) (state.ExerciseViews, error)
	PlanNextSet(ctx context.Context, exerciseID, setID string, field models.FieldName, value *float64) (models.PlanSet, error)
	CheckRotation(ctx context.Context) (rotation.Outcome, error)
}

// Local serves MCP tools from the state store of the running process.
type Local struct {
	state   *state.Store
	rotator *rotation.Rotator
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal creates a Local data source.
func NewLocal(st *state.Store, rotator *rotation.Rotator) *Local {
	return &Local{state: st, rotator: rotator}
}

func (l *Local) Workouts(_ context.Context) (models.Triple, error) {
	return l.state.Triple()
}

func (l *Local) ExerciseViews(_ context.Context, exerciseID string) (state.ExerciseViews, error) {
	return l.state.Views(exerciseID)
}

func (l *Local) PlanNextSet(ctx context.Context, exerciseID, setID string, field models.FieldName, value *float64) (models.PlanSet, error) {
	return l.state.UpdateNextField(ctx, exerciseID, setID, field, value)
}

// CheckRotation re-arms the rotator and runs a check, as the app does
// when it comes to the foreground.
func (l *Local) CheckRotation(ctx context.Context) (rotation.Outcome, error) {
	l.rotator.Mount()
	return l.rotator.Check(ctx)
}
