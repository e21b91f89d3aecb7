// Package rotation rolls the previous/current/next workout triple over
// when a new training session begins.
package rotation

import "github.com/claude/push/internal/models"

// ResolveField picks the starting value of one field of the new session.
// Precedence: user-edited plan > pre-filled plan > last session > empty.
// A present plan wins even when its value is null.
func ResolveField(next models.PlanField, prev *float64) models.Field {
	switch {
	case next.IsEdited():
		return models.Field{Value: next.Ptr(), State: models.StatePlanned}
	case !next.IsAbsent():
		return models.Field{Value: next.Ptr(), State: models.StatePrevious}
	}
	if prev != nil {
		return models.Field{Value: models.Float(*prev), State: models.StatePrevious}
	}
	return models.EmptyField()
}
