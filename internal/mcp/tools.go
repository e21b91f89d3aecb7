package mcp

import (
	"context"

	"github.com/claude/push/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get one workout slot. 'previous' is the last finished session with raw values, 'current' is the session in progress with a state per field, 'next' is the plan."),
	mcp.WithString("slot", mcp.Required(), mcp.Description("Workout slot"), mcp.Enum("previous", "current", "next")),
)

var toolGetExerciseViews = mcp.NewTool("get_exercise_views",
	mcp.WithDescription("Get one exercise of the current workout together with its previous and planned counterparts."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID from the current workout")),
)

var toolPlanNextSet = mcp.NewTool("plan_next_set",
	mcp.WithDescription("Set a planned value for a set of the next workout. Planned values take precedence over history when the session rotates. Omit value to clear the plan."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise ID")),
	mcp.WithString("set_id", mcp.Required(), mcp.Description("Set ID in the next workout")),
	mcp.WithString("field", mcp.Required(), mcp.Description("Field to plan"), mcp.Enum("weight", "reps")),
	mcp.WithNumber("value", mcp.Description("Planned value (kg for weight)")),
)

var toolCheckRotation = mcp.NewTool("check_rotation",
	mcp.WithDescription("Run the session rotation check. If the last activity is older than the rotation threshold, current becomes previous, the new current is resolved field by field from the plan and the previous session, and a new plan is derived from it."),
)

// --- Tool handlers ---

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("slot")
	if err != nil {
		return mcp.NewToolResultError("slot parameter is required"), nil
	}
	slot, err := models.ParseSlot(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t, err := h.ds.Workouts(ctx)
	if err != nil {
		h.log.Error("mcp get_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	var v any
	switch slot {
	case models.SlotPrevious:
		v = t.Previous
	case models.SlotCurrent:
		v = t.Current
	case models.SlotNext:
		v = t.Next
	}

	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseViews(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	views, err := h.ds.ExerciseViews(ctx, id)
	if err != nil {
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(views)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) planNextSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	setID, err := req.RequireString("set_id")
	if err != nil {
		return mcp.NewToolResultError("set_id parameter is required"), nil
	}
	rawField, err := req.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError("field parameter is required"), nil
	}
	field, err := models.ParseFieldName(rawField)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var value *float64
	if v, ok := req.GetArguments()["value"]; ok && v != nil {
		f, err := req.RequireFloat("value")
		if err != nil {
			return mcp.NewToolResultError("value must be a number"), nil
		}
		value = &f
	}

	set, err := h.ds.PlanNextSet(ctx, exerciseID, setID, field, value)
	if err != nil {
		h.log.Warn("mcp plan_next_set", "error", err)
		return mcp.NewToolResultError("planning failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(set)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) checkRotation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := h.ds.CheckRotation(ctx)
	if err != nil {
		return mcp.NewToolResultError("rotation check failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
