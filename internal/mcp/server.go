// Package mcp exposes the workout slots as MCP tools and resources.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Push", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Push workout session server. Read the previous, current and next workouts, inspect an exercise across the three sessions, plan the next session and trigger the session rotation check."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetExerciseViews, Handler: h.getExerciseViews},
		server.ServerTool{Tool: toolPlanNextSet, Handler: h.planNextSet},
		server.ServerTool{Tool: toolCheckRotation, Handler: h.checkRotation},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resWorkouts, Handler: h.workouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resWorkouts = mcp.NewResource(
	"push://workouts",
	"Workouts",
	mcp.WithResourceDescription("The previous, current and next workouts"),
	mcp.WithMIMEType("application/json"),
)
