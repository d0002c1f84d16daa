// ABOUTME: MCP resource implementations for the workout log.
// ABOUTME: Provides gym://active, gym://history, and gym://programs resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/gym/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// gym://active - The workout in progress, if any
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "gym://active",
		Name:        "Active Workout",
		Description: "The workout in progress with all entries and sets",
		MIMEType:    "application/json",
	}, s.handleActiveResource)

	// gym://history - Recent workouts, most recent first
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "gym://history",
		Name:        "Workout History",
		Description: "Recent workouts ordered most recent first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	// gym://programs - The program and exercise catalog
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "gym://programs",
		Name:        "Program Catalog",
		Description: "All programs with their ordered exercises",
		MIMEType:    "application/json",
	}, s.handleProgramsResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleActiveResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result := map[string]any{"active": false}
	if id := s.app.Session.ActiveWorkoutID(); id != "" {
		if w, ok := s.app.Session.Workout(id); ok {
			result = map[string]any{
				"active":  true,
				"workout": w,
			}
		}
	}
	return jsonResource("gym://active", result)
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts := s.app.Session.Workouts()

	finished := make([]models.Workout, 0, len(workouts))
	for _, w := range workouts {
		if !w.Active() {
			finished = append(finished, w)
		}
	}

	return jsonResource("gym://history", map[string]any{
		"workouts": finished,
		"count":    len(finished),
	})
}

func (s *Server) handleProgramsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource("gym://programs", map[string]any{
		"programs":  s.app.Catalog.Programs(),
		"exercises": s.app.Catalog.Exercises(),
	})
}
