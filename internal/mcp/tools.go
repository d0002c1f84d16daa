// ABOUTME: MCP tool implementations for the workout log.
// ABOUTME: Start/finish workouts, log sets, and browse programs and history.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_workout",
		Description: "Start a workout from a program (by name or ID prefix)",
	}, s.handleStartWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "finish_workout",
		Description: "Finish the active workout",
	}, s.handleFinishWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_set",
		Description: "Add a set for an exercise in the active workout",
	}, s.handleAddSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_set",
		Description: "Update weight, reps, or completion of a set in the active workout",
	}, s.handleUpdateSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_set",
		Description: "Delete a set from the active workout",
	}, s.handleDeleteSet)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_programs",
		Description: "List workout programs and their exercises",
	}, s.handleListPrograms)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_history",
		Description: "List recent workouts, most recent first",
	}, s.handleListHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout with all entries and sets by ID prefix",
	}, s.handleGetWorkout)
}

// Tool input/output types

type startWorkoutInput struct {
	Program string `json:"program" jsonschema:"Program name or ID prefix"`
}

type workoutOutput struct {
	ID      string `json:"id"`
	Program string `json:"program"`
	Message string `json:"message"`
}

type addSetInput struct {
	Exercise string `json:"exercise" jsonschema:"Exercise name or ID prefix"`
}

type setOutput struct {
	SetID   string `json:"set_id"`
	Message string `json:"message"`
}

type updateSetInput struct {
	Exercise  string   `json:"exercise" jsonschema:"Exercise name or ID prefix"`
	SetID     string   `json:"set_id" jsonschema:"Set ID or prefix"`
	WeightKg  *float64 `json:"weight_kg,omitempty" jsonschema:"Total weight in kg"`
	Reps      *int     `json:"reps,omitempty" jsonschema:"Rep count"`
	Completed *bool    `json:"completed,omitempty" jsonschema:"Mark the set done or not done"`
}

type deleteSetInput struct {
	Exercise string `json:"exercise" jsonschema:"Exercise name or ID prefix"`
	SetID    string `json:"set_id" jsonschema:"Set ID or prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type listHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type getWorkoutInput struct {
	ID string `json:"id" jsonschema:"Workout ID or prefix"`
}

// shortID abbreviates an id for display. Imported ids are opaque and may be
// shorter than the uuids we generate.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Lookup helpers. Names match case-insensitively; IDs match by prefix.

func (s *Server) findProgram(ref string) (models.Program, error) {
	for _, p := range s.app.Catalog.Programs() {
		if strings.EqualFold(p.Name, ref) || strings.HasPrefix(p.ID, ref) {
			return p, nil
		}
	}
	return models.Program{}, fmt.Errorf("program not found: %s", ref)
}

func (s *Server) findExercise(ref string) (models.Exercise, error) {
	for _, e := range s.app.Catalog.Exercises() {
		if strings.EqualFold(e.Name, ref) || strings.HasPrefix(e.ID, ref) {
			return e, nil
		}
	}
	return models.Exercise{}, fmt.Errorf("exercise not found: %s", ref)
}

func (s *Server) activeWorkout() (models.Workout, error) {
	id := s.app.Session.ActiveWorkoutID()
	if id == "" {
		return models.Workout{}, fmt.Errorf("no active workout")
	}
	w, ok := s.app.Session.Workout(id)
	if !ok {
		return models.Workout{}, fmt.Errorf("no active workout")
	}
	return w, nil
}

func findSetID(w models.Workout, exerciseID, prefix string) (string, error) {
	for _, entry := range w.Entries {
		if entry.ExerciseID != exerciseID {
			continue
		}
		for _, set := range entry.Sets {
			if strings.HasPrefix(set.ID, prefix) {
				return set.ID, nil
			}
		}
	}
	return "", fmt.Errorf("set not found: %s", prefix)
}

// Tool handlers

func (s *Server) handleStartWorkout(ctx context.Context, req *mcp.CallToolRequest, input startWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	program, err := s.findProgram(input.Program)
	if err != nil {
		return nil, workoutOutput{}, err
	}

	id := s.app.Session.StartWorkout(program.ID)
	if id == "" {
		return nil, workoutOutput{}, fmt.Errorf("failed to start workout for program: %s", program.Name)
	}

	return nil, workoutOutput{
		ID:      shortID(id),
		Program: program.Name,
		Message: fmt.Sprintf("Started %s workout (ID: %s)", program.Name, shortID(id)),
	}, nil
}

func (s *Server) handleFinishWorkout(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, simpleOutput, error) {
	id, ok := s.app.FinishActiveWorkout()
	if !ok {
		return nil, simpleOutput{}, fmt.Errorf("no active workout")
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Finished workout: %s", shortID(id)),
	}, nil
}

func (s *Server) handleAddSet(ctx context.Context, req *mcp.CallToolRequest, input addSetInput) (*mcp.CallToolResult, setOutput, error) {
	w, err := s.activeWorkout()
	if err != nil {
		return nil, setOutput{}, err
	}
	exercise, err := s.findExercise(input.Exercise)
	if err != nil {
		return nil, setOutput{}, err
	}

	setID, ok := s.app.Session.AddSet(w.ID, exercise.ID)
	if !ok {
		return nil, setOutput{}, fmt.Errorf("exercise %s is not part of the active workout", exercise.Name)
	}

	return nil, setOutput{
		SetID:   shortID(setID),
		Message: fmt.Sprintf("Added set for %s (ID: %s)", exercise.Name, shortID(setID)),
	}, nil
}

func (s *Server) handleUpdateSet(ctx context.Context, req *mcp.CallToolRequest, input updateSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	w, err := s.activeWorkout()
	if err != nil {
		return nil, simpleOutput{}, err
	}
	exercise, err := s.findExercise(input.Exercise)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	setID, err := findSetID(w, exercise.ID, input.SetID)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	patch := session.SetPatch{
		WeightKg:  input.WeightKg,
		Reps:      input.Reps,
		Completed: input.Completed,
	}
	if !s.app.Session.UpdateSet(w.ID, exercise.ID, setID, patch) {
		return nil, simpleOutput{}, fmt.Errorf("failed to update set: %s", input.SetID)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Updated set %s for %s", shortID(setID), exercise.Name),
	}, nil
}

func (s *Server) handleDeleteSet(ctx context.Context, req *mcp.CallToolRequest, input deleteSetInput) (*mcp.CallToolResult, simpleOutput, error) {
	w, err := s.activeWorkout()
	if err != nil {
		return nil, simpleOutput{}, err
	}
	exercise, err := s.findExercise(input.Exercise)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	setID, err := findSetID(w, exercise.ID, input.SetID)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	if _, ok := s.app.Session.DeleteSet(w.ID, exercise.ID, setID); !ok {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete set: %s", input.SetID)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted set %s from %s", shortID(setID), exercise.Name),
	}, nil
}

func (s *Server) handleListPrograms(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	programs := s.app.Catalog.Programs()
	if len(programs) == 0 {
		return nil, map[string]any{"message": "No programs found."}, nil
	}

	out := make([]map[string]any, 0, len(programs))
	for _, p := range programs {
		names := make([]string, 0, len(p.ExerciseIDs))
		for _, exID := range p.ExerciseIDs {
			if ex, ok := s.app.Catalog.Exercise(exID); ok {
				names = append(names, ex.Name)
			}
		}
		out = append(out, map[string]any{
			"id":        p.ID,
			"name":      p.Name,
			"note":      p.Note,
			"exercises": names,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListHistory(ctx context.Context, req *mcp.CallToolRequest, input listHistoryInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	workouts := s.app.Session.Workouts()
	if len(workouts) == 0 {
		return nil, map[string]any{"message": "No workouts found."}, nil
	}
	if len(workouts) > input.Limit {
		workouts = workouts[:input.Limit]
	}
	return nil, workouts, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, any, error) {
	for _, w := range s.app.Session.Workouts() {
		if strings.HasPrefix(w.ID, input.ID) {
			return nil, w, nil
		}
	}
	return nil, nil, fmt.Errorf("workout not found: %s", input.ID)
}
