package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mazequest/pathfinder-server/game/engine"
	"github.com/mazequest/pathfinder-server/game/grid"
)

func writeScenario(t *testing.T, dir, name string, scenario engine.Scenario) string {
	t.Helper()
	data, err := json.MarshalIndent(scenario, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal scenario: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write scenario file: %v", err)
	}
	return path
}

func baseScenario() engine.Scenario {
	return engine.Scenario{
		Name:         "test",
		Description:  "Test scenario",
		Width:        11,
		Height:       11,
		MazeSeed:     42,
		ObstacleSeed: 7,
		Difficulty:   "medium",
		Heuristic:    "manhattan",
	}
}

func TestValidateScenario_Valid(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "valid.json", baseScenario())

	result := validateScenario(path)

	if !result.Valid {
		t.Fatalf("Expected valid scenario, got errors: %v", result.Errors)
	}

	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "✓ Name: test") {
		t.Errorf("Expected name info line, got: %s", joined)
	}
	if !strings.Contains(joined, "✓ Connectivity") {
		t.Errorf("Expected connectivity info line, got: %s", joined)
	}
}

func TestValidateScenario_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	result := validateScenario(path)

	if result.Valid {
		t.Fatal("Expected invalid result for malformed JSON")
	}
	if !strings.Contains(result.Errors[0], "Invalid JSON") {
		t.Errorf("Expected JSON error, got: %v", result.Errors)
	}
}

func TestValidateScenario_MissingFile(t *testing.T) {
	result := validateScenario(filepath.Join(t.TempDir(), "nope.json"))

	if result.Valid {
		t.Fatal("Expected invalid result for missing file")
	}
	if !strings.Contains(result.Errors[0], "Failed to read file") {
		t.Errorf("Expected read error, got: %v", result.Errors)
	}
}

func TestValidateScenario_BadDifficulty(t *testing.T) {
	dir := t.TempDir()
	scenario := baseScenario()
	scenario.Difficulty = "nightmare"
	path := writeScenario(t, dir, "bad.json", scenario)

	result := validateScenario(path)

	if result.Valid {
		t.Fatal("Expected invalid result for unknown difficulty")
	}
}

func TestValidateScenario_TooSmall(t *testing.T) {
	dir := t.TempDir()
	scenario := baseScenario()
	scenario.Width = 2
	scenario.Height = 2
	path := writeScenario(t, dir, "small.json", scenario)

	result := validateScenario(path)

	if result.Valid {
		t.Fatal("Expected invalid result for undersized grid")
	}
}

func TestValidateScenario_UnreachableGoal(t *testing.T) {
	dir := t.TempDir()
	scenario := baseScenario()
	// Every non-landmark cell becomes lava, sealing the goal off.
	scenario.TerrainWeights = map[grid.Terrain]float64{
		grid.Lava: 1.0,
	}
	path := writeScenario(t, dir, "sealed.json", scenario)

	result := validateScenario(path)

	if result.Valid {
		t.Fatal("Expected invalid result for sealed goal")
	}

	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "Connectivity failure") {
		t.Errorf("Expected connectivity failure, got: %s", joined)
	}
}

func TestValidateConnectivity_OpenGrid(t *testing.T) {
	g := grid.NewOpenGrid(7, 7, 1)

	result := validateConnectivity(g)

	if !result.Valid {
		t.Fatalf("Expected open grid to be fully connected, got: %v", result.Errors)
	}
}
