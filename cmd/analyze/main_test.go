package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mazequest/pathfinder-server/game/engine"
	"github.com/mazequest/pathfinder-server/game/grid"
)

// writeScenario marshals a scenario into dir under the given filename and
// returns the configs directory.
func writeScenario(t *testing.T, dir, filename string, s *engine.Scenario) string {
	t.Helper()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		t.Fatalf("marshal scenario: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return dir
}

func baseScenario() *engine.Scenario {
	return &engine.Scenario{
		Name:         "test",
		Description:  "test scenario",
		Width:        11,
		Height:       11,
		MazeSeed:     42,
		ObstacleSeed: 7,
		Difficulty:   "medium",
		Heuristic:    "manhattan",
	}
}

func TestNewCommand(t *testing.T) {
	cmd := newCommand()
	if cmd.Name != "analyze" {
		t.Errorf("expected command name 'analyze', got %q", cmd.Name)
	}
	if len(cmd.Commands) != 3 {
		t.Errorf("expected 3 subcommands, got %d", len(cmd.Commands))
	}
}

func TestResolveScenarioPath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "direct.json")
	if err := os.WriteFile(existing, []byte("{}"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	tests := []struct {
		name     string
		arg      string
		expected string
	}{
		{"existing path used as-is", existing, existing},
		{"bare name gets suffix and dir", "classic", filepath.Join(dir, "classic.json")},
		{"name with suffix gets dir only", "classic.json", filepath.Join(dir, "classic.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveScenarioPath(dir, tt.arg)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRunSummary(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "alpha.json", baseScenario())

	hard := baseScenario()
	hard.Name = "hard"
	hard.Difficulty = "hard"
	hard.FogRadius = 3
	hard.TerrainChangesPerTurn = 2
	writeScenario(t, dir, "hard.json", hard)

	var buf bytes.Buffer
	if err := runSummary(&buf, dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"=== alpha.json ===",
		"=== hard.json ===",
		"Grid:        11x11",
		"Fog radius:  3",
		"2 terrain changes",
		"Open cells:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRunSummary_InvalidScenario(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	var buf bytes.Buffer
	if err := runSummary(&buf, dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "✗") {
		t.Errorf("expected failure marker for broken file, got:\n%s", buf.String())
	}
}

func TestRunSummary_EmptyDir(t *testing.T) {
	var buf bytes.Buffer
	if err := runSummary(&buf, t.TempDir()); err == nil {
		t.Error("expected error for empty configs directory")
	}
}

func TestRunCompare(t *testing.T) {
	dir := writeScenario(t, t.TempDir(), "test.json", baseScenario())

	var buf bytes.Buffer
	if err := runCompare(&buf, dir, "test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, algo := range []string{"bfs", "dijkstra", "astar", "bidirectional_astar"} {
		if !strings.Contains(out, algo) {
			t.Errorf("expected a row for %s, got:\n%s", algo, out)
		}
	}
	if !strings.Contains(out, "yes") {
		t.Errorf("expected at least one found path in:\n%s", out)
	}
}

func TestRunCompare_WithCheckpoints(t *testing.T) {
	s := baseScenario()
	// Odd cells always survive carving, so these checkpoints are kept.
	s.Checkpoints = []grid.Position{{X: 3, Y: 3}, {X: 7, Y: 7}}
	dir := writeScenario(t, t.TempDir(), "cps.json", s)

	var buf bytes.Buffer
	if err := runCompare(&buf, dir, "cps"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "multi_goal") {
		t.Errorf("expected a multi_goal row, got:\n%s", buf.String())
	}
}

func TestRunCompare_MissingScenario(t *testing.T) {
	var buf bytes.Buffer
	if err := runCompare(&buf, t.TempDir(), "nope"); err == nil {
		t.Error("expected error for missing scenario")
	}
}

func TestRunForecast(t *testing.T) {
	s := baseScenario()
	s.TerrainChangesPerTurn = 2
	dir := writeScenario(t, t.TempDir(), "drift.json", s)

	var buf bytes.Buffer
	if err := runForecast(&buf, dir, "drift", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"turn 1:", "turn 2:", "turn 3:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRunForecast_DefaultDynamics(t *testing.T) {
	// Generation-time defaults apply even when the scenario leaves the
	// dynamics fields zero, so simulation still produces turn lines.
	dir := writeScenario(t, t.TempDir(), "plain.json", baseScenario())

	var buf bytes.Buffer
	if err := runForecast(&buf, dir, "plain", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "dynamic obstacles") {
		t.Errorf("expected obstacle count in output, got:\n%s", buf.String())
	}
}

func TestRunForecast_InvalidTurns(t *testing.T) {
	var buf bytes.Buffer
	if err := runForecast(&buf, t.TempDir(), "x", 0); err == nil {
		t.Error("expected error for zero turns")
	}
}
