// Command validate provides a small CLI that validates scenario JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Dimension, difficulty, heuristic, and fog bounds
//   - Terrain weight references against known terrain types
//   - Connectivity: the goal and every checkpoint are reachable from the
//     start via passable cells on the generated grid
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mazequest/pathfinder-server/game/engine"
	"github.com/mazequest/pathfinder-server/game/grid"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateScenario loads and validates a single scenario JSON file. It
// performs structural checks, then builds the grid from the scenario
// seeds and runs a reachability analysis.
func validateScenario(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var scenario engine.Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateScenario(&scenario); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Connectivity validation on the generated grid
	g := scenario.BuildGrid()
	connectivity := validateConnectivity(g)
	result.Errors = append(result.Errors, connectivity.Errors...)
	if !connectivity.Valid {
		result.Valid = false
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", scenario.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", g.Width, g.Height))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Difficulty: %s (%s)", scenario.Difficulty, scenario.Heuristic))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Fog radius: %d", scenario.FogRadius))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Checkpoints: %d", len(g.Checkpoints())))
	}

	return result
}

// validateConnectivity ensures the goal and every checkpoint are
// reachable from the start using 4-directional movement over passable
// cells. It reports any unreachable targets.
func validateConnectivity(g *grid.Grid) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	// Flood fill from the start over passable cells
	visited := map[grid.Position]bool{}
	queue := []grid.Position{g.Start()}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, next := range g.Neighbors(current) {
			if !visited[next] && g.IsPassable(next) {
				queue = append(queue, next)
			}
		}
	}

	var unreachable []string
	if !visited[g.GoalPos()] {
		unreachable = append(unreachable, fmt.Sprintf("Goal at (%d,%d)", g.GoalPos().X, g.GoalPos().Y))
	}
	for _, cp := range g.Checkpoints() {
		if !visited[cp] {
			unreachable = append(unreachable, fmt.Sprintf("Checkpoint at (%d,%d)", cp.X, cp.Y))
		}
	}

	if len(unreachable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d targets unreachable from start", len(unreachable)))
		for _, target := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", target))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: goal and all %d checkpoints reachable from start", len(g.Checkpoints())))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding scenario files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateScenario(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All scenarios are valid!")
	} else {
		fmt.Println("❌ Some scenarios have errors")
		os.Exit(1)
	}
}
