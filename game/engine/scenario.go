package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mazequest/pathfinder-server/game/grid"
	"github.com/mazequest/pathfinder-server/game/pathfind"
)

// Scenario describes one playable maze from JSON: dimensions, seeds,
// terrain distribution, difficulty, and the fog settings the agent plays
// under.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	Width  int `json:"width"`
	Height int `json:"height"`

	// MazeSeed drives wall carving and terrain assignment; ObstacleSeed
	// drives per-turn mutation. Two scenarios sharing both seeds and
	// dimensions are the same maze.
	MazeSeed     int64 `json:"maze_seed"`
	ObstacleSeed int64 `json:"obstacle_seed"`

	// OpenArena skips carving entirely and produces a wall-free grid.
	OpenArena bool `json:"open_arena,omitempty"`

	// Difficulty selects the heuristic scale: easy, medium, or hard.
	Difficulty string `json:"difficulty"`

	// Heuristic selects the distance estimate: manhattan or euclidean.
	Heuristic string `json:"heuristic"`

	// FogRadius is the Manhattan radius revealed around the agent each
	// step. Zero means full visibility.
	FogRadius int `json:"fog_radius"`

	Checkpoints []grid.Position `json:"checkpoints,omitempty"`

	TerrainWeights map[grid.Terrain]float64 `json:"terrain_weights,omitempty"`

	SpawnRate             float64 `json:"spawn_rate,omitempty"`
	TerrainChangesPerTurn int     `json:"terrain_changes_per_turn,omitempty"`
	ObstacleSpawnsPerTurn int     `json:"obstacle_spawns_per_turn,omitempty"`

	// CacheSize bounds the per-session result cache; zero uses the
	// engine default.
	CacheSize int `json:"cache_size,omitempty"`

	RevisitPenalty float64 `json:"revisit_penalty,omitempty"`
	HistorySize    int     `json:"history_size,omitempty"`
}

// Validation bounds.
const (
	MinScenarioDimension = 5
	MaxScenarioDimension = 51
	MaxFogRadius         = 20
)

var validDifficulties = map[string]float64{
	"easy":   pathfind.EasyHeuristicScale,
	"medium": pathfind.MediumHeuristicScale,
	"hard":   pathfind.HardHeuristicScale,
}

var validHeuristics = map[string]pathfind.HeuristicType{
	"manhattan": pathfind.Manhattan,
	"euclidean": pathfind.Euclidean,
}

// ValidateScenario checks a scenario for correctness before a grid is
// built from it.
func ValidateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("scenario validation: name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("scenario validation: description is required")
	}

	if s.Width < MinScenarioDimension || s.Width > MaxScenarioDimension {
		return fmt.Errorf("scenario validation: width must be between %d and %d, got %d",
			MinScenarioDimension, MaxScenarioDimension, s.Width)
	}
	if s.Height < MinScenarioDimension || s.Height > MaxScenarioDimension {
		return fmt.Errorf("scenario validation: height must be between %d and %d, got %d",
			MinScenarioDimension, MaxScenarioDimension, s.Height)
	}

	if s.Difficulty != "" {
		if _, ok := validDifficulties[s.Difficulty]; !ok {
			return fmt.Errorf("scenario validation: difficulty must be easy, medium, or hard, got %q", s.Difficulty)
		}
	}
	if s.Heuristic != "" {
		if _, ok := validHeuristics[s.Heuristic]; !ok {
			return fmt.Errorf("scenario validation: heuristic must be manhattan or euclidean, got %q", s.Heuristic)
		}
	}

	if s.FogRadius < 0 || s.FogRadius > MaxFogRadius {
		return fmt.Errorf("scenario validation: fog_radius must be between 0 and %d, got %d", MaxFogRadius, s.FogRadius)
	}

	for i, cp := range s.Checkpoints {
		if cp.X < 0 || cp.X >= s.Width || cp.Y < 0 || cp.Y >= s.Height {
			return fmt.Errorf("scenario validation: checkpoint %d at (%d,%d) outside %dx%d grid",
				i+1, cp.X, cp.Y, s.Width, s.Height)
		}
	}

	if s.TerrainWeights != nil {
		var total float64
		for terrain, weight := range s.TerrainWeights {
			if _, ok := grid.TerrainCosts[terrain]; !ok {
				return fmt.Errorf("scenario validation: unknown terrain %q in terrain_weights", terrain)
			}
			if weight < 0 {
				return fmt.Errorf("scenario validation: terrain weight for %q must be non-negative, got %v", terrain, weight)
			}
			total += weight
		}
		if total <= 0 {
			return fmt.Errorf("scenario validation: terrain_weights must sum to a positive value")
		}
	}

	if s.SpawnRate < 0 || s.SpawnRate > 1 {
		return fmt.Errorf("scenario validation: spawn_rate must be between 0 and 1, got %v", s.SpawnRate)
	}
	if s.RevisitPenalty < 0 {
		return fmt.Errorf("scenario validation: revisit_penalty must be non-negative, got %v", s.RevisitPenalty)
	}
	if s.CacheSize < 0 {
		return fmt.Errorf("scenario validation: cache_size must be non-negative, got %d", s.CacheSize)
	}
	if s.HistorySize < 0 {
		return fmt.Errorf("scenario validation: history_size must be non-negative, got %d", s.HistorySize)
	}

	return nil
}

// HeuristicScale maps the scenario difficulty to the engine scale factor.
func (s *Scenario) HeuristicScale() float64 {
	if scale, ok := validDifficulties[s.Difficulty]; ok {
		return scale
	}
	return pathfind.MediumHeuristicScale
}

// HeuristicType maps the scenario heuristic name to the engine type.
func (s *Scenario) HeuristicType() pathfind.HeuristicType {
	if ht, ok := validHeuristics[s.Heuristic]; ok {
		return ht
	}
	return pathfind.Manhattan
}

// BuildGrid constructs the maze the scenario describes.
func (s *Scenario) BuildGrid() *grid.Grid {
	if s.OpenArena {
		return grid.NewOpenGrid(s.Width, s.Height, s.ObstacleSeed)
	}
	return grid.Generate(grid.GenerateOptions{
		Width:                 s.Width,
		Height:                s.Height,
		MazeSeed:              s.MazeSeed,
		ObstacleSeed:          s.ObstacleSeed,
		Checkpoints:           s.Checkpoints,
		TerrainWeights:        s.TerrainWeights,
		SpawnRate:             s.SpawnRate,
		TerrainChangesPerTurn: s.TerrainChangesPerTurn,
		ObstacleSpawnsPerTurn: s.ObstacleSpawnsPerTurn,
	})
}

// LoadScenario loads and validates a scenario from a JSON file.
func LoadScenario(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	if err := ValidateScenario(&scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// LoadScenarioByName loads a scenario by name from the configs directory.
func LoadScenarioByName(name string) (*Scenario, error) {
	if !strings.HasSuffix(name, ".json") {
		name = name + ".json"
	}

	configDir := "configs"
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		configDir = dir
	}
	path := filepath.Join(configDir, name)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("scenario file %q not found", name)
	}

	scenario, err := LoadScenario(path)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %v", name, err)
	}
	return scenario, nil
}

// DefaultScenario is the built-in fallback used when no scenario files
// are available.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:        "default",
		Description: "Built-in 15x15 maze with light fog",
		Width:       15,
		Height:      15,
		MazeSeed:    1,
		Difficulty:  "medium",
		Heuristic:   "manhattan",
		FogRadius:   3,
	}
}
