// Command analyze is a small CLI for inspecting scenario files offline.
// It can summarize every scenario in a configs directory, race the
// point-to-point algorithms against each other on a single scenario, and
// preview how a scenario's terrain drifts over future turns.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mazequest/pathfinder-server/game/engine"
	"github.com/mazequest/pathfinder-server/game/grid"
	"github.com/mazequest/pathfinder-server/game/pathfind"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	configsFlag := &cli.StringFlag{
		Name:    "configs",
		Aliases: []string{"c"},
		Value:   "configs",
		Usage:   "directory containing scenario JSON files",
	}

	return &cli.Command{
		Name:  "analyze",
		Usage: "inspect maze scenarios without starting the server",
		Commands: []*cli.Command{
			{
				Name:      "summary",
				Usage:     "print a one-block summary of every scenario in the configs directory",
				Flags:     []cli.Flag{configsFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runSummary(os.Stdout, cmd.String("configs"))
				},
			},
			{
				Name:      "compare",
				Usage:     "run every point-to-point algorithm on one scenario and compare the results",
				ArgsUsage: "<scenario>",
				Flags:     []cli.Flag{configsFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					name := cmd.Args().First()
					if name == "" {
						return fmt.Errorf("usage: analyze compare <scenario>")
					}
					return runCompare(os.Stdout, cmd.String("configs"), name)
				},
			},
			{
				Name:      "forecast",
				Usage:     "preview terrain drift for a scenario over the next turns",
				ArgsUsage: "<scenario>",
				Flags: []cli.Flag{
					configsFlag,
					&cli.IntFlag{
						Name:    "turns",
						Aliases: []string{"t"},
						Value:   5,
						Usage:   "number of turns to simulate",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					name := cmd.Args().First()
					if name == "" {
						return fmt.Errorf("usage: analyze forecast <scenario>")
					}
					return runForecast(os.Stdout, cmd.String("configs"), name, int(cmd.Int("turns")))
				},
			},
		},
	}
}

// resolveScenarioPath turns a scenario argument into a file path. A bare
// name like "classic" is looked up in the configs directory; anything
// that already points at a file is used as-is.
func resolveScenarioPath(configsDir, name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return filepath.Join(configsDir, name)
}

func runSummary(out io.Writer, configsDir string) error {
	files, err := filepath.Glob(filepath.Join(configsDir, "*.json"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no scenario files found in %s", configsDir)
	}
	sort.Strings(files)

	for _, file := range files {
		fmt.Fprintf(out, "\n=== %s ===\n", filepath.Base(file))
		scenario, err := engine.LoadScenario(file)
		if err != nil {
			fmt.Fprintf(out, "  ✗ %v\n", err)
			continue
		}
		summarizeScenario(out, scenario)
	}
	return nil
}

func summarizeScenario(out io.Writer, scenario *engine.Scenario) {
	g := scenario.BuildGrid()

	fmt.Fprintf(out, "  Name:        %s\n", scenario.Name)
	fmt.Fprintf(out, "  Grid:        %dx%d\n", g.Width, g.Height)
	fmt.Fprintf(out, "  Difficulty:  %s (%s, scale %.1f)\n",
		scenario.Difficulty, scenario.Heuristic, scenario.HeuristicScale())
	if scenario.FogRadius > 0 {
		fmt.Fprintf(out, "  Fog radius:  %d\n", scenario.FogRadius)
	}
	fmt.Fprintf(out, "  Start/Goal:  (%d,%d) -> (%d,%d)\n",
		g.Start().X, g.Start().Y, g.GoalPos().X, g.GoalPos().Y)
	if cps := g.Checkpoints(); len(cps) > 0 {
		fmt.Fprintf(out, "  Checkpoints: %d\n", len(cps))
	}
	if scenario.TerrainChangesPerTurn > 0 || scenario.ObstacleSpawnsPerTurn > 0 {
		fmt.Fprintf(out, "  Dynamics:    %d terrain changes, %d obstacle spawns per turn\n",
			scenario.TerrainChangesPerTurn, scenario.ObstacleSpawnsPerTurn)
	}

	counts := make(map[grid.Terrain]int)
	open := 0
	total := g.Width * g.Height
	for _, t := range g.TerrainSnapshot() {
		counts[t]++
		if t.Passable() {
			open++
		}
	}
	fmt.Fprintf(out, "  Open cells:  %d/%d (%.0f%%)\n", open, total, float64(open)/float64(total)*100)

	names := make([]string, 0, len(counts))
	for t := range counts {
		names = append(names, string(t))
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", n, counts[grid.Terrain(n)]))
	}
	fmt.Fprintf(out, "  Terrain:     %s\n", strings.Join(parts, " "))
}

func runCompare(out io.Writer, configsDir, name string) error {
	scenario, err := engine.LoadScenario(resolveScenarioPath(configsDir, name))
	if err != nil {
		return err
	}

	g := scenario.BuildGrid()
	pf := pathfind.NewPathfinder(scenario.HeuristicType(), scenario.HeuristicScale())
	start, goal := g.Start(), g.GoalPos()

	fmt.Fprintf(out, "Scenario: %s (%dx%d), (%d,%d) -> (%d,%d)\n\n",
		scenario.Name, g.Width, g.Height, start.X, start.Y, goal.X, goal.Y)
	fmt.Fprintf(out, "%-20s %-6s %10s %8s %10s\n", "ALGORITHM", "FOUND", "COST", "LENGTH", "EXPLORED")

	for _, algo := range pathfind.SingleGoalAlgorithms {
		res, err := pf.Search(g, pathfind.SearchQuery{
			Start:     start,
			Goal:      pathfind.SingleGoal(goal),
			Algorithm: algo,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", algo, err)
		}
		printResultRow(out, string(algo), res)
	}

	if cps := g.Checkpoints(); len(cps) > 0 {
		res, err := pf.Search(g, pathfind.SearchQuery{
			Start:       start,
			Goal:        pathfind.GoalSet(cps...),
			Algorithm:   pathfind.AlgorithmMultiGoal,
			Destination: &goal,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", pathfind.AlgorithmMultiGoal, err)
		}
		printResultRow(out, fmt.Sprintf("%s (%d stops)", pathfind.AlgorithmMultiGoal, len(cps)), res)
	}

	return nil
}

func printResultRow(out io.Writer, label string, res *pathfind.SearchResult) {
	if !res.Found {
		fmt.Fprintf(out, "%-20s %-6s %10s %8s %10d\n", label, "no", "-", "-", res.NodesExplored)
		return
	}
	fmt.Fprintf(out, "%-20s %-6s %10.1f %8d %10d\n",
		label, "yes", res.Cost, len(res.Path), res.NodesExplored)
}

func runForecast(out io.Writer, configsDir, name string, turns int) error {
	if turns < 1 {
		return fmt.Errorf("turns must be at least 1")
	}
	scenario, err := engine.LoadScenario(resolveScenarioPath(configsDir, name))
	if err != nil {
		return err
	}
	g := scenario.BuildGrid()
	prev := g.TerrainSnapshot()

	fmt.Fprintf(out, "Scenario: %s, simulating %d turns\n\n", scenario.Name, turns)
	for i := 1; i <= turns; i++ {
		g.AdvanceTurn()
		next := g.TerrainSnapshot()
		changed := 0
		for p, t := range next {
			if prev[p] != t {
				changed++
			}
		}
		fmt.Fprintf(out, "turn %d: %d cells changed, %d dynamic obstacles\n",
			g.Turn(), changed, len(g.DynamicObstacles()))
		prev = next
	}
	return nil
}
