package engine

import (
	"fmt"

	"github.com/mazequest/pathfinder-server/game/grid"
)

// directionOffsets maps a direction name to its grid delta.
var directionOffsets = map[string]struct{ dx, dy int }{
	DirUp:    {0, -1},
	DirDown:  {0, 1},
	DirLeft:  {-1, 0},
	DirRight: {1, 0},
}

// Move attempts to step the agent one cell. A successful step pays the
// destination terrain cost, pushes the left cell onto the recent window,
// reveals the new surroundings under fog, and collects any checkpoint at
// the destination. A blocked step is recorded but changes nothing else.
func (e *Engine) Move(direction string) bool {
	offset, ok := directionOffsets[direction]
	if !ok {
		return false
	}

	from := e.agent
	to := grid.Position{X: from.X + offset.dx, Y: from.Y + offset.dy}

	if !e.grid.InBounds(to) || !e.grid.IsPassable(to) {
		e.message = fmt.Sprintf("Blocked at (%d,%d)", to.X, to.Y)
		e.recordMove(direction, from, from, 0, false)
		return false
	}

	cost := e.grid.Cost(to)
	e.agent = to
	e.totalCost += cost
	e.recent.Push(from)
	e.recordMove(direction, from, to, cost, true)

	if e.mask != nil {
		e.reveal(to)
	}

	for _, cp := range e.grid.Checkpoints() {
		if to == cp && !e.visited[cp] {
			e.visited[cp] = true
			e.message = fmt.Sprintf("Checkpoint (%d,%d) reached, %d remaining",
				cp.X, cp.Y, len(e.RemainingCheckpoints()))
		}
	}

	if to == e.grid.GoalPos() {
		e.goalReached = true
		e.message = fmt.Sprintf("Goal reached in %d moves, total cost %.1f", len(e.moves), e.totalCost)
	}

	return true
}

// CanMove reports whether a step in the direction would succeed.
func (e *Engine) CanMove(direction string) bool {
	offset, ok := directionOffsets[direction]
	if !ok {
		return false
	}
	to := grid.Position{X: e.agent.X + offset.dx, Y: e.agent.Y + offset.dy}
	return e.grid.InBounds(to) && e.grid.IsPassable(to)
}

// PossibleMoves returns the directions the agent can step in, in a
// stable order.
func (e *Engine) PossibleMoves() []string {
	var possible []string
	for _, dir := range []string{DirUp, DirDown, DirLeft, DirRight} {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// BulkMove executes moves in sequence, stopping at the first failure or
// on reaching the goal. It returns the per-move outcomes.
func (e *Engine) BulkMove(moves []string) []bool {
	results := make([]bool, 0, len(moves))
	for _, direction := range moves {
		success := e.Move(direction)
		results = append(results, success)
		if !success || e.goalReached {
			break
		}
	}
	return results
}

// FollowPath walks the agent along a path produced by a search. The
// first position must be the agent's current cell. It returns the number
// of steps taken; a step blocked by terrain that mutated since the
// search stops the walk early.
func (e *Engine) FollowPath(path []grid.Position) (int, error) {
	if len(path) == 0 {
		return 0, fmt.Errorf("empty path")
	}
	if path[0] != e.agent {
		return 0, fmt.Errorf("path starts at (%d,%d), agent is at (%d,%d)",
			path[0].X, path[0].Y, e.agent.X, e.agent.Y)
	}

	steps := 0
	for i := 1; i < len(path); i++ {
		direction, err := directionBetween(path[i-1], path[i])
		if err != nil {
			return steps, err
		}
		if !e.Move(direction) {
			return steps, nil
		}
		steps++
	}
	return steps, nil
}

// reveal marks every cell within the fog radius as discovered and
// records its terrain in the agent's memory.
func (e *Engine) reveal(center grid.Position) {
	radius := e.scenario.FogRadius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if abs(dx)+abs(dy) > radius {
				continue
			}
			p := grid.Position{X: center.X + dx, Y: center.Y + dy}
			if !e.grid.InBounds(p) {
				continue
			}
			e.mask[p] = true
			e.memory[p] = e.grid.TerrainAt(p)
		}
	}
}

// LocalView returns the eight cells surrounding the agent.
func (e *Engine) LocalView() []SurroundingCell {
	var view []SurroundingCell
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := grid.Position{X: e.agent.X + dx, Y: e.agent.Y + dy}
			if !e.grid.InBounds(p) {
				continue
			}
			view = append(view, SurroundingCell{
				X:       p.X,
				Y:       p.Y,
				Terrain: e.grid.TerrainAt(p),
				Open:    e.grid.IsOpen(p),
			})
		}
	}
	return view
}

// directionBetween names the unit step from one cell to an adjacent one.
func directionBetween(from, to grid.Position) (string, error) {
	for dir, offset := range directionOffsets {
		if to.X-from.X == offset.dx && to.Y-from.Y == offset.dy {
			return dir, nil
		}
	}
	return "", fmt.Errorf("(%d,%d) and (%d,%d) are not adjacent", from.X, from.Y, to.X, to.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
