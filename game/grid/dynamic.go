package grid

// dynamicTerrainChoices is the pool terrain changes are drawn from each
// turn, in fixed order so Intn draws map to stable outcomes.
var dynamicTerrainChoices = []Terrain{Grass, Water, Mud}

// AdvanceTurn applies one turn of dynamic mutation using the grid's own
// generator and increments the turn counter. Only the owning session calls
// this; the pathfinding engine never mutates a grid.
func (g *Grid) AdvanceTurn() {
	g.AdvanceTurnWith(g.rand)
}

// AdvanceTurnWith applies one turn of mutation driven by the supplied
// generator. Forecast replay drives a cloned grid with a replayed
// generator through this same entry point, which is what keeps live and
// forecast draw sequences identical.
//
// The per-turn draw sequence is explicit and fixed: one Shuffle over the
// candidate cells, one Intn per terrain change, then one Float64 per
// remaining candidate considered for a lava spawn. Candidates are
// enumerated in (y, x) order so map iteration never leaks into the
// sequence.
func (g *Grid) AdvanceTurnWith(rng *ObstacleRand) {
	candidates := g.mutationCandidates()

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	changes := g.terrainChangesPerTurn
	if changes > len(candidates) {
		changes = len(candidates)
	}
	for i := 0; i < changes; i++ {
		g.terrain[candidates[i]] = dynamicTerrainChoices[rng.Intn(len(dynamicTerrainChoices))]
	}

	spawned := 0
	for _, p := range candidates[changes:] {
		if spawned >= g.obstacleSpawnsPerTurn {
			break
		}
		if rng.Float64() < g.spawnRate {
			g.terrain[p] = Lava
			g.dynamicObstacles[p] = true
			spawned++
		}
	}

	g.turn++
}

// mutationCandidates returns the cells eligible for mutation this turn:
// open, passable, not the start, goal, or a checkpoint, and not already a
// dynamic obstacle. The result is in deterministic (y, x) order.
func (g *Grid) mutationCandidates() []Position {
	protected := map[Position]bool{g.start: true, g.goal: true}
	for _, cp := range g.checkpoints {
		protected[cp] = true
	}

	eligible := make(map[Position]bool)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Position{X: x, Y: y}
			if !g.IsOpen(p) || !g.IsPassable(p) {
				continue
			}
			if protected[p] || g.dynamicObstacles[p] {
				continue
			}
			eligible[p] = true
		}
	}
	return sortedPositions(eligible)
}
