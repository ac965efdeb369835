package ai

import worldpkg "labyrinth-hunt/server/internal/world"

// NextPathfindStep returns the first cell along the shortest path from
// the pursuer to the target. The second result is false when no path
// exists, which callers treat as a forced WAIT.
func NextPathfindStep(grid *worldpkg.Grid, from, target worldpkg.Cell) (worldpkg.Cell, bool) {
	if grid == nil || from == target {
		return from, false
	}
	path, ok := grid.FindPath(from, target)
	if !ok || len(path) == 0 {
		return from, false
	}
	return path[0], true
}

// NextChaseStep greedily picks the walkable neighbor that most reduces
// the Euclidean distance to the target. Neighbors are scanned in the
// fixed direction resolution order, so ties resolve deterministically.
// Returns false when every neighbor moves the pursuer further away.
func NextChaseStep(grid *worldpkg.Grid, from, target worldpkg.Cell) (worldpkg.Cell, bool) {
	if grid == nil || from == target {
		return from, false
	}
	best := from
	bestDistance := from.DistanceTo(target)
	for _, neighbor := range grid.Neighbors(from) {
		if d := neighbor.DistanceTo(target); d < bestDistance {
			best = neighbor
			bestDistance = d
		}
	}
	if best == from {
		return from, false
	}
	return best, true
}
