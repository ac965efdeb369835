package ai

import (
	"math/rand"

	worldpkg "labyrinth-hunt/server/internal/world"
)

// JumpLanding picks the cell the pursuer reappears at after a jump: the
// cell reachable from the player that maximizes Euclidean distance from
// the player, so a reappearing pursuer always has a route back while
// starting as far away as the labyrinth allows. Ties are broken with
// the per-instance RNG to keep replays deterministic. Returns false
// only when the player's component is empty, which cannot happen on a
// generated grid.
func JumpLanding(grid *worldpkg.Grid, player worldpkg.Cell, rng *rand.Rand) (worldpkg.Cell, bool) {
	if grid == nil {
		return worldpkg.Cell{}, false
	}
	reachable := grid.ReachableFrom(player)
	if len(reachable) == 0 {
		return worldpkg.Cell{}, false
	}

	var ties []worldpkg.Cell
	bestDistance := -1.0
	for _, cell := range reachable {
		d := cell.DistanceTo(player)
		switch {
		case d > bestDistance:
			bestDistance = d
			ties = ties[:0]
			ties = append(ties, cell)
		case d == bestDistance:
			ties = append(ties, cell)
		}
	}
	if len(ties) == 1 || rng == nil {
		return ties[0], true
	}
	return ties[rng.Intn(len(ties))], true
}
