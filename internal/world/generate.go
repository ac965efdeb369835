package world

import (
	"fmt"
	"math/rand"

	"labyrinth-hunt/server/internal/items"
)

// Room cells sit on odd coordinates; the backtracker carves the walls
// between them, so every odd/odd cell ends up walkable on every level.
var carveOffsets = [...][2]int{{0, 2}, {0, -2}, {2, 0}, {-2, 0}}

// Generate carves the multi-level labyrinth for the given config: one maze
// per level via seeded recursive backtracking, braided to open loops, ramp
// shafts linking adjacent levels, and the item placements. The result is
// fully determined by cfg.Seed.
func Generate(cfg Config) *Grid {
	cfg = cfg.normalized()
	grid := NewGrid(cfg.Width, cfg.Height, cfg.Depth)
	for z := 0; z < cfg.Depth; z++ {
		rng := NewDeterministicRNG(cfg.Seed, fmt.Sprintf("maze:%d", z))
		carveLevel(grid, z, cfg.BraidChance, rng)
	}
	linkLevels(grid, cfg.RampsPerLevel, NewDeterministicRNG(cfg.Seed, "ramps"))
	placeItems(grid, cfg, NewDeterministicRNG(cfg.Seed, "items"))
	return grid
}

func carveLevel(grid *Grid, z int, braidChance float64, rng *rand.Rand) {
	width, height, _ := grid.Dimensions()
	if width < 3 || height < 3 {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				grid.Carve(Cell{X: x, Y: y, Z: z})
			}
		}
		return
	}

	start := Cell{X: 1, Y: 1, Z: z}
	grid.Carve(start)
	stack := []Cell{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		candidates := make([]Cell, 0, len(carveOffsets))
		for _, offset := range carveOffsets {
			next := Cell{X: current.X + offset[0], Y: current.Y + offset[1], Z: z}
			if next.X < 1 || next.X >= width-1 || next.Y < 1 || next.Y >= height-1 {
				continue
			}
			if grid.Walkable(next) {
				continue
			}
			candidates = append(candidates, next)
		}
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		next := candidates[rng.Intn(len(candidates))]
		between := Cell{X: (current.X + next.X) / 2, Y: (current.Y + next.Y) / 2, Z: z}
		grid.Carve(between)
		grid.Carve(next)
		stack = append(stack, next)
	}

	braidLevel(grid, z, braidChance, rng)
}

// braidLevel knocks a wall out of some dead ends so the maze gains loops;
// a perfect maze funnels every chase down the same corridor.
func braidLevel(grid *Grid, z int, chance float64, rng *rand.Rand) {
	if chance <= 0 {
		return
	}
	width, height, _ := grid.Dimensions()
	for y := 1; y < height-1; y += 2 {
		for x := 1; x < width-1; x += 2 {
			room := Cell{X: x, Y: y, Z: z}
			if !grid.Walkable(room) || countLevelExits(grid, room) != 1 {
				continue
			}
			if rng.Float64() >= chance {
				continue
			}
			walls := make([]Cell, 0, len(carveOffsets))
			for _, offset := range carveOffsets {
				far := Cell{X: room.X + offset[0], Y: room.Y + offset[1], Z: z}
				between := Cell{X: room.X + offset[0]/2, Y: room.Y + offset[1]/2, Z: z}
				if grid.Walkable(far) && !grid.Walkable(between) {
					walls = append(walls, between)
				}
			}
			if len(walls) == 0 {
				continue
			}
			grid.Carve(walls[rng.Intn(len(walls))])
		}
	}
}

func countLevelExits(grid *Grid, c Cell) int {
	exits := 0
	for _, d := range [...]Direction{DirectionNorth, DirectionSouth, DirectionEast, DirectionWest} {
		if grid.Walkable(c.Shift(d)) {
			exits++
		}
	}
	return exits
}

func linkLevels(grid *Grid, rampsPerLevel int, rng *rand.Rand) {
	width, height, depth := grid.Dimensions()
	rooms := ((width - 1) / 2) * ((height - 1) / 2)
	if rooms < 1 {
		// Degenerate levels are fully carved, so the origin can host
		// the one ramp that keeps the level pair connected.
		rooms = 1
	}
	if rampsPerLevel > rooms {
		rampsPerLevel = rooms
	}
	for z := 0; z+1 < depth; z++ {
		placed := make(map[Cell]struct{}, rampsPerLevel)
		for len(placed) < rampsPerLevel {
			room := randomRoom(grid, z, rng)
			if _, exists := placed[room]; exists {
				continue
			}
			placed[room] = struct{}{}
			grid.LinkRamp(room)
		}
	}
}

// randomRoom picks an odd/odd lattice cell, which the backtracker guarantees
// walkable on every level.
func randomRoom(grid *Grid, z int, rng *rand.Rand) Cell {
	width, height, _ := grid.Dimensions()
	cols := (width - 1) / 2
	rows := (height - 1) / 2
	if cols <= 0 || rows <= 0 {
		return Cell{X: 0, Y: 0, Z: z}
	}
	x := rng.Intn(cols)*2 + 1
	y := rng.Intn(rows)*2 + 1
	return Cell{X: x, Y: y, Z: z}
}

func placeItems(grid *Grid, cfg Config, rng *rand.Rand) {
	_, _, depth := grid.Dimensions()
	stoneLevels := [...]int{0, depth / 2, depth - 1}

	taken := map[Cell]struct{}{
		cfg.PlayerStart:  {},
		cfg.PursuerStart: {},
	}
	for i, stone := range items.Stones {
		z := stoneLevels[i%len(stoneLevels)]
		cell := pickFreeRoom(grid, z, taken, rng)
		grid.PlaceItem(stone, cell)
		taken[cell] = struct{}{}
	}

	lanternCell := pickLanternRoom(grid, cfg.PlayerStart, taken, rng)
	grid.PlaceItem(items.Lantern, lanternCell)
}

func pickFreeRoom(grid *Grid, z int, taken map[Cell]struct{}, rng *rand.Rand) Cell {
	const attempts = 64
	for i := 0; i < attempts; i++ {
		cell := randomRoom(grid, z, rng)
		if _, exists := taken[cell]; exists {
			continue
		}
		return cell
	}
	width, height, _ := grid.Dimensions()
	for y := 1; y < height; y += 2 {
		for x := 1; x < width; x += 2 {
			cell := Cell{X: x, Y: y, Z: z}
			if !grid.Walkable(cell) {
				continue
			}
			if _, exists := taken[cell]; exists {
				continue
			}
			return cell
		}
	}
	return Cell{X: 1, Y: 1, Z: z}
}

// pickLanternRoom places the lantern near the player start so the tool is in
// reach early. Falls back to any free room on the start level when the
// neighborhood has no candidates.
func pickLanternRoom(grid *Grid, start Cell, taken map[Cell]struct{}, rng *rand.Rand) Cell {
	const reach = 10
	width, height, _ := grid.Dimensions()
	candidates := make([]Cell, 0, 32)
	for y := 1; y < height-1; y += 2 {
		for x := 1; x < width-1; x += 2 {
			cell := Cell{X: x, Y: y, Z: start.Z}
			if !grid.Walkable(cell) {
				continue
			}
			if _, exists := taken[cell]; exists {
				continue
			}
			dx := cell.X - start.X
			dy := cell.Y - start.Y
			if dx < -reach || dx > reach || dy < -reach || dy > reach {
				continue
			}
			candidates = append(candidates, cell)
		}
	}
	if len(candidates) == 0 {
		return pickFreeRoom(grid, start.Z, taken, rng)
	}
	return candidates[rng.Intn(len(candidates))]
}
