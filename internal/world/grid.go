package world

import (
	"math"
	"strings"

	"labyrinth-hunt/server/internal/items"
)

// Cell addresses one grid position. Z is the labyrinth level; +Y is north,
// +X is east, +Z is up.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (c Cell) DistanceTo(other Cell) float64 {
	dx := float64(c.X - other.X)
	dy := float64(c.Y - other.Y)
	dz := float64(c.Z - other.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

type Direction string

const (
	DirectionNorth Direction = "north"
	DirectionSouth Direction = "south"
	DirectionEast  Direction = "east"
	DirectionWest  Direction = "west"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
)

// Directions lists every direction in resolution order. Movement, neighbor
// expansion, and tie-breaks all walk this slice so results stay deterministic.
var Directions = [...]Direction{
	DirectionNorth,
	DirectionSouth,
	DirectionEast,
	DirectionWest,
	DirectionUp,
	DirectionDown,
}

func ParseDirection(raw string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case DirectionNorth:
		return DirectionNorth, true
	case DirectionSouth:
		return DirectionSouth, true
	case DirectionEast:
		return DirectionEast, true
	case DirectionWest:
		return DirectionWest, true
	case DirectionUp:
		return DirectionUp, true
	case DirectionDown:
		return DirectionDown, true
	}
	return "", false
}

func (d Direction) Offset() (int, int, int) {
	switch d {
	case DirectionNorth:
		return 0, 1, 0
	case DirectionSouth:
		return 0, -1, 0
	case DirectionEast:
		return 1, 0, 0
	case DirectionWest:
		return -1, 0, 0
	case DirectionUp:
		return 0, 0, 1
	case DirectionDown:
		return 0, 0, -1
	}
	return 0, 0, 0
}

func (c Cell) Shift(d Direction) Cell {
	dx, dy, dz := d.Offset()
	return Cell{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

// Grid is the generated labyrinth: per-level walkability plus ramp links
// between adjacent levels. Topology never changes after generation; item
// placements do, as items are grabbed and respawned.
type Grid struct {
	width  int
	height int
	depth  int

	walkable []bool
	rampUp   []bool

	placements map[items.ID]Cell
}

func NewGrid(width, height, depth int) *Grid {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if depth <= 0 {
		depth = 1
	}
	size := width * height * depth
	return &Grid{
		width:      width,
		height:     height,
		depth:      depth,
		walkable:   make([]bool, size),
		rampUp:     make([]bool, size),
		placements: make(map[items.ID]Cell),
	}
}

func (g *Grid) Dimensions() (int, int, int) {
	if g == nil {
		return 0, 0, 0
	}
	return g.width, g.height, g.depth
}

func (g *Grid) inBounds(c Cell) bool {
	return g != nil &&
		c.X >= 0 && c.X < g.width &&
		c.Y >= 0 && c.Y < g.height &&
		c.Z >= 0 && c.Z < g.depth
}

func (g *Grid) index(c Cell) int {
	return (c.Z*g.height+c.Y)*g.width + c.X
}

// Walkable reports whether the cell is a traversable part of the labyrinth.
// Out-of-bounds cells are simply not walkable.
func (g *Grid) Walkable(c Cell) bool {
	if !g.inBounds(c) {
		return false
	}
	return g.walkable[g.index(c)]
}

// Carve marks a cell traversable. Only generation and tests mutate the grid;
// the engine treats it as read-only.
func (g *Grid) Carve(c Cell) {
	if !g.inBounds(c) {
		return
	}
	g.walkable[g.index(c)] = true
}

// LinkRamp opens a vertical passage between c and the cell directly above it.
func (g *Grid) LinkRamp(c Cell) {
	if !g.inBounds(c) || c.Z+1 >= g.depth {
		return
	}
	g.rampUp[g.index(c)] = true
}

// Step resolves one move from c in the given direction. It returns the target
// cell and whether the edge is traversable: horizontal moves need a walkable
// target, vertical moves additionally need a ramp link.
func (g *Grid) Step(c Cell, d Direction) (Cell, bool) {
	target := c.Shift(d)
	if !g.Walkable(target) {
		return target, false
	}
	switch d {
	case DirectionUp:
		if !g.inBounds(c) || !g.rampUp[g.index(c)] {
			return target, false
		}
	case DirectionDown:
		if !g.inBounds(target) || !g.rampUp[g.index(target)] {
			return target, false
		}
	}
	return target, true
}

// Neighbors returns the reachable cells adjacent to c in resolution order.
func (g *Grid) Neighbors(c Cell) []Cell {
	if !g.Walkable(c) {
		return nil
	}
	neighbors := make([]Cell, 0, len(Directions))
	for _, d := range Directions {
		if target, ok := g.Step(c, d); ok {
			neighbors = append(neighbors, target)
		}
	}
	return neighbors
}

// ExitDirections returns the directions with a traversable edge out of c.
func (g *Grid) ExitDirections(c Cell) []Direction {
	if !g.Walkable(c) {
		return nil
	}
	exits := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		if _, ok := g.Step(c, d); ok {
			exits = append(exits, d)
		}
	}
	return exits
}

// PlaceItem records an item's home cell. Placement on a non-walkable cell is
// ignored so the placed-items invariant holds by construction.
func (g *Grid) PlaceItem(id items.ID, c Cell) {
	if g == nil || !g.Walkable(c) {
		return
	}
	g.placements[id] = c
}

// RemoveItem clears an item's placement, typically after a grab, and
// returns the cell it occupied.
func (g *Grid) RemoveItem(id items.ID) (Cell, bool) {
	if g == nil {
		return Cell{}, false
	}
	cell, ok := g.placements[id]
	if ok {
		delete(g.placements, id)
	}
	return cell, ok
}

// ItemAt reports the item whose home cell is c, if any.
func (g *Grid) ItemAt(c Cell) (items.ID, bool) {
	if g == nil {
		return "", false
	}
	for _, id := range items.All {
		if cell, ok := g.placements[id]; ok && cell == c {
			return id, true
		}
	}
	return "", false
}

// Placement reports an item's current home cell.
func (g *Grid) Placement(id items.ID) (Cell, bool) {
	if g == nil {
		return Cell{}, false
	}
	cell, ok := g.placements[id]
	return cell, ok
}

// Placements returns a copy of the current item placements.
func (g *Grid) Placements() map[items.ID]Cell {
	if g == nil {
		return nil
	}
	copied := make(map[items.ID]Cell, len(g.placements))
	for id, cell := range g.placements {
		copied[id] = cell
	}
	return copied
}
