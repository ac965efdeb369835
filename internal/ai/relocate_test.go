package ai

import (
	"testing"

	worldpkg "labyrinth-hunt/server/internal/world"
)

func TestJumpLandingMaximizesDistance(t *testing.T) {
	grid := worldpkg.NewGrid(6, 1, 1)
	for x := 0; x < 5; x++ {
		grid.Carve(worldpkg.Cell{X: x})
	}
	player := worldpkg.Cell{X: 0}

	landing, ok := JumpLanding(grid, player, worldpkg.NewDeterministicRNG("seed", "jump"))
	if !ok {
		t.Fatalf("expected a landing cell")
	}
	if landing != (worldpkg.Cell{X: 4}) {
		t.Fatalf("expected far end of corridor (4,0), got %+v", landing)
	}
}

func TestJumpLandingTieBreakDeterministic(t *testing.T) {
	grid := worldpkg.NewGrid(5, 5, 1)
	arms := []worldpkg.Cell{
		{X: 2, Y: 3}, {X: 2, Y: 1}, {X: 3, Y: 2}, {X: 1, Y: 2},
	}
	grid.Carve(worldpkg.Cell{X: 2, Y: 2})
	for _, c := range arms {
		grid.Carve(c)
	}
	player := worldpkg.Cell{X: 2, Y: 2}

	first, ok := JumpLanding(grid, player, worldpkg.NewDeterministicRNG("seed", "jump"))
	if !ok {
		t.Fatalf("expected a landing cell")
	}
	second, _ := JumpLanding(grid, player, worldpkg.NewDeterministicRNG("seed", "jump"))
	if first != second {
		t.Fatalf("expected identical landings for identical seeds, got %+v and %+v", first, second)
	}

	isArm := false
	for _, c := range arms {
		if first == c {
			isArm = true
		}
	}
	if !isArm {
		t.Fatalf("expected landing on a farthest arm, got %+v", first)
	}
}

func TestJumpLandingRequiresGrid(t *testing.T) {
	if _, ok := JumpLanding(nil, worldpkg.Cell{}, nil); ok {
		t.Fatalf("expected no landing without a grid")
	}
}
