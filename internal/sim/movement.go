package sim

import (
	itemspkg "labyrinth-hunt/server/internal/items"
	worldpkg "labyrinth-hunt/server/internal/world"
)

// moveResult summarizes a resolved MOVE.
type moveResult struct {
	Steps      int
	TimeTaken  float64
	StopReason StopReason
	Gait       Gait
}

// resolveMove walks the player cell-by-cell, stopping at the first wall
// or boundary, then settles stamina against the distance actually
// travelled. RUN with empty stamina downgrades to WALK before the first
// step; the downgrade is silent and the move still resolves.
func resolveMove(grid *worldpkg.Grid, player PlayerState, move MoveCommand, cfg worldpkg.Config) (PlayerState, moveResult) {
	gait := move.Gait
	if gait == GaitRun && player.Stamina.Empty() {
		gait = GaitWalk
	}

	position := player.Position
	steps := 0
	stop := StopSuccess
	for i := 0; i < move.Distance; i++ {
		next, ok := grid.Step(position, move.Direction)
		if !ok {
			stop = StopCollision
			break
		}
		position = next
		steps++
	}

	player.Position = position
	if gait == GaitRun {
		player.Stamina = player.Stamina.Drain(steps, cfg.RunDrainPerStep)
	} else {
		player.Stamina = player.Stamina.Recover(steps, cfg.WalkRecoverPerStep)
	}

	return player, moveResult{
		Steps:      steps,
		TimeTaken:  float64(steps) / gait.Speed(),
		StopReason: stop,
		Gait:       gait,
	}
}

// observe builds the observable environment at the player's position:
// open exits, items within the gait's sight radius, and the audio band
// for the current pursuer distance.
func observe(grid *worldpkg.Grid, position worldpkg.Cell, gait Gait, pursuer PursuerState, cfg worldpkg.Config) Environment {
	radius := cfg.SightRadiusWalk
	if gait == GaitRun {
		radius = cfg.SightRadiusRun
	}
	var visible []itemspkg.ID
	for _, id := range itemspkg.All {
		if cell, ok := grid.Placement(id); ok && cell.DistanceTo(position) <= radius {
			visible = append(visible, id)
		}
	}
	return Environment{
		VisiblePaths: grid.ExitDirections(position),
		VisibleItems: visible,
		AudioBand:    audioBand(position, pursuer, cfg),
	}
}

// audioBand derives the cue band purely from the scalar distance to the
// pursuer. A vanished or paralyzed pursuer always reads far, so its
// position never leaks through the cue while it is immune.
func audioBand(player worldpkg.Cell, pursuer PursuerState, cfg worldpkg.Config) AudioBand {
	if !pursuer.Active() {
		return AudioFar
	}
	d := player.DistanceTo(pursuer.Position)
	switch {
	case d <= cfg.AudioVeryNear:
		return AudioVeryNear
	case d <= cfg.AudioNear:
		return AudioNear
	case d <= cfg.AudioModerate:
		return AudioModerate
	}
	return AudioFar
}
