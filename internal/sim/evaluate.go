package sim

import worldpkg "labyrinth-hunt/server/internal/world"

// evaluateOutcome is the pure win/lose check run after the player phase
// and again after the pursuer phase. WIN takes precedence: a turn that
// completes the stone set can never flip to LOSE, and an immune pursuer
// never captures regardless of position.
func evaluateOutcome(player PlayerState, pursuer PursuerState, cfg worldpkg.Config) Outcome {
	if player.Inventory.HoldsAllStones() {
		return OutcomeWin
	}
	if pursuer.Active() && player.Position.DistanceTo(pursuer.Position) <= cfg.CaptureRadius {
		return OutcomeLose
	}
	return OutcomeOngoing
}
