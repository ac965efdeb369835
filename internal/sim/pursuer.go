package sim

import (
	"math/rand"

	worldpkg "labyrinth-hunt/server/internal/world"
)

// pursuerTransition names a state machine edge taken while expiring
// timers, so the engine can publish the matching events.
type pursuerTransition string

const (
	transitionReappeared pursuerTransition = "reappeared"
	transitionRecovered  pursuerTransition = "recovered"
)

// applyJump moves the pursuer into VANISHED: duration sampled uniformly
// from the configured window, jump cooldown started, and the landing
// committed now so the reappearance is already decided when the timer
// runs out. Rejected while the pursuer is not ACTIVE or the cooldown
// has not lapsed.
func applyJump(p *PursuerState, clock float64, landing worldpkg.Cell, rng *rand.Rand, cfg worldpkg.Config) bool {
	if p == nil || !p.Active() || !p.JumpReady(clock) {
		return false
	}
	p.Mode = ModeVanished
	p.ModeExpiresAt = clock + worldpkg.RandomSeconds(rng, cfg.VanishMinSeconds, cfg.VanishMaxSeconds)
	p.JumpReadyAt = clock + cfg.JumpCooldownSeconds
	p.Landing = &landing
	return true
}

// applyParalysis moves the pursuer into PARALYZED for the fixed
// duration. Rejected while the pursuer is not ACTIVE: a vanished or
// paralyzed pursuer cannot be targeted again.
func applyParalysis(p *PursuerState, clock float64, cfg worldpkg.Config) bool {
	if p == nil || !p.Active() {
		return false
	}
	p.Mode = ModeParalyzed
	p.ModeExpiresAt = clock + cfg.ParalysisSeconds
	return true
}

// expireMode returns the pursuer to ACTIVE once its mode timer lapses.
// A vanished pursuer reappears at the landing chosen at jump time; a
// paralyzed pursuer stays exactly where it froze.
func expireMode(p *PursuerState, clock float64) (pursuerTransition, bool) {
	if p == nil || p.Active() || clock < p.ModeExpiresAt {
		return "", false
	}
	mode := p.Mode
	p.Mode = ModeActive
	p.ModeExpiresAt = 0
	if mode == ModeVanished {
		if p.Landing != nil {
			p.Position = *p.Landing
			p.Landing = nil
		}
		return transitionReappeared, true
	}
	return transitionRecovered, true
}
