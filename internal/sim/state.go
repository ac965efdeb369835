package sim

import (
	itemspkg "labyrinth-hunt/server/internal/items"
	"labyrinth-hunt/server/internal/stats"
	worldpkg "labyrinth-hunt/server/internal/world"
)

// Mode enumerates the pursuer's behavioral states. Exactly one holds at
// any snapshot.
type Mode string

const (
	ModeActive    Mode = "ACTIVE"
	ModeVanished  Mode = "VANISHED"
	ModeParalyzed Mode = "PARALYZED"
)

// Outcome is the game result carried on every snapshot.
type Outcome string

const (
	OutcomeOngoing Outcome = "ONGOING"
	OutcomeWin     Outcome = "WIN"
	OutcomeLose    Outcome = "LOSE"
)

// Terminal reports whether the outcome closes the instance.
func (o Outcome) Terminal() bool {
	return o == OutcomeWin || o == OutcomeLose
}

// PlayerState is the complete mutable player record.
type PlayerState struct {
	Position  worldpkg.Cell      `json:"position"`
	Stamina   stats.Pool         `json:"stamina"`
	Inventory itemspkg.Inventory `json:"inventory"`
}

// Clone returns a deep copy with independent inventory storage.
func (p PlayerState) Clone() PlayerState {
	cloned := p
	cloned.Inventory = p.Inventory.Clone()
	return cloned
}

// PursuerState is the complete mutable pursuer record, including the
// timers that gate its behavior. All timestamps are absolute positions
// on the per-instance simulated clock, in seconds; zero means unset
// (or, for the cooldowns, ready since the start).
type PursuerState struct {
	Position       worldpkg.Cell  `json:"position"`
	Mode           Mode           `json:"mode"`
	ModeExpiresAt  float64        `json:"modeExpiresAt,omitempty"`
	JumpReadyAt    float64        `json:"jumpReadyAt,omitempty"`
	LanternReadyAt float64        `json:"lanternReadyAt,omitempty"`
	LanternOut     bool           `json:"lanternOut,omitempty"`
	Landing        *worldpkg.Cell `json:"landing,omitempty"`
}

// Clone returns a deep copy with an independent landing cell.
func (p PursuerState) Clone() PursuerState {
	cloned := p
	if p.Landing != nil {
		landing := *p.Landing
		cloned.Landing = &landing
	}
	return cloned
}

// Active reports whether the pursuer can move and capture.
func (p PursuerState) Active() bool {
	return p.Mode == ModeActive
}

// JumpReady reports whether the jump cooldown has lapsed at clock.
func (p PursuerState) JumpReady(clock float64) bool {
	return clock >= p.JumpReadyAt
}

// ModeRemaining reports the simulated seconds left in a timed mode.
func (p PursuerState) ModeRemaining(clock float64) float64 {
	if p.Mode == ModeActive || p.ModeExpiresAt <= clock {
		return 0
	}
	return p.ModeExpiresAt - clock
}

// LanternRemaining reports the simulated seconds until the lantern
// respawns, zero when it is in the world or held.
func (p PursuerState) LanternRemaining(clock float64) float64 {
	if !p.LanternOut || p.LanternReadyAt <= clock {
		return 0
	}
	return p.LanternReadyAt - clock
}
