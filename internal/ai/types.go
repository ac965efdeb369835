// Package ai decides what the pursuer does each turn and resolves the
// movement those decisions imply.
package ai

import worldpkg "labyrinth-hunt/server/internal/world"

// Kind enumerates the pursuer intents the decision policy can produce.
// The values match the wire vocabulary exposed in turn snapshots.
type Kind string

const (
	Wait     Kind = "WAIT"
	Chase    Kind = "CHASE"
	Pathfind Kind = "PATHFIND"
	Jump     Kind = "JUMP"
)

// Decision is the pursuer's resolved intent for a single turn. Target
// carries the cell being moved toward for CHASE and PATHFIND, and the
// relocation landing for JUMP; it is nil for WAIT.
type Decision struct {
	Kind   Kind           `json:"action"`
	Target *worldpkg.Cell `json:"targetCoords,omitempty"`
}

// WaitDecision is the no-op decision used whenever the policy cannot or
// must not act.
func WaitDecision() Decision {
	return Decision{Kind: Wait}
}
