// Package intake stages inbound wire messages into validated
// simulation commands. Malformed traffic is rejected here with a
// machine-readable reason; the engine behind this gate only ever sees
// well-formed commands.
package intake

import (
	"labyrinth-hunt/server/internal/net/proto"
	"labyrinth-hunt/server/internal/sim"
)

// Rejection reasons produced by staging itself, on top of the
// validation vocabulary shared with the simulation.
const (
	ReasonUnknownSession = "unknown_session"
)

// CommandContext carries the lookups staging needs. A nil HasSession
// skips the session check, which unit tests rely on.
type CommandContext struct {
	HasSession func(string) bool
}

// StageClientCommand turns a decoded envelope into a normalized
// simulation command. The boolean reports acceptance; on rejection the
// string names the defect using the shared reason vocabulary.
func StageClientCommand(ctx CommandContext, sessionID string, msg proto.ClientMessage) (sim.Command, bool, string) {
	var zero sim.Command

	command, ok := proto.ClientCommand(msg)
	if !ok {
		return zero, false, sim.ReasonUnknownCommand
	}

	normalized, defect := sim.Normalize(command)
	if defect != "" {
		return zero, false, defect
	}

	if ctx.HasSession != nil && !ctx.HasSession(sessionID) {
		return zero, false, ReasonUnknownSession
	}

	return normalized, true, ""
}
