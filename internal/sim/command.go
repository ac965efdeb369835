package sim

import (
	itemspkg "labyrinth-hunt/server/internal/items"
	worldpkg "labyrinth-hunt/server/internal/world"
)

// CommandType enumerates the supported player commands.
type CommandType string

const (
	CommandMove CommandType = "MOVE"
	CommandLook CommandType = "LOOK"
	CommandGrab CommandType = "GRAB"
	CommandUse  CommandType = "USE"
	CommandHalt CommandType = "HALT"
)

// Gait selects the movement mode for a MOVE command.
type Gait string

const (
	GaitWalk Gait = "walk"
	GaitRun  Gait = "run"
)

// Speed returns the cells-per-second rate of the gait.
func (g Gait) Speed() float64 {
	if g == GaitRun {
		return 2
	}
	return 1
}

// MoveCommand carries a direction, a step count, and the requested gait.
type MoveCommand struct {
	Direction worldpkg.Direction `json:"direction"`
	Distance  int                `json:"distance"`
	Gait      Gait               `json:"gait"`
}

// GrabCommand names the item being picked up.
type GrabCommand struct {
	Item string `json:"item"`
}

// UseCommand names the tool being activated.
type UseCommand struct {
	Tool string `json:"tool"`
}

// Command represents one validated player intent. Exactly one payload
// pointer is set for the command types that carry one.
type Command struct {
	Type CommandType  `json:"type"`
	Move *MoveCommand `json:"move,omitempty"`
	Grab *GrabCommand `json:"grab,omitempty"`
	Use  *UseCommand  `json:"use,omitempty"`
}

// LookCommand is the no-op fallback a malformed command degrades to.
func LookCommand() Command {
	return Command{Type: CommandLook}
}

// Rejection reasons shared between the intake validator and the engine's
// internal normalization.
const (
	ReasonUnknownCommand = "unknown_command"
	ReasonMissingPayload = "missing_payload"
	ReasonBadDirection   = "bad_direction"
	ReasonBadDistance    = "bad_distance"
	ReasonBadGait        = "bad_gait"
	ReasonUnknownItem    = "unknown_item"
	ReasonUnknownTool    = "unknown_tool"
	ReasonTerminalState  = "terminal_state"
)

// Normalize validates a command and canonicalizes its payload spelling.
// The second result is empty when the command is well formed; otherwise
// it names the defect and the caller degrades the turn to LOOK.
func Normalize(cmd Command) (Command, string) {
	switch cmd.Type {
	case CommandLook, CommandHalt:
		return Command{Type: cmd.Type}, ""
	case CommandMove:
		if cmd.Move == nil {
			return LookCommand(), ReasonMissingPayload
		}
		direction, ok := worldpkg.ParseDirection(string(cmd.Move.Direction))
		if !ok {
			return LookCommand(), ReasonBadDirection
		}
		if cmd.Move.Distance <= 0 {
			return LookCommand(), ReasonBadDistance
		}
		gait := cmd.Move.Gait
		switch gait {
		case GaitWalk, GaitRun:
		case "":
			gait = GaitWalk
		default:
			return LookCommand(), ReasonBadGait
		}
		return Command{Type: CommandMove, Move: &MoveCommand{
			Direction: direction,
			Distance:  cmd.Move.Distance,
			Gait:      gait,
		}}, ""
	case CommandGrab:
		if cmd.Grab == nil {
			return LookCommand(), ReasonMissingPayload
		}
		item, ok := itemspkg.Parse(cmd.Grab.Item)
		if !ok {
			return LookCommand(), ReasonUnknownItem
		}
		return Command{Type: CommandGrab, Grab: &GrabCommand{Item: string(item)}}, ""
	case CommandUse:
		if cmd.Use == nil {
			return LookCommand(), ReasonMissingPayload
		}
		tool, ok := itemspkg.Parse(cmd.Use.Tool)
		if !ok || !tool.Tool() {
			return LookCommand(), ReasonUnknownTool
		}
		return Command{Type: CommandUse, Use: &UseCommand{Tool: string(tool)}}, ""
	default:
		return LookCommand(), ReasonUnknownCommand
	}
}
