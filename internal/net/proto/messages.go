// Package proto defines the version-1 wire contracts: the flat client
// envelope, the redacted turn result views, and the encode helpers the
// transport layer renders frames with. The pursuer's position never
// appears in any outbound type; clients learn about the hunter only
// through the audio band, the cue text, and the decision trace.
package proto

import (
	"encoding/json"
	"fmt"
	"strings"

	"labyrinth-hunt/server/internal/sim"
	worldpkg "labyrinth-hunt/server/internal/world"
)

const (
	// Version tracks the wire-protocol revision expected by clients.
	Version = 1

	// Type identifiers for outbound websocket payloads.
	typeCommandAck    = "commandAck"
	typeCommandReject = "commandReject"
	typeHeartbeat     = "heartbeat"
	typeTurnResult    = "turnResult"
	typeJournal       = "journal"
	typeError         = "error"
)

// Client message type identifiers.
const (
	TypeCommand         = "command"
	TypeSnapshotRequest = "snapshotRequest"
	TypeJournalRequest  = "journalRequest"
	TypeHeartbeat       = "heartbeat"
)

// Exported aliases for outbound message type identifiers.
const (
	TypeTurnResult = typeTurnResult
	TypeJournal    = typeJournal
	TypeError      = typeError
)

// ClientMessage captures an inbound websocket message from the client.
// Command payload fields sit flat on the envelope; which ones matter
// depends on the command verb.
type ClientMessage struct {
	Ver       int     `json:"ver,omitempty"`
	Type      string  `json:"type"`
	Seq       *uint64 `json:"seq,omitempty"`
	Command   string  `json:"command,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Distance  int     `json:"distance,omitempty"`
	Gait      string  `json:"gait,omitempty"`
	Item      string  `json:"item,omitempty"`
	Tool      string  `json:"tool,omitempty"`
	SentAt    int64   `json:"sentAt,omitempty"`
	Since     uint64  `json:"since,omitempty"`
	Limit     int     `json:"limit,omitempty"`
}

// DecodeClientMessage converts raw websocket payloads into a structured message.
func DecodeClientMessage(payload []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg, err
	}
	if msg.Ver == 0 {
		msg.Ver = Version
	}
	if msg.Ver != Version {
		return msg, fmt.Errorf("unsupported client protocol version %d", msg.Ver)
	}
	return msg, nil
}

// ClientCommand maps the envelope onto a simulation command. The second
// result is false when the message is not a command frame at all;
// semantic validation of the payload is the intake layer's job. A MOVE
// with no distance means one step, a USE with no tool means the lantern.
func ClientCommand(msg ClientMessage) (sim.Command, bool) {
	if msg.Type != TypeCommand {
		return sim.Command{}, false
	}
	switch strings.ToUpper(strings.TrimSpace(msg.Command)) {
	case string(sim.CommandMove):
		distance := msg.Distance
		if distance == 0 {
			distance = 1
		}
		return sim.Command{
			Type: sim.CommandMove,
			Move: &sim.MoveCommand{
				Direction: worldpkg.Direction(msg.Direction),
				Distance:  distance,
				Gait:      sim.Gait(strings.ToLower(strings.TrimSpace(msg.Gait))),
			},
		}, true
	case string(sim.CommandLook):
		return sim.Command{Type: sim.CommandLook}, true
	case string(sim.CommandGrab):
		return sim.Command{
			Type: sim.CommandGrab,
			Grab: &sim.GrabCommand{Item: msg.Item},
		}, true
	case string(sim.CommandUse):
		tool := strings.TrimSpace(msg.Tool)
		if tool == "" {
			tool = "LANTERN"
		}
		return sim.Command{
			Type: sim.CommandUse,
			Use:  &sim.UseCommand{Tool: tool},
		}, true
	case string(sim.CommandHalt):
		return sim.Command{Type: sim.CommandHalt}, true
	default:
		return sim.Command{}, false
	}
}

// CommandAck describes an acknowledgement of a processed command.
type CommandAck struct {
	Seq      uint64
	Sequence uint64
}

// EncodeCommandAck renders a command acknowledgement response.
func EncodeCommandAck(msg CommandAck) ([]byte, error) {
	frame := struct {
		Ver      int    `json:"ver"`
		Type     string `json:"type"`
		Seq      uint64 `json:"seq"`
		Sequence uint64 `json:"sequence,omitempty"`
	}{
		Ver:  Version,
		Type: typeCommandAck,
		Seq:  msg.Seq,
	}
	if msg.Sequence > 0 {
		frame.Sequence = msg.Sequence
	}
	return json.Marshal(frame)
}

// CommandReject notifies the client that a command was refused.
type CommandReject struct {
	Seq      uint64
	Reason   string
	Retry    bool
	Sequence uint64
}

// EncodeCommandReject renders a command rejection response.
func EncodeCommandReject(msg CommandReject) ([]byte, error) {
	frame := struct {
		Ver      int    `json:"ver"`
		Type     string `json:"type"`
		Seq      uint64 `json:"seq"`
		Reason   string `json:"reason"`
		Retry    bool   `json:"retry,omitempty"`
		Sequence uint64 `json:"sequence,omitempty"`
	}{
		Ver:    Version,
		Type:   typeCommandReject,
		Seq:    msg.Seq,
		Reason: msg.Reason,
	}
	if msg.Retry {
		frame.Retry = true
	}
	if msg.Sequence > 0 {
		frame.Sequence = msg.Sequence
	}
	return json.Marshal(frame)
}

// Heartbeat echoes timing metadata back to the client.
type Heartbeat struct {
	ServerTime int64
	ClientTime int64
	RTTMillis  int64
}

// EncodeHeartbeat renders a heartbeat acknowledgement payload.
func EncodeHeartbeat(msg Heartbeat) ([]byte, error) {
	frame := struct {
		Ver        int    `json:"ver"`
		Type       string `json:"type"`
		ServerTime int64  `json:"serverTime"`
		ClientTime int64  `json:"clientTime"`
		RTTMillis  int64  `json:"rtt"`
	}{
		Ver:        Version,
		Type:       typeHeartbeat,
		ServerTime: msg.ServerTime,
		ClientTime: msg.ClientTime,
		RTTMillis:  msg.RTTMillis,
	}
	return json.Marshal(frame)
}

// ErrorV1 carries a transport-level failure to the client.
type ErrorV1 struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EncodeError renders an error payload.
func EncodeError(msg ErrorV1) ([]byte, error) {
	frame := struct {
		Ver     int    `json:"ver"`
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Ver:     Version,
		Type:    typeError,
		Code:    msg.Code,
		Message: msg.Message,
	}
	return json.Marshal(frame)
}

// PlayerViewV1 is the client-facing player record.
type PlayerViewV1 struct {
	Position  worldpkg.Cell `json:"position"`
	Stamina   float64       `json:"stamina"`
	Inventory []string      `json:"inventory,omitempty"`
}

// EnvironmentViewV1 is the client-facing observation record.
type EnvironmentViewV1 struct {
	VisiblePaths []string `json:"visiblePaths"`
	VisibleItems []string `json:"visibleItems,omitempty"`
	AudioBand    string   `json:"audioBand"`
}

// PursuerTraceV1 is everything a client may learn about the hunter:
// its behavioral mode, the remaining seconds of a timed mode, the last
// decision kind, and the audio cue. It deliberately has no position
// field, and the decision trace drops the decision's target cell.
type PursuerTraceV1 struct {
	Decision      string  `json:"decision"`
	Mode          string  `json:"mode"`
	ModeRemaining float64 `json:"modeRemaining,omitempty"`
	AudioBand     string  `json:"audioBand"`
	Cue           string  `json:"cue,omitempty"`
}

// TurnResultV1 captures the version 1 turn result payload layout.
type TurnResultV1 struct {
	Ver         int               `json:"ver"`
	Type        string            `json:"type"`
	Sequence    uint64            `json:"sequence"`
	Clock       float64           `json:"clock"`
	Outcome     string            `json:"outcome"`
	Player      PlayerViewV1      `json:"player"`
	Environment EnvironmentViewV1 `json:"environment"`
	Pursuer     PursuerTraceV1    `json:"pursuer"`
	StepsMoved  int               `json:"stepsMoved,omitempty"`
	TimeTaken   float64           `json:"timeTaken,omitempty"`
	StopReason  string            `json:"stopReason"`
	Narrative   string            `json:"narrative"`
	Annotations []string          `json:"annotations,omitempty"`
	ServerTime  int64             `json:"serverTime,omitempty"`
}

// ProtoTurnResult tags the struct as a websocket turn result payload.
func (TurnResultV1) ProtoTurnResult() {}

// TurnResultFromSnapshot builds the redacted client view of a completed
// turn. This is the only place snapshot state crosses into the wire
// layer, so the redaction invariant is enforced here.
func TurnResultFromSnapshot(snapshot sim.TurnSnapshot) TurnResultV1 {
	player := PlayerViewV1{
		Position: snapshot.Player.Position,
		Stamina:  snapshot.Player.Stamina.Current,
	}
	for _, id := range snapshot.Player.Inventory.List() {
		player.Inventory = append(player.Inventory, string(id))
	}

	env := EnvironmentViewV1{
		VisiblePaths: make([]string, 0, len(snapshot.Environment.VisiblePaths)),
		AudioBand:    string(snapshot.Environment.AudioBand),
	}
	for _, direction := range snapshot.Environment.VisiblePaths {
		env.VisiblePaths = append(env.VisiblePaths, string(direction))
	}
	for _, id := range snapshot.Environment.VisibleItems {
		env.VisibleItems = append(env.VisibleItems, string(id))
	}

	return TurnResultV1{
		Ver:         Version,
		Type:        typeTurnResult,
		Sequence:    snapshot.Sequence,
		Clock:       snapshot.Clock,
		Outcome:     string(snapshot.Outcome),
		Player:      player,
		Environment: env,
		Pursuer: PursuerTraceV1{
			Decision:      string(snapshot.Decision.Kind),
			Mode:          string(snapshot.Pursuer.Mode),
			ModeRemaining: snapshot.Pursuer.ModeRemaining(snapshot.Clock),
			AudioBand:     string(snapshot.Environment.AudioBand),
			Cue:           snapshot.Cue,
		},
		StepsMoved:  snapshot.StepsMoved,
		TimeTaken:   snapshot.TimeTaken,
		StopReason:  string(snapshot.StopReason),
		Narrative:   snapshot.Narrative,
		Annotations: append([]string(nil), snapshot.Annotations...),
	}
}

type turnResult interface {
	ProtoTurnResult()
}

// EncodeTurnResult renders a turn result payload.
func EncodeTurnResult(msg turnResult) ([]byte, error) {
	switch payload := msg.(type) {
	case TurnResultV1:
		return EncodeTurnResultV1(payload)
	case *TurnResultV1:
		if payload == nil {
			return json.Marshal(payload)
		}
		return EncodeTurnResultV1(*payload)
	default:
		return json.Marshal(msg)
	}
}

// EncodeTurnResultV1 renders a versioned turn result payload.
func EncodeTurnResultV1(msg TurnResultV1) ([]byte, error) {
	if msg.Type == "" {
		msg.Type = typeTurnResult
	}
	msg.Ver = Version
	return json.Marshal(msg)
}

// JoinResponseV1 captures the version 1 join response layout.
type JoinResponseV1 struct {
	Ver     int             `json:"ver"`
	ID      string          `json:"id"`
	Config  worldpkg.Config `json:"config"`
	Initial TurnResultV1    `json:"initial"`
}

// ProtoJoinResponse tags the struct as a join response payload.
func (JoinResponseV1) ProtoJoinResponse() {}

type joinResponse interface {
	ProtoJoinResponse()
}

// EncodeJoinResponse renders a join response payload.
func EncodeJoinResponse(msg joinResponse) ([]byte, error) {
	switch payload := msg.(type) {
	case JoinResponseV1:
		return EncodeJoinResponseV1(payload)
	case *JoinResponseV1:
		if payload == nil {
			return json.Marshal(payload)
		}
		return EncodeJoinResponseV1(*payload)
	default:
		return json.Marshal(msg)
	}
}

// EncodeJoinResponseV1 renders a versioned join response payload.
func EncodeJoinResponseV1(msg JoinResponseV1) ([]byte, error) {
	msg.Ver = Version
	return json.Marshal(msg)
}

// CommandEchoV1 is the client-facing form of a journaled command.
type CommandEchoV1 struct {
	Command   string `json:"command"`
	Direction string `json:"direction,omitempty"`
	Distance  int    `json:"distance,omitempty"`
	Gait      string `json:"gait,omitempty"`
	Item      string `json:"item,omitempty"`
	Tool      string `json:"tool,omitempty"`
}

// CommandEcho flattens a simulation command back onto the wire shape.
func CommandEcho(cmd sim.Command) CommandEchoV1 {
	echo := CommandEchoV1{Command: string(cmd.Type)}
	if cmd.Move != nil {
		echo.Direction = string(cmd.Move.Direction)
		echo.Distance = cmd.Move.Distance
		echo.Gait = string(cmd.Move.Gait)
	}
	if cmd.Grab != nil {
		echo.Item = cmd.Grab.Item
	}
	if cmd.Use != nil {
		echo.Tool = cmd.Use.Tool
	}
	return echo
}

// JournalEntryV1 pairs a journaled command with its redacted result.
type JournalEntryV1 struct {
	Command CommandEchoV1 `json:"command"`
	Result  TurnResultV1  `json:"result"`
}

// JournalV1 captures the version 1 journal window payload layout.
// Truncated signals that records older than the requested cursor were
// already evicted, so the client should fall back to a snapshot.
type JournalV1 struct {
	Ver       int              `json:"ver"`
	Type      string           `json:"type"`
	Since     uint64           `json:"since"`
	Entries   []JournalEntryV1 `json:"entries"`
	Truncated bool             `json:"truncated,omitempty"`
}

// ProtoJournal tags the struct as a journal window payload.
func (JournalV1) ProtoJournal() {}

// EncodeJournalV1 renders a versioned journal window payload.
func EncodeJournalV1(msg JournalV1) ([]byte, error) {
	if msg.Type == "" {
		msg.Type = typeJournal
	}
	msg.Ver = Version
	return json.Marshal(msg)
}
