// Package hunt defines the typed simulation events published by the
// labyrinth engine and small helpers for emitting them.
package hunt

import (
	"context"

	"labyrinth-hunt/server/logging"
)

const (
	EventSessionStarted    logging.EventType = "session.started"
	EventSessionEnded      logging.EventType = "session.ended"
	EventTurnCompleted     logging.EventType = "turn.completed"
	EventCommandRejected   logging.EventType = "turn.command_rejected"
	EventPlayerCaptured    logging.EventType = "turn.player_captured"
	EventPlayerEscaped     logging.EventType = "turn.player_escaped"
	EventPursuerVanished   logging.EventType = "pursuer.vanished"
	EventPursuerReappeared logging.EventType = "pursuer.reappeared"
	EventPursuerParalyzed  logging.EventType = "pursuer.paralyzed"
	EventPursuerRecovered  logging.EventType = "pursuer.recovered"
	EventLanternRespawned  logging.EventType = "world.lantern_respawned"
)

type SessionStartedPayload struct {
	SessionID string `json:"sessionId"`
	Seed      string `json:"seed"`
}

type SessionEndedPayload struct {
	SessionID string `json:"sessionId"`
	Outcome   string `json:"outcome"`
	Turns     uint64 `json:"turns"`
}

type TurnCompletedPayload struct {
	Command string  `json:"command"`
	Steps   int     `json:"steps"`
	Stamina float64 `json:"stamina"`
	Clock   float64 `json:"clock"`
	Outcome string  `json:"outcome"`
}

type CommandRejectedPayload struct {
	Command string `json:"command"`
	Reason  string `json:"reason"`
}

type PursuerModePayload struct {
	Mode    string  `json:"mode"`
	Until   float64 `json:"until,omitempty"`
	Clock   float64 `json:"clock"`
	Trigger string  `json:"trigger,omitempty"`
}

type TerminalPayload struct {
	Outcome string  `json:"outcome"`
	Turns   uint64  `json:"turns"`
	Clock   float64 `json:"clock"`
}

type LanternRespawnedPayload struct {
	Clock float64 `json:"clock"`
}

func SessionStarted(ctx context.Context, pub logging.Publisher, turn uint64, sessionID string, payload SessionStartedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventSessionStarted,
		Turn:     turn,
		Actor:    logging.EntityRef{ID: sessionID, Kind: logging.EntityKindSession},
		Severity: logging.SeverityInfo,
		Category: logging.CategorySession,
		Payload:  payload,
	})
}

func SessionEnded(ctx context.Context, pub logging.Publisher, turn uint64, sessionID string, payload SessionEndedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventSessionEnded,
		Turn:     turn,
		Actor:    logging.EntityRef{ID: sessionID, Kind: logging.EntityKindSession},
		Severity: logging.SeverityInfo,
		Category: logging.CategorySession,
		Payload:  payload,
	})
}

func TurnCompleted(ctx context.Context, pub logging.Publisher, turn uint64, playerID string, payload TurnCompletedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventTurnCompleted,
		Turn:     turn,
		Actor:    logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryTurn,
		Payload:  payload,
	})
}

func CommandRejected(ctx context.Context, pub logging.Publisher, turn uint64, playerID string, payload CommandRejectedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventCommandRejected,
		Turn:     turn,
		Actor:    logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer},
		Severity: logging.SeverityWarn,
		Category: logging.CategoryTurn,
		Payload:  payload,
	})
}

func PlayerCaptured(ctx context.Context, pub logging.Publisher, turn uint64, playerID string, payload TerminalPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventPlayerCaptured,
		Turn:     turn,
		Actor:    logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryTurn,
		Payload:  payload,
	})
}

func PlayerEscaped(ctx context.Context, pub logging.Publisher, turn uint64, playerID string, payload TerminalPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventPlayerEscaped,
		Turn:     turn,
		Actor:    logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryTurn,
		Payload:  payload,
	})
}

func PursuerVanished(ctx context.Context, pub logging.Publisher, turn uint64, pursuerID string, payload PursuerModePayload) {
	publishPursuer(ctx, pub, EventPursuerVanished, turn, pursuerID, payload)
}

func PursuerReappeared(ctx context.Context, pub logging.Publisher, turn uint64, pursuerID string, payload PursuerModePayload) {
	publishPursuer(ctx, pub, EventPursuerReappeared, turn, pursuerID, payload)
}

func PursuerParalyzed(ctx context.Context, pub logging.Publisher, turn uint64, pursuerID string, payload PursuerModePayload) {
	publishPursuer(ctx, pub, EventPursuerParalyzed, turn, pursuerID, payload)
}

func PursuerRecovered(ctx context.Context, pub logging.Publisher, turn uint64, pursuerID string, payload PursuerModePayload) {
	publishPursuer(ctx, pub, EventPursuerRecovered, turn, pursuerID, payload)
}

func LanternRespawned(ctx context.Context, pub logging.Publisher, turn uint64, payload LanternRespawnedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventLanternRespawned,
		Turn:     turn,
		Actor:    logging.EntityRef{ID: "world", Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryTurn,
		Payload:  payload,
	})
}

func publishPursuer(ctx context.Context, pub logging.Publisher, eventType logging.EventType, turn uint64, pursuerID string, payload PursuerModePayload) {
	publish(ctx, pub, logging.Event{
		Type:     eventType,
		Turn:     turn,
		Actor:    logging.EntityRef{ID: pursuerID, Kind: logging.EntityKindPursuer},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryPursuer,
		Payload:  payload,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
