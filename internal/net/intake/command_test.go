package intake

import (
	"testing"

	"labyrinth-hunt/server/internal/net/proto"
	"labyrinth-hunt/server/internal/sim"
	worldpkg "labyrinth-hunt/server/internal/world"
)

func stagingContext(known string) CommandContext {
	return CommandContext{
		HasSession: func(id string) bool { return id == known },
	}
}

func TestStageClientCommandAcceptsMove(t *testing.T) {
	msg := proto.ClientMessage{
		Type:      proto.TypeCommand,
		Command:   "move",
		Direction: "NORTH",
		Gait:      "run",
	}

	cmd, ok, reason := StageClientCommand(stagingContext("session-1"), "session-1", msg)
	if !ok {
		t.Fatalf("expected command to be accepted, got reason %q", reason)
	}
	if cmd.Type != sim.CommandMove {
		t.Fatalf("expected move command, got %q", cmd.Type)
	}
	if cmd.Move == nil {
		t.Fatalf("expected move payload")
	}
	if cmd.Move.Direction != worldpkg.DirectionNorth {
		t.Fatalf("expected canonical direction, got %q", cmd.Move.Direction)
	}
	if cmd.Move.Distance != 1 {
		t.Fatalf("expected default distance 1, got %d", cmd.Move.Distance)
	}
	if cmd.Move.Gait != sim.GaitRun {
		t.Fatalf("expected run gait, got %q", cmd.Move.Gait)
	}
}

func TestStageClientCommandNormalizesItemSpelling(t *testing.T) {
	msg := proto.ClientMessage{
		Type:    proto.TypeCommand,
		Command: "GRAB",
		Item:    "red   stone",
	}

	cmd, ok, reason := StageClientCommand(stagingContext("session-1"), "session-1", msg)
	if !ok {
		t.Fatalf("expected grab to be accepted, got reason %q", reason)
	}
	if cmd.Grab == nil || cmd.Grab.Item != "RED STONE" {
		t.Fatalf("expected canonical item spelling, got %+v", cmd.Grab)
	}
}

func TestStageClientCommandRejections(t *testing.T) {
	cases := []struct {
		name   string
		msg    proto.ClientMessage
		reason string
	}{
		{
			name:   "unknown verb",
			msg:    proto.ClientMessage{Type: proto.TypeCommand, Command: "FLY"},
			reason: sim.ReasonUnknownCommand,
		},
		{
			name:   "not a command frame",
			msg:    proto.ClientMessage{Type: proto.TypeHeartbeat},
			reason: sim.ReasonUnknownCommand,
		},
		{
			name:   "bad direction",
			msg:    proto.ClientMessage{Type: proto.TypeCommand, Command: "MOVE", Direction: "sideways"},
			reason: sim.ReasonBadDirection,
		},
		{
			name:   "bad distance",
			msg:    proto.ClientMessage{Type: proto.TypeCommand, Command: "MOVE", Direction: "north", Distance: -2},
			reason: sim.ReasonBadDistance,
		},
		{
			name:   "bad gait",
			msg:    proto.ClientMessage{Type: proto.TypeCommand, Command: "MOVE", Direction: "north", Gait: "sprint"},
			reason: sim.ReasonBadGait,
		},
		{
			name:   "unknown item",
			msg:    proto.ClientMessage{Type: proto.TypeCommand, Command: "GRAB", Item: "GREEN STONE"},
			reason: sim.ReasonUnknownItem,
		},
		{
			name:   "unknown tool",
			msg:    proto.ClientMessage{Type: proto.TypeCommand, Command: "USE", Tool: "RED STONE"},
			reason: sim.ReasonUnknownTool,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok, reason := StageClientCommand(stagingContext("session-1"), "session-1", tc.msg)
			if ok {
				t.Fatalf("expected rejection")
			}
			if reason != tc.reason {
				t.Fatalf("expected reason %q, got %q", tc.reason, reason)
			}
		})
	}
}

func TestStageClientCommandRejectsUnknownSession(t *testing.T) {
	msg := proto.ClientMessage{Type: proto.TypeCommand, Command: "LOOK"}

	_, ok, reason := StageClientCommand(stagingContext("session-1"), "session-9", msg)
	if ok {
		t.Fatalf("expected rejection for unknown session")
	}
	if reason != ReasonUnknownSession {
		t.Fatalf("expected reason %q, got %q", ReasonUnknownSession, reason)
	}
}

func TestStageClientCommandSkipsNilSessionCheck(t *testing.T) {
	msg := proto.ClientMessage{Type: proto.TypeCommand, Command: "HALT"}

	cmd, ok, reason := StageClientCommand(CommandContext{}, "anyone", msg)
	if !ok {
		t.Fatalf("expected acceptance without a session check, got reason %q", reason)
	}
	if cmd.Type != sim.CommandHalt {
		t.Fatalf("expected halt command, got %q", cmd.Type)
	}
}
