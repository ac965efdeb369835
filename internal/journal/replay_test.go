package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"labyrinth-hunt/server/internal/sim"
	worldpkg "labyrinth-hunt/server/internal/world"
)

type frozenClock struct{}

func (frozenClock) Now() time.Time { return journalEpoch }

func replayConfig() worldpkg.Config {
	cfg := worldpkg.DefaultConfig()
	cfg.Seed = "journal-replay"
	cfg.Width = 21
	cfg.Height = 21
	cfg.Depth = 3
	return cfg.Normalized()
}

func replayScriptCommands() []sim.Command {
	return []sim.Command{
		{Type: sim.CommandMove, Move: &sim.MoveCommand{Direction: worldpkg.DirectionNorth, Distance: 3, Gait: sim.GaitRun}},
		{Type: sim.CommandLook},
		{Type: sim.CommandMove, Move: &sim.MoveCommand{Direction: worldpkg.DirectionEast, Distance: 2, Gait: sim.GaitWalk}},
		{Type: sim.CommandHalt},
		{Type: sim.CommandMove, Move: &sim.MoveCommand{Direction: worldpkg.DirectionSouth, Distance: 1, Gait: sim.GaitWalk}},
	}
}

func recordRun(t *testing.T, cfg worldpkg.Config) *Journal {
	t.Helper()
	engine, err := sim.New(cfg, sim.Deps{Clock: frozenClock{}})
	if err != nil {
		t.Fatalf("expected engine to build, got %v", err)
	}
	j := New(DefaultRetention())
	for _, cmd := range replayScriptCommands() {
		snapshot, err := engine.Advance(context.Background(), cmd)
		if err != nil {
			t.Fatalf("expected turn to advance, got %v", err)
		}
		j.Append(cmd, snapshot)
	}
	return j
}

func TestReplayReproducesRecordedRun(t *testing.T) {
	cfg := replayConfig()
	j := recordRun(t, cfg)

	script := j.Script(cfg)
	if len(script.Commands) != len(replayScriptCommands()) {
		t.Fatalf("expected script to carry %d commands, got %d", len(replayScriptCommands()), len(script.Commands))
	}

	divergent, ok, err := Verify(context.Background(), script, j.Records(), sim.Deps{Clock: frozenClock{}})
	if err != nil {
		t.Fatalf("expected replay to verify, got %v", err)
	}
	if !ok {
		t.Fatalf("expected replay to match the journal, diverged at sequence %d", divergent)
	}
}

func TestReplayDetectsConfigDrift(t *testing.T) {
	cfg := replayConfig()
	j := recordRun(t, cfg)

	script := j.Script(cfg)
	script.Config.TurnSeconds = 2

	divergent, ok, err := Verify(context.Background(), script, j.Records(), sim.Deps{Clock: frozenClock{}})
	if err != nil {
		t.Fatalf("expected drifted replay to complete, got %v", err)
	}
	if ok {
		t.Fatalf("expected drifted replay to diverge from the journal")
	}
	if divergent != 1 {
		t.Fatalf("expected divergence at sequence 1, got %d", divergent)
	}
}

func TestScriptClonesCommands(t *testing.T) {
	cfg := replayConfig()
	j := recordRun(t, cfg)

	script := j.Script(cfg)
	script.Commands[0].Move.Distance = 99

	records := j.Records()
	if records[0].Command.Move.Distance != 3 {
		t.Fatalf("expected journal command to survive script mutation, got %d", records[0].Command.Move.Distance)
	}
}

func TestReplayStopsAtTerminalInstance(t *testing.T) {
	cfg := replayConfig()
	cfg.CaptureRadius = 500

	script := Script{
		Config: cfg,
		Commands: []sim.Command{
			{Type: sim.CommandLook},
			{Type: sim.CommandLook},
		},
	}

	snapshots, err := Replay(context.Background(), script, sim.Deps{Clock: frozenClock{}})
	if err == nil {
		t.Fatalf("expected replay against a terminal instance to fail")
	}
	if !errors.Is(err, sim.ErrTerminalState) {
		t.Fatalf("expected ErrTerminalState, got %v", err)
	}
	if len(snapshots) != 0 {
		t.Fatalf("expected no snapshots from a terminal instance, got %d", len(snapshots))
	}
}
