package journal

import (
	"context"
	"fmt"
	"reflect"

	"labyrinth-hunt/server/internal/sim"
	"labyrinth-hunt/server/internal/simutil"
	worldpkg "labyrinth-hunt/server/internal/world"
)

// Script is the portable reproduction recipe for a recorded run: the
// instance configuration (seed included) plus the ordered commands.
// Feeding a script to Replay on any build yields the recorded turns.
type Script struct {
	Config   worldpkg.Config `json:"config"`
	Commands []sim.Command   `json:"commands"`
}

// Script derives the replay script for the retained window. The config
// must be the one the recording instance ran on; the journal does not
// store it per record.
func (j *Journal) Script(cfg worldpkg.Config) Script {
	j.mu.RLock()
	defer j.mu.RUnlock()
	commands := make([]sim.Command, 0, len(j.records))
	for _, record := range j.records {
		commands = append(commands, simutil.CloneCommand(record.Command))
	}
	if len(commands) == 0 {
		commands = nil
	}
	return Script{Config: cfg.Normalized(), Commands: commands}
}

// Replay rebuilds a fresh instance from the script's config and drives
// it through the recorded commands, returning one snapshot per turn. A
// command that lands after the instance turned terminal means the
// script does not match the config it claims; that is reported as an
// error rather than silently truncated.
func Replay(ctx context.Context, script Script, deps sim.Deps) ([]sim.TurnSnapshot, error) {
	engine, err := sim.New(script.Config, deps)
	if err != nil {
		return nil, err
	}
	snapshots := make([]sim.TurnSnapshot, 0, len(script.Commands))
	for i, cmd := range script.Commands {
		snapshot, err := engine.Advance(ctx, cmd)
		if err != nil {
			return snapshots, fmt.Errorf("replay turn %d: %w", i+1, err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

// Verify replays the script and compares each produced snapshot against
// the recorded one, ignoring wall-clock stamps. It returns the sequence
// number of the first divergent turn, or an error when the replay
// itself fails or the record counts differ.
func Verify(ctx context.Context, script Script, records []Record, deps sim.Deps) (uint64, bool, error) {
	snapshots, err := Replay(ctx, script, deps)
	if err != nil {
		return 0, false, err
	}
	if len(snapshots) != len(records) {
		return 0, false, fmt.Errorf("replay produced %d turns, journal holds %d", len(snapshots), len(records))
	}
	for i, record := range records {
		if !snapshotsEquivalent(snapshots[i], record.Snapshot) {
			return record.Snapshot.Sequence, false, nil
		}
	}
	return 0, true, nil
}

// snapshotsEquivalent compares two snapshots for simulation equality.
// RecordedAt is a wall-clock stamp, not simulation state, so it is
// excluded from the comparison.
func snapshotsEquivalent(a, b sim.TurnSnapshot) bool {
	a.RecordedAt = b.RecordedAt
	return reflect.DeepEqual(a, b)
}
