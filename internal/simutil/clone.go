// Package simutil provides deep-copy helpers for the simulation's
// shared records so journals and transports never alias engine state.
package simutil

import "labyrinth-hunt/server/internal/sim"

// CloneSnapshot returns a deep copy of the provided snapshot, including
// nested player, pursuer, decision, and environment data.
func CloneSnapshot(snapshot sim.TurnSnapshot) sim.TurnSnapshot {
	return snapshot.Clone()
}

// CloneSnapshots returns a deep copy of the provided snapshot slice.
func CloneSnapshots(snapshots []sim.TurnSnapshot) []sim.TurnSnapshot {
	if len(snapshots) == 0 {
		return nil
	}
	cloned := make([]sim.TurnSnapshot, len(snapshots))
	for i, snapshot := range snapshots {
		cloned[i] = snapshot.Clone()
	}
	return cloned
}

// CloneCommand returns a deep copy of the provided command with
// independent payload storage.
func CloneCommand(cmd sim.Command) sim.Command {
	cloned := cmd
	if cmd.Move != nil {
		move := *cmd.Move
		cloned.Move = &move
	}
	if cmd.Grab != nil {
		grab := *cmd.Grab
		cloned.Grab = &grab
	}
	if cmd.Use != nil {
		use := *cmd.Use
		cloned.Use = &use
	}
	return cloned
}

// CloneCommands returns a deep copy of the provided command slice.
func CloneCommands(commands []sim.Command) []sim.Command {
	if len(commands) == 0 {
		return nil
	}
	cloned := make([]sim.Command, len(commands))
	for i, cmd := range commands {
		cloned[i] = CloneCommand(cmd)
	}
	return cloned
}

// CloneStringSlice returns a deep copy of the provided string slice.
func CloneStringSlice(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	cloned := make([]string, len(values))
	copy(cloned, values)
	return cloned
}
