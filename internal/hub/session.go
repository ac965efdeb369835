package hub

import (
	"context"
	"sync"

	"labyrinth-hunt/server/internal/journal"
	"labyrinth-hunt/server/internal/sim"
	worldpkg "labyrinth-hunt/server/internal/world"
)

// Session binds one engine instance to its turn journal. The mutex
// orders Advance and the journal append as a unit so the log always
// matches the engine's turn sequence, even with a reconnecting client
// racing a stale socket.
type Session struct {
	id      string
	ordinal uint64

	mu      sync.Mutex
	engine  sim.Engine
	journal *journal.Journal
}

// ID returns the session identifier handed to clients.
func (s *Session) ID() string {
	return s.id
}

// Config reports the configuration the session's instance runs on.
func (s *Session) Config() worldpkg.Config {
	return s.engine.Config()
}

// Latest returns the snapshot of the most recently completed turn.
func (s *Session) Latest() sim.TurnSnapshot {
	return s.engine.Latest()
}

// Advance runs one turn and journals the result. Terminal instances
// return sim.ErrTerminalState and journal nothing.
func (s *Session) Advance(ctx context.Context, cmd sim.Command) (sim.TurnSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, err := s.engine.Advance(ctx, cmd)
	if err != nil {
		return sim.TurnSnapshot{}, err
	}
	s.journal.Append(cmd, snapshot)
	return snapshot, nil
}

// JournalWindow returns up to limit journaled turns after sequence
// since, oldest first.
func (s *Session) JournalWindow(since uint64, limit int) []journal.Record {
	return s.journal.Window(since, limit)
}

// JournalBounds reports the retained journal window.
func (s *Session) JournalBounds() (size int, oldest, newest uint64) {
	return s.journal.Bounds()
}

// Script derives the replay script for the retained journal window.
func (s *Session) Script() journal.Script {
	return s.journal.Script(s.engine.Config())
}
