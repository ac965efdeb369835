// Package hub owns the live game sessions. Each session wraps one
// engine instance and its turn journal; the hub hands sessions out to
// the transport layer and enforces the concurrent-session limit.
package hub

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"labyrinth-hunt/server/internal/journal"
	"labyrinth-hunt/server/internal/sim"
	worldpkg "labyrinth-hunt/server/internal/world"
	"labyrinth-hunt/server/logging/hunt"
)

// DefaultSessionLimit caps concurrent sessions when the config leaves
// the limit unset.
const DefaultSessionLimit = 64

// ErrSessionLimit reports that the hub is full and no terminal session
// could be evicted to make room.
var ErrSessionLimit = errors.New("session limit reached")

// Config shapes hub behavior. Base is the template configuration new
// sessions start from; overrides arrive merged into it via Join.
type Config struct {
	SessionLimit int
	Base         worldpkg.Config
	Retention    journal.Retention
}

func (cfg Config) normalized() Config {
	if cfg.SessionLimit <= 0 {
		cfg.SessionLimit = DefaultSessionLimit
	}
	cfg.Base = cfg.Base.Normalized()
	return cfg
}

// Hub creates, tracks, and retires sessions.
type Hub struct {
	cfg  Config
	deps sim.Deps

	mu       sync.RWMutex
	sessions map[string]*Session

	nextID atomic.Uint64
}

// New constructs an empty hub.
func New(cfg Config, deps sim.Deps) *Hub {
	return &Hub{
		cfg:      cfg.normalized(),
		deps:     deps,
		sessions: make(map[string]*Session),
	}
}

// BaseConfig returns the template configuration sessions start from.
func (h *Hub) BaseConfig() worldpkg.Config {
	return h.cfg.Base
}

// Join creates a session running the supplied configuration. An empty
// seed derives a per-session seed from the base seed and the session
// counter, so concurrent sessions get distinct but reproducible mazes.
// When the hub is full, the oldest terminal session is evicted to make
// room; with no terminal session to evict, Join fails.
func (h *Hub) Join(ctx context.Context, cfg worldpkg.Config) (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.sessions) >= h.cfg.SessionLimit && !h.evictTerminalLocked(ctx) {
		h.deps.Metrics.TelemetryAdd("sessions_rejected_total", 1)
		return nil, ErrSessionLimit
	}

	id := h.nextID.Add(1)
	if cfg.Seed == "" {
		cfg.Seed = fmt.Sprintf("%s-%d", h.cfg.Base.Seed, id)
	}
	cfg = cfg.Normalized()

	engine, err := sim.New(cfg, h.deps)
	if err != nil {
		return nil, fmt.Errorf("build session engine: %w", err)
	}

	session := &Session{
		id:      fmt.Sprintf("session-%d", id),
		ordinal: id,
		engine:  engine,
		journal: journal.New(h.cfg.Retention),
	}
	h.sessions[session.id] = session

	h.deps.Metrics.TelemetryAdd("sessions_started_total", 1)
	hunt.SessionStarted(ctx, h.deps.Publisher, 0, session.id, hunt.SessionStartedPayload{
		SessionID: session.id,
		Seed:      cfg.Seed,
	})
	return session, nil
}

// evictTerminalLocked removes the oldest session whose game has ended.
// Returns false when every session is still live.
func (h *Hub) evictTerminalLocked(ctx context.Context) bool {
	var victim *Session
	for _, session := range h.sessions {
		if !session.Latest().Outcome.Terminal() {
			continue
		}
		if victim == nil || session.ordinal < victim.ordinal {
			victim = session
		}
	}
	if victim == nil {
		return false
	}
	h.endLocked(ctx, victim)
	h.deps.Metrics.TelemetryAdd("sessions_evicted_total", 1)
	return true
}

// Session returns the live session with the given id.
func (h *Hub) Session(id string) (*Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	session, ok := h.sessions[id]
	return session, ok
}

// Has reports whether the id names a live session.
func (h *Hub) Has(id string) bool {
	_, ok := h.Session(id)
	return ok
}

// Len reports the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// End retires the named session and reports whether it existed.
func (h *Hub) End(ctx context.Context, id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	session, ok := h.sessions[id]
	if !ok {
		return false
	}
	h.endLocked(ctx, session)
	return true
}

func (h *Hub) endLocked(ctx context.Context, session *Session) {
	delete(h.sessions, session.id)
	latest := session.Latest()
	h.deps.Metrics.TelemetryAdd("sessions_ended_total", 1)
	hunt.SessionEnded(ctx, h.deps.Publisher, latest.Sequence, session.id, hunt.SessionEndedPayload{
		SessionID: session.id,
		Outcome:   string(latest.Outcome),
		Turns:     latest.Sequence,
	})
}

// Close retires every session. Used during server shutdown.
func (h *Hub) Close(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, session := range h.sessions {
		h.endLocked(ctx, session)
	}
}

// SessionDiagnostics summarizes one session for the diagnostics
// endpoint. It carries no pursuer state.
type SessionDiagnostics struct {
	ID          string  `json:"id"`
	Outcome     string  `json:"outcome"`
	Sequence    uint64  `json:"sequence"`
	Clock       float64 `json:"clock"`
	JournalSize int     `json:"journalSize"`
}

// DiagnosticsSnapshot is the hub section of the diagnostics endpoint.
type DiagnosticsSnapshot struct {
	Count    int                  `json:"count"`
	Limit    int                  `json:"limit"`
	Sessions []SessionDiagnostics `json:"sessions,omitempty"`
}

// Diagnostics reports the live session set ordered by creation.
func (h *Hub) Diagnostics() DiagnosticsSnapshot {
	h.mu.RLock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, session := range h.sessions {
		sessions = append(sessions, session)
	}
	limit := h.cfg.SessionLimit
	h.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].ordinal < sessions[j].ordinal })

	snapshot := DiagnosticsSnapshot{Count: len(sessions), Limit: limit}
	for _, session := range sessions {
		latest := session.Latest()
		size, _, _ := session.JournalBounds()
		snapshot.Sessions = append(snapshot.Sessions, SessionDiagnostics{
			ID:          session.id,
			Outcome:     string(latest.Outcome),
			Sequence:    latest.Sequence,
			Clock:       latest.Clock,
			JournalSize: size,
		})
	}
	return snapshot
}
