package sinks

import (
	"context"
	"sync"

	"labyrinth-hunt/server/logging"
)

// Memory retains events in order for tests and diagnostics.
type Memory struct {
	mu     sync.Mutex
	events []logging.Event
	limit  int
}

// NewMemory bounds retention at limit events; zero or negative means
// unbounded.
func NewMemory(limit int) *Memory {
	return &Memory{limit: limit}
}

func (m *Memory) Write(_ context.Context, event logging.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	if m.limit > 0 && len(m.events) > m.limit {
		overflow := len(m.events) - m.limit
		m.events = append([]logging.Event(nil), m.events[overflow:]...)
	}
	return nil
}

func (m *Memory) Close() error { return nil }

// Events copies the retained events.
func (m *Memory) Events() []logging.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]logging.Event(nil), m.events...)
}

// Reset clears retained events.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
