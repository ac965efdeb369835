package logging_test

import (
	"context"
	"testing"
	"time"

	"labyrinth-hunt/server/logging"
	"labyrinth-hunt/server/logging/sinks"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newTestRouter(t *testing.T, cfg logging.Config) (*logging.Router, *sinks.Memory) {
	t.Helper()
	memory := sinks.NewMemory(0)
	cfg.Sinks = []string{"memory"}
	router := logging.NewRouter(fixedClock{now: time.Unix(1700000000, 0)}, cfg, []logging.NamedSink{
		{Name: "memory", Sink: memory},
	})
	return router, memory
}

func waitForEvents(t *testing.T, memory *sinks.Memory, want int) []logging.Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		events := memory.Events()
		if len(events) >= want {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d events, got %d", want, len(memory.Events()))
	return nil
}

func TestRouterDeliversToMemorySink(t *testing.T) {
	router, memory := newTestRouter(t, logging.DefaultConfig())
	defer router.Close()

	router.Publish(context.Background(), logging.Event{
		Type:     "turn.completed",
		Turn:     3,
		Actor:    logging.EntityRef{ID: "player-1", Kind: logging.EntityKindPlayer},
		Severity: logging.SeverityInfo,
	})

	events := waitForEvents(t, memory, 1)
	if events[0].Type != "turn.completed" {
		t.Fatalf("expected type turn.completed, got %s", events[0].Type)
	}
	if events[0].Turn != 3 {
		t.Fatalf("expected turn 3, got %d", events[0].Turn)
	}
	if events[0].Time.IsZero() {
		t.Fatalf("expected router to stamp event time")
	}
}

func TestRouterFiltersBySeverity(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.MinSeverity = logging.SeverityWarn
	router, memory := newTestRouter(t, cfg)
	defer router.Close()

	router.Publish(context.Background(), logging.Event{Type: "debug.noise", Severity: logging.SeverityDebug})
	router.Publish(context.Background(), logging.Event{Type: "info.noise", Severity: logging.SeverityInfo})
	router.Publish(context.Background(), logging.Event{Type: "warn.kept", Severity: logging.SeverityWarn})

	events := waitForEvents(t, memory, 1)
	if len(events) != 1 {
		t.Fatalf("expected 1 event after filtering, got %d", len(events))
	}
	if events[0].Type != "warn.kept" {
		t.Fatalf("expected warn.kept, got %s", events[0].Type)
	}
}

func TestRouterAppliesDefaultFields(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.DefaultFields = map[string]any{"service": "labyrinth"}
	router, memory := newTestRouter(t, cfg)
	defer router.Close()

	router.Publish(context.Background(), logging.Event{Type: "session.started", Severity: logging.SeverityInfo})

	events := waitForEvents(t, memory, 1)
	if got := events[0].Extra["service"]; got != "labyrinth" {
		t.Fatalf("expected default field service=labyrinth, got %v", got)
	}
}

func TestRouterCloseIsIdempotent(t *testing.T) {
	router, memory := newTestRouter(t, logging.DefaultConfig())

	router.Publish(context.Background(), logging.Event{Type: "session.ended", Severity: logging.SeverityInfo})
	if err := router.Close(); err != nil {
		t.Fatalf("expected clean close, got %v", err)
	}
	if err := router.Close(); err != nil {
		t.Fatalf("expected second close to be a no-op, got %v", err)
	}

	events := memory.Events()
	if len(events) != 1 {
		t.Fatalf("expected queued event delivered before close, got %d", len(events))
	}

	router.Publish(context.Background(), logging.Event{Type: "late", Severity: logging.SeverityInfo})
	if got := len(memory.Events()); got != 1 {
		t.Fatalf("expected publish after close to drop, got %d events", got)
	}
}

func TestRouterIgnoresUnconfiguredSinks(t *testing.T) {
	memory := sinks.NewMemory(0)
	extra := sinks.NewMemory(0)
	cfg := logging.DefaultConfig()
	cfg.Sinks = []string{"memory"}
	router := logging.NewRouter(nil, cfg, []logging.NamedSink{
		{Name: "memory", Sink: memory},
		{Name: "extra", Sink: extra},
	})
	defer router.Close()

	router.Publish(context.Background(), logging.Event{Type: "turn.completed", Severity: logging.SeverityInfo})

	waitForEvents(t, memory, 1)
	if got := len(extra.Events()); got != 0 {
		t.Fatalf("expected unconfigured sink to receive nothing, got %d", got)
	}
}

func TestWithFieldsDoesNotOverrideExisting(t *testing.T) {
	router, memory := newTestRouter(t, logging.DefaultConfig())
	defer router.Close()

	pub := logging.WithFields(router, map[string]any{"session": "a", "mode": "live"})
	pub.Publish(context.Background(), logging.Event{
		Type:     "turn.completed",
		Severity: logging.SeverityInfo,
		Extra:    map[string]any{"session": "b"},
	})

	events := waitForEvents(t, memory, 1)
	if got := events[0].Extra["session"]; got != "b" {
		t.Fatalf("expected existing field to win, got %v", got)
	}
	if got := events[0].Extra["mode"]; got != "live" {
		t.Fatalf("expected wrapped field applied, got %v", got)
	}
}

func TestMetricsCounters(t *testing.T) {
	metrics := logging.NewMetrics()
	metrics.TelemetryAdd("turns_total", 2)
	metrics.TelemetryAdd("turns_total", 3)
	metrics.TelemetryStore("sessions_active", 7)

	if got := metrics.TelemetryValue("turns_total"); got != 5 {
		t.Fatalf("expected counter 5, got %d", got)
	}
	snapshot := metrics.Snapshot()
	if got := snapshot["sessions_active"]; got != 7 {
		t.Fatalf("expected gauge 7, got %d", got)
	}
	if got := metrics.TelemetryValue("missing"); got != 0 {
		t.Fatalf("expected unset key to read zero, got %d", got)
	}
}
