package net

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	hubpkg "labyrinth-hunt/server/internal/hub"
	"labyrinth-hunt/server/internal/observability"
	"labyrinth-hunt/server/internal/sim"
	worldpkg "labyrinth-hunt/server/internal/world"
	"labyrinth-hunt/server/logging"
)

type frozenClock struct{}

func (frozenClock) Now() time.Time { return time.Unix(1700000000, 0) }

func testBaseConfig() worldpkg.Config {
	cfg := worldpkg.DefaultConfig()
	cfg.Seed = "http-test"
	cfg.Width = 21
	cfg.Height = 21
	cfg.Depth = 3
	return cfg
}

func newTestHandler(t *testing.T, limit int) (*hubpkg.Hub, *logging.Metrics, http.Handler) {
	t.Helper()

	metrics := logging.NewMetrics()
	router := logging.NewRouter(frozenClock{}, logging.DefaultConfig(), nil)
	t.Cleanup(func() {
		router.Close()
	})

	hub := hubpkg.New(
		hubpkg.Config{SessionLimit: limit, Base: testBaseConfig()},
		sim.Deps{Clock: frozenClock{}, Metrics: metrics},
	)
	t.Cleanup(func() {
		hub.Close(context.Background())
	})

	handler := NewHTTPHandler(hub, HTTPHandlerConfig{Metrics: metrics, Router: router})
	return hub, metrics, handler
}

func postJoin(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/join", bytes.NewBufferString(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func decodePayload(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	return payload
}

func TestHTTPJoinCreatesSession(t *testing.T) {
	hub, _, handler := newTestHandler(t, 0)

	resp := postJoin(t, handler, `{}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 OK, got %d", resp.Code)
	}
	if contentType := resp.Header().Get("Content-Type"); contentType != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", contentType)
	}

	payload := decodePayload(t, resp)
	if ver, ok := payload["ver"].(float64); !ok || ver != 1 {
		t.Fatalf("expected join response ver 1, got %v", payload["ver"])
	}
	if id, ok := payload["id"].(string); !ok || id != "session-1" {
		t.Fatalf("expected session id session-1, got %v", payload["id"])
	}

	config, ok := payload["config"].(map[string]any)
	if !ok {
		t.Fatalf("expected config object, got %T", payload["config"])
	}
	if seed, ok := config["seed"].(string); !ok || seed != "http-test-1" {
		t.Fatalf("expected derived seed http-test-1, got %v", config["seed"])
	}

	initial, ok := payload["initial"].(map[string]any)
	if !ok {
		t.Fatalf("expected initial turn result object, got %T", payload["initial"])
	}
	if typ, ok := initial["type"].(string); !ok || typ != "turnResult" {
		t.Fatalf("expected initial type turnResult, got %v", initial["type"])
	}
	if sequence, ok := initial["sequence"].(float64); !ok || sequence != 0 {
		t.Fatalf("expected initial sequence 0, got %v", initial["sequence"])
	}
	pursuer, ok := initial["pursuer"].(map[string]any)
	if !ok {
		t.Fatalf("expected pursuer object in initial result, got %T", initial["pursuer"])
	}
	if _, leaked := pursuer["position"]; leaked {
		t.Fatalf("expected initial pursuer view to omit position, got %v", pursuer["position"])
	}

	if hub.Len() != 1 {
		t.Fatalf("expected 1 live session after join, got %d", hub.Len())
	}
}

func TestHTTPJoinDerivesDistinctSessions(t *testing.T) {
	_, _, handler := newTestHandler(t, 0)

	first := decodePayload(t, postJoin(t, handler, `{}`))
	second := decodePayload(t, postJoin(t, handler, `{}`))

	if first["id"] == second["id"] {
		t.Fatalf("expected distinct session ids, both were %v", first["id"])
	}

	firstConfig, ok := first["config"].(map[string]any)
	if !ok {
		t.Fatalf("expected first config object, got %T", first["config"])
	}
	secondConfig, ok := second["config"].(map[string]any)
	if !ok {
		t.Fatalf("expected second config object, got %T", second["config"])
	}
	if firstConfig["seed"] == secondConfig["seed"] {
		t.Fatalf("expected distinct derived seeds, both were %v", firstConfig["seed"])
	}
}

func TestHTTPJoinHonorsOverrides(t *testing.T) {
	_, _, handler := newTestHandler(t, 0)

	resp := postJoin(t, handler, `{"seed":"custom-maze","turnSeconds":2,"captureRadius":1.5}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 OK, got %d", resp.Code)
	}

	payload := decodePayload(t, resp)
	config, ok := payload["config"].(map[string]any)
	if !ok {
		t.Fatalf("expected config object, got %T", payload["config"])
	}
	if seed, ok := config["seed"].(string); !ok || seed != "custom-maze" {
		t.Fatalf("expected seed custom-maze, got %v", config["seed"])
	}
	if turnSeconds, ok := config["turnSeconds"].(float64); !ok || turnSeconds != 2 {
		t.Fatalf("expected turnSeconds 2, got %v", config["turnSeconds"])
	}
	if radius, ok := config["captureRadius"].(float64); !ok || radius != 1.5 {
		t.Fatalf("expected captureRadius 1.5, got %v", config["captureRadius"])
	}
	if width, ok := config["width"].(float64); !ok || width != 21 {
		t.Fatalf("expected untouched width 21, got %v", config["width"])
	}
}

func TestHTTPJoinRejectsInvalidPayload(t *testing.T) {
	_, _, handler := newTestHandler(t, 0)

	resp := postJoin(t, handler, "{")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 Bad Request, got %d", resp.Code)
	}
}

func TestHTTPJoinRejectsWrongMethod(t *testing.T) {
	_, _, handler := newTestHandler(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/join", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405 Method Not Allowed, got %d", resp.Code)
	}
}

func TestHTTPJoinReportsSessionLimit(t *testing.T) {
	_, _, handler := newTestHandler(t, 1)

	if resp := postJoin(t, handler, `{}`); resp.Code != http.StatusOK {
		t.Fatalf("expected first join to succeed, got %d", resp.Code)
	}
	resp := postJoin(t, handler, `{}`)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 Service Unavailable, got %d", resp.Code)
	}
}

func TestHTTPHealth(t *testing.T) {
	_, _, handler := newTestHandler(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 OK, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != "ok" {
		t.Fatalf("expected health body ok, got %q", body)
	}
}

func TestHTTPDiagnosticsReportsSessions(t *testing.T) {
	_, _, handler := newTestHandler(t, 0)

	if resp := postJoin(t, handler, `{}`); resp.Code != http.StatusOK {
		t.Fatalf("expected join to succeed, got %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/diagnostics", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 OK, got %d", resp.Code)
	}

	payload := decodePayload(t, resp)
	if status, ok := payload["status"].(string); !ok || status != "ok" {
		t.Fatalf("expected status ok, got %v", payload["status"])
	}

	hubSection, ok := payload["hub"].(map[string]any)
	if !ok {
		t.Fatalf("expected hub object in diagnostics, got %T", payload["hub"])
	}
	if count, ok := hubSection["count"].(float64); !ok || count != 1 {
		t.Fatalf("expected hub count 1, got %v", hubSection["count"])
	}
	sessions, ok := hubSection["sessions"].([]any)
	if !ok || len(sessions) != 1 {
		t.Fatalf("expected one session entry, got %v", hubSection["sessions"])
	}
	entry, ok := sessions[0].(map[string]any)
	if !ok {
		t.Fatalf("expected session entry object, got %T", sessions[0])
	}
	if id, ok := entry["id"].(string); !ok || id != "session-1" {
		t.Fatalf("expected session entry id session-1, got %v", entry["id"])
	}

	telemetry, ok := payload["telemetry"].(map[string]any)
	if !ok {
		t.Fatalf("expected telemetry object in diagnostics, got %T", payload["telemetry"])
	}
	if started, ok := telemetry["sessions_started_total"].(float64); !ok || started != 1 {
		t.Fatalf("expected sessions_started_total 1, got %v", telemetry["sessions_started_total"])
	}

	if _, ok := payload["droppedEvents"].(float64); !ok {
		t.Fatalf("expected droppedEvents counter, got %v", payload["droppedEvents"])
	}
}

func TestHTTPContractsServesSchemas(t *testing.T) {
	_, _, handler := newTestHandler(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/contracts", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 OK, got %d", resp.Code)
	}
	if contentType := resp.Header().Get("Content-Type"); contentType != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %q", contentType)
	}

	payload := decodePayload(t, resp)
	for _, name := range []string{"clientMessage", "turnResult", "joinResponse"} {
		schema, ok := payload[name].(map[string]any)
		if !ok {
			t.Fatalf("expected %s schema object, got %T", name, payload[name])
		}
		if len(schema) == 0 {
			t.Fatalf("expected non-empty %s schema", name)
		}
	}
}

func TestHTTPPprofMountOptIn(t *testing.T) {
	hub := hubpkg.New(hubpkg.Config{Base: testBaseConfig()}, sim.Deps{Clock: frozenClock{}})
	t.Cleanup(func() {
		hub.Close(context.Background())
	})

	enabled := NewHTTPHandler(hub, HTTPHandlerConfig{
		Observability: observability.Config{EnablePprofTrace: true},
	})
	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	resp := httptest.NewRecorder()
	enabled.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected pprof index 200 when enabled, got %d", resp.Code)
	}

	disabled := NewHTTPHandler(hub, HTTPHandlerConfig{})
	resp = httptest.NewRecorder()
	disabled.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected pprof index 404 when disabled, got %d", resp.Code)
	}
}
