// Package app boots the server process: environment configuration,
// the logging router, the session hub, and the HTTP listener.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	hubpkg "labyrinth-hunt/server/internal/hub"
	servernet "labyrinth-hunt/server/internal/net"
	"labyrinth-hunt/server/internal/observability"
	"labyrinth-hunt/server/internal/sim"
	"labyrinth-hunt/server/internal/telemetry"
	worldpkg "labyrinth-hunt/server/internal/world"
	"labyrinth-hunt/server/logging"
	loggingSinks "labyrinth-hunt/server/logging/sinks"
)

// Config carries the process-level knobs callers may set before the
// environment is consulted.
type Config struct {
	Addr          string
	Logger        telemetry.Logger
	Observability observability.Config
}

// Run starts the server and blocks until the listener fails or ctx is
// cancelled, at which point the hub and logging router are drained.
func Run(ctx context.Context, cfg Config) error {
	// A local .env overrides nothing already exported.
	_ = godotenv.Load()

	telemetryLogger := cfg.Logger
	if telemetryLogger == nil {
		telemetryLogger = telemetry.WrapLogger(log.Default())
	}

	fallbackLogger := log.Default()
	if provider, ok := telemetryLogger.(interface{ StandardLogger() *log.Logger }); ok {
		if candidate := provider.StandardLogger(); candidate != nil {
			fallbackLogger = candidate
		}
	}

	logConfig := logging.DefaultConfig()
	if raw := os.Getenv("LABYRINTH_LOG_SINKS"); raw != "" {
		var names []string
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			logConfig.Sinks = names
		}
	}
	if path := strings.TrimSpace(os.Getenv("LABYRINTH_LOG_JSON_PATH")); path != "" {
		logConfig.JSON.Path = path
		if !logConfig.HasSink("json") {
			logConfig.Sinks = append(logConfig.Sinks, "json")
		}
	}

	namedSinks := []logging.NamedSink{
		{Name: "console", Sink: loggingSinks.NewConsole(os.Stdout)},
		{Name: "memory", Sink: loggingSinks.NewMemory(1024)},
	}
	if logConfig.JSON.Path != "" {
		file, err := os.OpenFile(logConfig.JSON.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open json log %s: %w", logConfig.JSON.Path, err)
		}
		namedSinks = append(namedSinks, logging.NamedSink{
			Name: "json",
			Sink: loggingSinks.NewJSON(file, logConfig.JSON.FlushInterval),
		})
	}

	router := logging.NewRouter(logging.SystemClock(), logConfig, namedSinks)
	defer func() {
		if cerr := router.Close(); cerr != nil {
			telemetryLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	metrics := logging.NewMetrics()

	base := worldpkg.DefaultConfig()
	if seed := strings.TrimSpace(os.Getenv("LABYRINTH_SEED")); seed != "" {
		base.Seed = seed
	}

	hubCfg := hubpkg.Config{Base: base}
	if raw := os.Getenv("LABYRINTH_SESSION_LIMIT"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			hubCfg.SessionLimit = value
		} else {
			telemetryLogger.Printf("invalid LABYRINTH_SESSION_LIMIT=%q: %v", raw, err)
		}
	}

	observabilityCfg := cfg.Observability
	if raw := os.Getenv("ENABLE_PPROF_TRACE"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			observabilityCfg.EnablePprofTrace = value
		} else {
			telemetryLogger.Printf("invalid ENABLE_PPROF_TRACE=%q: %v", raw, err)
		}
	}

	hub := hubpkg.New(hubCfg, sim.Deps{
		Logger:    fallbackLogger,
		Metrics:   metrics,
		Clock:     logging.SystemClock(),
		Publisher: router,
	})
	defer hub.Close(context.Background())

	handler := servernet.NewHTTPHandler(hub, servernet.HTTPHandlerConfig{
		Logger:        fallbackLogger,
		Metrics:       metrics,
		Router:        router,
		Observability: observabilityCfg,
	})

	addr := cfg.Addr
	if addr == "" {
		addr = strings.TrimSpace(os.Getenv("LABYRINTH_ADDR"))
	}
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{Addr: addr, Handler: handler}
	telemetryLogger.Printf("server listening on %s", srv.Addr)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}
