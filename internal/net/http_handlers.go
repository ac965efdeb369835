// Package net wires the hub to its HTTP and websocket surface.
package net

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	nethttp "net/http"
	"net/http/pprof"
	"time"

	hubpkg "labyrinth-hunt/server/internal/hub"
	"labyrinth-hunt/server/internal/net/proto"
	"labyrinth-hunt/server/internal/net/ws"
	"labyrinth-hunt/server/internal/observability"
	"labyrinth-hunt/server/logging"
)

// HTTPHandlerConfig carries the optional dependencies surfaced through
// the diagnostics endpoint alongside the handler's logger.
type HTTPHandlerConfig struct {
	Logger        *log.Logger
	Metrics       *logging.Metrics
	Router        *logging.Router
	Observability observability.Config
}

// NewHTTPHandler builds the full route table: session creation, the
// websocket attach point, health, diagnostics, and the wire contracts.
func NewHTTPHandler(hub *hubpkg.Hub, cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	mux := nethttp.NewServeMux()

	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/join", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}

		cfg := hub.BaseConfig()
		// An absent seed makes the hub derive a distinct one per
		// session, so two default joins never share a maze.
		cfg.Seed = ""

		type joinRequest struct {
			Seed                   *string  `json:"seed"`
			Width                  *int     `json:"width"`
			Height                 *int     `json:"height"`
			Depth                  *int     `json:"depth"`
			BraidChance            *float64 `json:"braidChance"`
			RampsPerLevel          *int     `json:"rampsPerLevel"`
			CaptureRadius          *float64 `json:"captureRadius"`
			FarThreshold           *float64 `json:"farThreshold"`
			NearThreshold          *float64 `json:"nearThreshold"`
			VanishMinSeconds       *float64 `json:"vanishMinSeconds"`
			VanishMaxSeconds       *float64 `json:"vanishMaxSeconds"`
			JumpCooldownSeconds    *float64 `json:"jumpCooldownSeconds"`
			ParalysisSeconds       *float64 `json:"paralysisSeconds"`
			LanternCooldownSeconds *float64 `json:"lanternCooldownSeconds"`
			TurnSeconds            *float64 `json:"turnSeconds"`
		}

		if r.Body != nil {
			defer r.Body.Close()
			var req joinRequest
			decoder := json.NewDecoder(r.Body)
			if err := decoder.Decode(&req); err != nil && err != io.EOF {
				httpError(w, "invalid payload", nethttp.StatusBadRequest)
				return
			}
			if req.Seed != nil {
				cfg.Seed = *req.Seed
			}
			if req.Width != nil {
				cfg.Width = *req.Width
			}
			if req.Height != nil {
				cfg.Height = *req.Height
			}
			if req.Depth != nil {
				cfg.Depth = *req.Depth
			}
			if req.BraidChance != nil {
				cfg.BraidChance = *req.BraidChance
			}
			if req.RampsPerLevel != nil {
				cfg.RampsPerLevel = *req.RampsPerLevel
			}
			if req.CaptureRadius != nil {
				cfg.CaptureRadius = *req.CaptureRadius
			}
			if req.FarThreshold != nil {
				cfg.FarThreshold = *req.FarThreshold
			}
			if req.NearThreshold != nil {
				cfg.NearThreshold = *req.NearThreshold
			}
			if req.VanishMinSeconds != nil {
				cfg.VanishMinSeconds = *req.VanishMinSeconds
			}
			if req.VanishMaxSeconds != nil {
				cfg.VanishMaxSeconds = *req.VanishMaxSeconds
			}
			if req.JumpCooldownSeconds != nil {
				cfg.JumpCooldownSeconds = *req.JumpCooldownSeconds
			}
			if req.ParalysisSeconds != nil {
				cfg.ParalysisSeconds = *req.ParalysisSeconds
			}
			if req.LanternCooldownSeconds != nil {
				cfg.LanternCooldownSeconds = *req.LanternCooldownSeconds
			}
			if req.TurnSeconds != nil {
				cfg.TurnSeconds = *req.TurnSeconds
			}
		}

		session, err := hub.Join(r.Context(), cfg)
		if err != nil {
			if errors.Is(err, hubpkg.ErrSessionLimit) {
				httpError(w, "session limit reached", nethttp.StatusServiceUnavailable)
				return
			}
			logger.Printf("join failed: %v", err)
			httpError(w, "failed to start session", nethttp.StatusInternalServerError)
			return
		}

		initial := proto.TurnResultFromSnapshot(session.Latest())
		initial.ServerTime = time.Now().UnixMilli()
		response := proto.JoinResponseV1{
			ID:      session.ID(),
			Config:  session.Config(),
			Initial: initial,
		}

		data, err := proto.EncodeJoinResponseV1(response)
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	mux.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		payload := struct {
			Status        string                     `json:"status"`
			ServerTime    int64                      `json:"serverTime"`
			Hub           hubpkg.DiagnosticsSnapshot `json:"hub"`
			Telemetry     map[string]uint64          `json:"telemetry,omitempty"`
			DroppedEvents uint64                     `json:"droppedEvents"`
			DroppedBySink map[string]uint64          `json:"droppedBySink,omitempty"`
		}{
			Status:        "ok",
			ServerTime:    time.Now().UnixMilli(),
			Hub:           hub.Diagnostics(),
			Telemetry:     cfg.Metrics.Snapshot(),
			DroppedEvents: cfg.Router.Dropped(),
			DroppedBySink: cfg.Router.DroppedBySink(),
		}

		data, err := json.Marshal(payload)
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	mux.HandleFunc("/contracts", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}

		data, err := json.Marshal(proto.ContractSchemas())
		if err != nil {
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	wsHandler := ws.NewHandler(hub, ws.HandlerConfig{Logger: logger})
	mux.HandleFunc("/ws", wsHandler.Handle)

	if cfg.Observability.EnablePprofTrace {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	return mux
}

func httpError(w nethttp.ResponseWriter, msg string, code int) {
	nethttp.Error(w, msg, code)
}
