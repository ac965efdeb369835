package ws

import (
	"errors"
	"log"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"

	hubpkg "labyrinth-hunt/server/internal/hub"
	"labyrinth-hunt/server/internal/net/intake"
	"labyrinth-hunt/server/internal/net/proto"
	"labyrinth-hunt/server/internal/sim"
)

// HandlerConfig carries optional handler dependencies.
type HandlerConfig struct {
	Logger *log.Logger
}

// Handler upgrades websocket requests and runs the per-connection
// message loop against the hub session named in the query string.
type Handler struct {
	hub      *hubpkg.Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHandler constructs a websocket handler for the given hub.
func NewHandler(hub *hubpkg.Hub, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *nethttp.Request) bool {
			return true
		},
	}

	return &Handler{
		hub:      hub,
		logger:   logger,
		upgrader: upgrader,
	}
}

// Handle serves one websocket connection. Disconnecting leaves the hub
// session intact; a client may reattach with the same session id.
func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	sessionID := r.URL.Query().Get("id")
	if sessionID == "" {
		nethttp.Error(w, "missing id", nethttp.StatusBadRequest)
		return
	}

	socket, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed for %s: %v", sessionID, err)
		return
	}
	client := newConn(socket)

	session, ok := h.hub.Session(sessionID)
	if !ok {
		client.ClosePolicy("unknown session")
		return
	}

	// writeFrame treats encode failures as loggable and write failures
	// as fatal to the connection.
	writeFrame := func(data []byte, err error) bool {
		if err != nil {
			h.logger.Printf("failed to encode response for %s: %v", sessionID, err)
			return true
		}
		if err := client.Write(data); err != nil {
			_ = socket.Close()
			return false
		}
		return true
	}

	initial := proto.TurnResultFromSnapshot(session.Latest())
	initial.ServerTime = time.Now().UnixMilli()
	if !writeFrame(proto.EncodeTurnResultV1(initial)) {
		return
	}

	for {
		_, payload, err := socket.ReadMessage()
		if err != nil {
			_ = socket.Close()
			return
		}

		msg, err := proto.DecodeClientMessage(payload)
		if err != nil {
			h.logger.Printf("discarding malformed message from %s: %v", sessionID, err)
			code := "bad_message"
			if msg.Ver != 0 && msg.Ver != proto.Version {
				code = "unsupported_version"
			}
			if !writeFrame(proto.EncodeError(proto.ErrorV1{Code: code, Message: err.Error()})) {
				return
			}
			continue
		}

		normalizedSeq := uint64(0)
		if msg.Seq != nil && *msg.Seq > 0 {
			normalizedSeq = *msg.Seq
		}

		sendDuplicateAck := func() bool {
			if normalizedSeq == 0 {
				return true
			}
			return writeFrame(proto.EncodeCommandAck(proto.CommandAck{Seq: normalizedSeq}))
		}

		sendCommandAck := func(sequence uint64) bool {
			if normalizedSeq == 0 {
				return true
			}
			ack := proto.CommandAck{Seq: normalizedSeq, Sequence: sequence}
			if !writeFrame(proto.EncodeCommandAck(ack)) {
				return false
			}
			client.StoreLastCommandSeq(normalizedSeq)
			return true
		}

		// Rejects go out even without a client seq; the reason is the
		// only signal the client gets that the command was refused.
		sendCommandReject := func(reason string, retry bool) bool {
			reject := proto.CommandReject{
				Seq:      normalizedSeq,
				Reason:   reason,
				Retry:    retry,
				Sequence: session.Latest().Sequence,
			}
			return writeFrame(proto.EncodeCommandReject(reject))
		}

		switch msg.Type {
		case proto.TypeCommand:
			if normalizedSeq > 0 {
				if last := client.LastCommandSeq(); last > 0 && normalizedSeq <= last {
					if !sendDuplicateAck() {
						return
					}
					continue
				}
			}
			cmd, ok, reason := intake.StageClientCommand(intake.CommandContext{HasSession: h.hub.Has}, sessionID, msg)
			if !ok {
				if !sendCommandReject(reason, false) {
					return
				}
				continue
			}
			snapshot, err := session.Advance(r.Context(), cmd)
			if err != nil {
				if errors.Is(err, sim.ErrTerminalState) {
					if !sendCommandReject(sim.ReasonTerminalState, false) {
						return
					}
					continue
				}
				h.logger.Printf("turn failed for %s: %v", sessionID, err)
				if !writeFrame(proto.EncodeError(proto.ErrorV1{Code: "turn_failed", Message: err.Error()})) {
					return
				}
				continue
			}
			if !sendCommandAck(snapshot.Sequence) {
				return
			}
			result := proto.TurnResultFromSnapshot(snapshot)
			result.ServerTime = time.Now().UnixMilli()
			if !writeFrame(proto.EncodeTurnResultV1(result)) {
				return
			}

		case proto.TypeSnapshotRequest:
			result := proto.TurnResultFromSnapshot(session.Latest())
			result.ServerTime = time.Now().UnixMilli()
			if !writeFrame(proto.EncodeTurnResultV1(result)) {
				return
			}

		case proto.TypeJournalRequest:
			records := session.JournalWindow(msg.Since, msg.Limit)
			frame := proto.JournalV1{Since: msg.Since}
			for _, record := range records {
				frame.Entries = append(frame.Entries, proto.JournalEntryV1{
					Command: proto.CommandEcho(record.Command),
					Result:  proto.TurnResultFromSnapshot(record.Snapshot),
				})
			}
			if size, oldest, _ := session.JournalBounds(); size > 0 && oldest > msg.Since+1 {
				frame.Truncated = true
			}
			if !writeFrame(proto.EncodeJournalV1(frame)) {
				return
			}

		case proto.TypeHeartbeat:
			now := time.Now()
			beat := proto.Heartbeat{
				ServerTime: now.UnixMilli(),
				ClientTime: msg.SentAt,
			}
			if msg.SentAt > 0 {
				beat.RTTMillis = now.UnixMilli() - msg.SentAt
			}
			if !writeFrame(proto.EncodeHeartbeat(beat)) {
				return
			}

		default:
			h.logger.Printf("unknown message type %q from %s", msg.Type, sessionID)
		}
	}
}
