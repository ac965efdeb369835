// Package ws attaches websocket clients to hub sessions: one socket
// drives one session, commands stage through intake, and every accepted
// turn is answered with the redacted turn result.
package ws

import (
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// conn wraps a live websocket connection with the write mutex and the
// duplicate-suppression cursor for command sequence numbers. The game
// session itself lives in the hub and survives the socket.
type conn struct {
	socket *websocket.Conn
	mu     sync.Mutex

	lastCommandSeq atomic.Uint64
}

func newConn(socket *websocket.Conn) *conn {
	return &conn{socket: socket}
}

// Write sends one text frame. Gorilla connections allow a single
// concurrent writer, so all frames funnel through this mutex.
func (c *conn) Write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.socket.WriteMessage(websocket.TextMessage, data)
}

// ClosePolicy sends a policy-violation close frame and drops the socket.
func (c *conn) ClosePolicy(reason string) {
	message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	c.mu.Lock()
	_ = c.socket.WriteMessage(websocket.CloseMessage, message)
	c.mu.Unlock()
	_ = c.socket.Close()
}

// LastCommandSeq returns the highest acknowledged command sequence.
func (c *conn) LastCommandSeq() uint64 {
	return c.lastCommandSeq.Load()
}

// StoreLastCommandSeq records the highest acknowledged command sequence.
func (c *conn) StoreLastCommandSeq(seq uint64) {
	c.lastCommandSeq.Store(seq)
}
