package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/renato145/interactive-class/internal/app"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 * 1024
)

// HeartbeatConfig drives the per-connection liveness check. Timeout must be
// larger than Interval or clients get disconnected between pings.
type HeartbeatConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// WSHandler upgrades HTTP requests into room sessions.
type WSHandler struct {
	registry  *app.Registry
	heartbeat HeartbeatConfig
	upgrader  websocket.Upgrader
}

func NewWSHandler(registry *app.Registry, heartbeat HeartbeatConfig) *WSHandler {
	return &WSHandler{
		registry:  registry,
		heartbeat: heartbeat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS runs one session: a write pump goroutine owns all writes (data and
// pings) while this goroutine reads and dispatches. Messages are dispatched
// one at a time, so dispatch of one message completes before the next frame
// is read and before close cleanup runs.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}

	sess := newSession(h.registry)
	writerDone := make(chan struct{})
	go h.writePump(conn, sess, writerDone)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(h.heartbeat.Timeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.heartbeat.Timeout))
	})
	conn.SetPingHandler(func(appData string) error {
		if err := conn.SetReadDeadline(time.Now().Add(h.heartbeat.Timeout)); err != nil {
			return err
		}
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(writeWait))
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s: read error: %v", sess.id, err)
			}
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}
		sess.dispatch(data)
	}

	// Transport error, close frame, or heartbeat timeout: same cleanup path.
	sess.close()
	<-writerDone
	_ = conn.Close()
}

// writePump serializes every write to the connection: queued server messages
// and the heartbeat pings. It exits when the session's outbox closes or any
// write fails, closing the connection either way so the read loop unblocks.
func (h *WSHandler) writePump(conn *websocket.Conn, sess *session, done chan<- struct{}) {
	ticker := time.NewTicker(h.heartbeat.Interval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
		close(done)
	}()

	for {
		select {
		case msg := <-sess.outbox.ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("session %s: write error: %v", sess.id, err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-sess.outbox.done:
			// Flush whatever broadcasts were queued before the close.
			for {
				select {
				case msg := <-sess.outbox.ch:
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteJSON(msg); err != nil {
						return
					}
				default:
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
			}
		}
	}
}
