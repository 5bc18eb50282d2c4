package event

import (
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/Bonehead-Labs/actorkit/parameter"
)

// WebSocketSink streams notifications as JSON frames to an external
// telemetry viewer. It buffers off the update loop: Notify never blocks,
// and notifications are dropped when the peer cannot keep up. The writer
// goroutine lives outside the core's single-threaded contract, which is
// acceptable because delivery is fire-and-forget at the interface boundary
type WebSocketSink struct {
	conn    *websocket.Conn
	send    chan Notification
	done    chan struct{}
	logger  *slog.Logger
	dropped uint64
}

// NewWebSocketSink wraps an established connection. The caller owns
// dialing and reconnect policy; the sink owns the write side
func NewWebSocketSink(conn *websocket.Conn, logger *slog.Logger) *WebSocketSink {
	if logger == nil {
		logger = slog.Default()
	}
	s := &WebSocketSink{
		conn:   conn,
		send:   make(chan Notification, parameter.SinkSendBuffer),
		done:   make(chan struct{}),
		logger: logger,
	}
	go s.writeLoop()
	return s
}

func (s *WebSocketSink) Notify(n Notification) {
	select {
	case s.send <- n:
	default:
		s.dropped++
	}
}

// Close stops the writer and closes the connection
func (s *WebSocketSink) Close() error {
	close(s.done)
	return s.conn.Close()
}

func (s *WebSocketSink) writeLoop() {
	for {
		select {
		case n := <-s.send:
			if err := s.conn.WriteJSON(n); err != nil {
				s.logger.Warn("telemetry sink write failed", "error", err)
				return
			}
		case <-s.done:
			return
		}
	}
}
