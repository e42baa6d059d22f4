package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/formations/internal/core/observability/log"
	"github.com/zeusync/formations/internal/core/simulation"
)

// client is one websocket viewer. Frames go out through send on the writer goroutine;
// the handler goroutine reads commands.
type client struct {
	id     string
	conn   *websocket.Conn
	send   chan frame
	done   chan struct{}
	once   sync.Once
	logger log.Log
}

// offer queues f unless the client is gone or behind.
func (c *client) offer(f frame) {
	select {
	case <-c.done:
	case c.send <- f:
	default:
		c.logger.Debug("Dropping frame for slow client")
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if int(s.clientCount.Load()) >= s.config.MaxClients {
		s.logger.Warn("Maximum clients reached, rejecting connection", log.String("remote_addr", r.RemoteAddr))
		http.Error(w, ErrMaxClientsReached.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", log.String("remote_addr", r.RemoteAddr), log.Error(err))
		return
	}
	conn.SetReadLimit(s.config.MaxMessageSize)

	id := uuid.NewString()
	c := &client{
		id:     id,
		conn:   conn,
		send:   make(chan frame, s.config.SendBuffer),
		done:   make(chan struct{}),
		logger: s.logger.With(log.String("client_id", id)),
	}

	// the current state goes out first so a viewer never starts blank
	if f, err := newFrame(s.engine.Snapshot()); err == nil {
		c.send <- f
	}

	s.clients.Store(id, c)
	total := s.clientCount.Add(1)
	c.logger.Info("Client connected", log.String("remote_addr", conn.RemoteAddr().String()), log.Int64("total_clients", total))

	go s.writeLoop(c)
	s.readLoop(c)

	s.clients.Delete(id)
	c.close()
	c.logger.Info("Client disconnected", log.Int64("total_clients", s.clientCount.Add(-1)))
}

// readLoop decodes commands until the connection fails.
func (s *Server) readLoop(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && !isClosed(c) {
				c.logger.Warn("Failed to receive message", log.Error(err))
			}
			return
		}

		var cmd simulation.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.logger.Warn("Ignoring malformed command", log.Error(errors.Join(ErrInvalidMessage, err)))
			continue
		}
		if err := s.engine.Submit(cmd); err != nil {
			c.logger.Warn("Command rejected", log.String("command", cmd.String()), log.Error(err))
		}
	}
}

// writeLoop sends queued frames, skipping frames whose content did not change.
func (s *Server) writeLoop(c *client) {
	defer c.close()

	var (
		last uint64
		sent bool
	)
	for {
		select {
		case <-c.done:
			return
		case f := <-c.send:
			if sent && f.checksum == last {
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, f.payload); err != nil {
				if !isClosed(c) {
					c.logger.Warn("Failed to send frame", log.Error(err))
				}
				return
			}
			last, sent = f.checksum, true
		}
	}
}

func isClosed(c *client) bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}
