package hub

import (
	"context"
	"ctchen222/Criss-Cross/internal/game"
	"ctchen222/Criss-Cross/internal/session"
	"ctchen222/Criss-Cross/pkg/proto"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	heartbeatInterval = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufferSize    = 64
)

var ErrSendBufferFull = errors.New("send buffer full")

// Client is one websocket connection. It is the session.Connection of its
// controller.
type Client struct {
	id         string
	hub        *Hub
	conn       *websocket.Conn
	controller *session.Controller

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once

	mu    sync.Mutex
	rooms map[string]struct{}
}

func newClient(h *Hub, conn *websocket.Conn) *Client {
	c := &Client{
		id:    uuid.New().String(),
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, sendBufferSize),
		done:  make(chan struct{}),
		rooms: make(map[string]struct{}),
	}
	c.controller = session.NewController(c, session.NewRoomNotifier(c), h.registry, h.opts)
	return c
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) Join(room string) {
	c.mu.Lock()
	c.rooms[room] = struct{}{}
	c.mu.Unlock()
	c.hub.join(c, room)
}

func (c *Client) joined() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.rooms))
	for id := range c.rooms {
		ids = append(ids, id)
	}
	return ids
}

func (c *Client) Emit(event string, data any) error {
	raw, err := encode(event, nil, data)
	if err != nil {
		return err
	}
	if !c.Send(raw) {
		return fmt.Errorf("emit %s to %s: %w", event, c.id, ErrSendBufferFull)
	}
	return nil
}

func (c *Client) BroadcastTo(room, event string, data any) error {
	raw, err := encode(event, nil, data)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	return c.hub.publish(ctx, room, c.id, raw)
}

func (c *Client) Broadcast(event string, data any) error {
	return c.BroadcastTo("", event, data)
}

// Send queues an encoded message without blocking. It reports false when the
// client is closed or too slow to keep up.
func (c *Client) Send(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func encode(event string, ack *int64, data any) ([]byte, error) {
	msg, err := proto.NewServerMessage(event, data)
	if err != nil {
		return nil, err
	}
	msg.Ack = ack
	return json.Marshal(msg)
}

// readPump decodes client commands and runs them through the controller. A
// closed socket is reported as a disconnect command.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		disconnect := &proto.ClientToServerMessage{Command: proto.CommandDisconnect}
		if err := c.controller.Dispatch(ctx, disconnect, nil); err != nil {
			slog.ErrorContext(ctx, "Failed to dispatch disconnect", "connection.id", c.id, "error", err)
		}
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.WarnContext(ctx, "Client connection error", "connection.id", c.id, "error", err)
			}
			return
		}
		c.handleMessage(ctx, raw)
	}
}

func (c *Client) handleMessage(ctx context.Context, raw []byte) {
	ctx, span := tracer.Start(ctx, "hub.Client.handleMessage", trace.WithAttributes(
		attribute.String("connection.id", c.id),
	))
	defer span.End()

	var msg proto.ClientToServerMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		slog.WarnContext(ctx, "Malformed message dropped", "connection.id", c.id, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Malformed message")
		return
	}
	span.SetAttributes(attribute.String("message.command", string(msg.Command)))

	callback := func(player game.PlayerSnapshot, snapshot game.Snapshot) {
		if msg.Ack == nil {
			return
		}
		raw, err := encode(proto.EventAck, msg.Ack, proto.CallbackArgs{Player: player, Game: snapshot})
		if err == nil && !c.Send(raw) {
			err = ErrSendBufferFull
		}
		if err != nil {
			slog.ErrorContext(ctx, "Failed to answer callback", "connection.id", c.id, "command", msg.Command, "error", err)
			span.RecordError(err)
		}
	}

	if err := c.controller.Dispatch(ctx, &msg, callback); err != nil {
		slog.WarnContext(ctx, "Command dropped", "connection.id", c.id, "command", msg.Command, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Command dropped")
	}
}

// writePump drains the send queue and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(heartbeatInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				slog.Warn("Failed to write to client", "connection.id", c.id, "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Warn("Failed to send ping to client, assuming disconnect", "connection.id", c.id, "error", err)
				return
			}

		case <-c.done:
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
