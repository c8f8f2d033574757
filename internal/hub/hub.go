package hub

import (
	"context"
	"ctchen222/Criss-Cross/internal/events"
	"ctchen222/Criss-Cross/internal/room"
	"ctchen222/Criss-Cross/internal/session"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var ErrHubClosed = errors.New("hub is closed")

var (
	tracer = otel.Tracer("hub")
	meter  = otel.Meter("hub")

	openConnections, _ = meter.Int64UpDownCounter("crisscross.connections", metric.WithDescription("Open websocket connections"))
)

// Hub owns the websocket clients of this process and the rooms they joined.
// Messages addressed to other clients always go through the relay. A Redis relay
// only fans broadcasts out to other processes; games stay in each process's
// registry.
type Hub struct {
	registry session.Registry
	relay    Relay
	opts     session.Options

	// clients is only touched by the Run goroutine.
	clients map[string]*Client

	mu    sync.RWMutex
	rooms map[string]*room.Room

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a hub whose clients play the games of registry.
func NewHub(registry session.Registry, relay Relay, opts session.Options) *Hub {
	return &Hub{
		registry:   registry,
		relay:      relay,
		opts:       opts,
		clients:    make(map[string]*Client),
		rooms:      make(map[string]*room.Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and relayed events until ctx is cancelled, then
// closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	relayed := h.relay.Events()
	for {
		select {
		case <-ctx.Done():
			for _, c := range h.clients {
				h.remove(ctx, c)
			}
			slog.InfoContext(ctx, "Hub stopped")
			return

		case c := <-h.register:
			h.clients[c.id] = c
			openConnections.Add(ctx, 1)
			slog.InfoContext(ctx, "Client connected", "connection.id", c.id, "clients.count", len(h.clients))
			go c.writePump()
			go c.readPump(ctx)

		case c := <-h.unregister:
			h.remove(ctx, c)

		case ev, ok := <-relayed:
			if !ok {
				slog.ErrorContext(ctx, "Relay closed, broadcasts disabled")
				relayed = nil
				continue
			}
			h.handleEvent(ctx, ev)
		}
	}
}

// Attach hands an upgraded connection to the hub. It blocks until Run accepts it.
func (h *Hub) Attach(conn *websocket.Conn) (*Client, error) {
	c := newClient(h, conn)
	select {
	case h.register <- c:
		return c, nil
	case <-h.done:
		conn.Close()
		return nil, ErrHubClosed
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) remove(ctx context.Context, c *Client) {
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	openConnections.Add(ctx, -1)

	h.mu.Lock()
	for _, id := range c.joined() {
		if r, ok := h.rooms[id]; ok && r.RemoveMember(c.id) {
			delete(h.rooms, id)
			slog.DebugContext(ctx, "Room closed", "room.id", id)
		}
	}
	h.mu.Unlock()

	c.close()
	slog.InfoContext(ctx, "Client disconnected", "connection.id", c.id, "clients.count", len(h.clients))
}

func (h *Hub) join(c *Client, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[id]
	if !ok {
		r = room.NewRoom(id)
		h.rooms[id] = r
	}
	r.AddMember(c)
}

func (h *Hub) publish(ctx context.Context, roomID, except string, data []byte) error {
	ev, err := events.NewBroadcast(roomID, except, data)
	if err != nil {
		return err
	}
	return h.relay.Publish(ctx, ev)
}

func (h *Hub) handleEvent(ctx context.Context, ev events.Event) {
	ctx, span := tracer.Start(ctx, "hub.handleEvent", trace.WithAttributes(
		attribute.String("event.channel", events.EventsChannel),
		attribute.String("event.type", ev.Type),
	))
	defer span.End()

	if ev.Type != events.TypeBroadcast {
		slog.WarnContext(ctx, "Unknown relay event", "event.type", ev.Type)
		return
	}

	var payload events.BroadcastPayload
	if err := json.Unmarshal(ev.Payload, &payload); err != nil {
		slog.ErrorContext(ctx, "Could not unmarshal broadcast payload", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not unmarshal broadcast payload")
		return
	}
	span.SetAttributes(attribute.String("room.id", payload.Room))

	if payload.Room == "" {
		for id, c := range h.clients {
			if id != payload.Except {
				c.Send(payload.Message)
			}
		}
		return
	}

	h.mu.RLock()
	r, ok := h.rooms[payload.Room]
	h.mu.RUnlock()
	if !ok {
		return
	}
	r.Broadcast(ctx, payload.Message, payload.Except)
}
