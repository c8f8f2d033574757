package room

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("room")

// Member is a connection that can be addressed through a room.
type Member interface {
	ID() string
	// Send queues an encoded message and reports whether it was accepted.
	Send(data []byte) bool
}

// Room is a named set of members. There is one room per game.
type Room struct {
	ID string

	mu      sync.RWMutex
	members map[string]Member
}

// NewRoom creates an empty room.
func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		members: make(map[string]Member),
	}
}

// AddMember adds a member to the room. Adding it twice is a no-op.
func (r *Room) AddMember(m Member) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.ID()] = m
}

// RemoveMember removes a member and reports whether the room is now empty.
func (r *Room) RemoveMember(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, id)
	return len(r.members) == 0
}

func (r *Room) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

// Broadcast sends an encoded message to every member except the one with id
// except, and returns how many members accepted it.
func (r *Room) Broadcast(ctx context.Context, data []byte, except string) int {
	ctx, span := tracer.Start(ctx, "room.Broadcast", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	sent := 0
	for id, m := range r.members {
		if id == except {
			continue
		}
		if !m.Send(data) {
			slog.WarnContext(ctx, "Dropped message for slow member", "room.id", r.ID, "connection.id", id)
			span.SetStatus(codes.Error, "Dropped message for slow member")
			continue
		}
		sent++
	}
	span.SetAttributes(attribute.Int("room.recipients", sent))
	return sent
}
