package session

import (
	"ctchen222/Criss-Cross/internal/game"
	"ctchen222/Criss-Cross/pkg/proto"
	"errors"
)

// RoomNotifier emits session events through a Connection.
type RoomNotifier struct {
	conn Connection
}

func NewRoomNotifier(conn Connection) *RoomNotifier {
	return &RoomNotifier{conn: conn}
}

func (n *RoomNotifier) Join() error {
	return n.conn.Broadcast(proto.EventJoin, nil)
}

func (n *RoomNotifier) Status(room string, snapshot game.Snapshot) error {
	return n.toRoomAndSelf(room, proto.EventStatus, snapshot)
}

func (n *RoomNotifier) Error(err error) error {
	return n.conn.Emit(proto.EventError, proto.ErrorPayload{Message: err.Error()})
}

func (n *RoomNotifier) Message(room, text string) error {
	return n.toRoomAndSelf(room, proto.EventMessage, text)
}

// toRoomAndSelf addresses the caller explicitly so it is covered whatever its
// room membership.
func (n *RoomNotifier) toRoomAndSelf(room, event string, data any) error {
	return errors.Join(
		n.conn.BroadcastTo(room, event, data),
		n.conn.Emit(event, data),
	)
}
