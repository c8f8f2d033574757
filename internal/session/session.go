package session

//go:generate mockgen -source=session.go -destination=mocks/mock_session.go -package=mocks

import (
	"ctchen222/Criss-Cross/internal/game"
)

// Connection is the transport seen by a session: something that can join named
// rooms and emit named events to itself, to a room or to everyone else.
type Connection interface {
	ID() string
	Join(room string)
	// Emit sends an event to this connection only.
	Emit(event string, data any) error
	// BroadcastTo sends an event to every other connection in the room.
	BroadcastTo(room, event string, data any) error
	// Broadcast sends an event to every other connection.
	Broadcast(event string, data any) error
}

// Registry is the directory of live games the controller matches against.
type Registry interface {
	Add(g *game.Game)
	FindAvailable() (*game.Game, bool)
	FindByPlayer(playerID string) (*game.Game, bool)
}

// Notifier is the outbound half of a session.
type Notifier interface {
	// Join tells the other connections that a new game is open.
	Join() error
	// Status sends the game state to the room and to this connection.
	Status(room string, snapshot game.Snapshot) error
	// Error reports a rejected command to this connection only.
	Error(err error) error
	// Message sends a text announcement to the room and to this connection.
	Message(room, text string) error
}

// Callback answers a start or join command.
type Callback func(player game.PlayerSnapshot, snapshot game.Snapshot)
