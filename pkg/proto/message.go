package proto

import (
	"ctchen222/Criss-Cross/internal/game"
	"encoding/json"
	"fmt"
)

// Command names a client request.
type Command string

const (
	CommandStart      Command = "start"
	CommandJoin       Command = "join"
	CommandPut        Command = "put"
	CommandDisconnect Command = "disconnect"
)

// Commands lists every command the server understands.
func Commands() []Command {
	return []Command{CommandStart, CommandJoin, CommandPut, CommandDisconnect}
}

// Server event names.
const (
	EventJoin    = "join"
	EventStatus  = "status"
	EventError   = "error"
	EventMessage = "message"
	EventAck     = "ack"
)

// ClientToServerMessage represents a message from the client to the server.
// Ack, when present, asks for the command's callback to be answered with an
// "ack" event carrying the same id.
type ClientToServerMessage struct {
	Command Command         `json:"command" validate:"required,oneof=start join put disconnect"`
	Ack     *int64          `json:"ack,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Event string          `json:"event" validate:"required"`
	Ack   *int64          `json:"ack,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewServerMessage encodes data into an event message.
func NewServerMessage(event string, data any) (*ServerToClientMessage, error) {
	msg := &ServerToClientMessage{Event: event}
	if data == nil {
		return msg, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s data: %w", event, err)
	}
	msg.Data = raw
	return msg, nil
}

// StartPayload configures a new game.
type StartPayload struct {
	Bot bool `json:"bot"`
}

// PutPayload places the seat's mark at row X, column Y.
type PutPayload struct {
	PlayerID string `json:"playerId" validate:"required"`
	X        *int   `json:"x" validate:"required"`
	Y        *int   `json:"y" validate:"required"`
}

// ErrorPayload carries a rejected command's reason.
type ErrorPayload struct {
	Message string `json:"message"`
}

// CallbackArgs are the arguments of the start/join callback, sent as a
// two-element array.
type CallbackArgs struct {
	Player game.PlayerSnapshot
	Game   game.Snapshot
}

func (a CallbackArgs) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{a.Player, a.Game})
}

func (a *CallbackArgs) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("callback args: want 2 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &a.Player); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &a.Game)
}
