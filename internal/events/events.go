package events

import "encoding/json"

// Pub/Sub channel constants
const (
	EventsChannel = "channel:events"
)

// Event types
const (
	TypeBroadcast = "broadcast"
)

// Event represents a message fanned out to every hub through the relay.
type Event struct {
	Type    string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// BroadcastPayload is the payload for the "broadcast" event. An empty Room
// addresses every connection; Except skips the sending connection.
type BroadcastPayload struct {
	Room    string          `json:"room,omitempty"`
	Except  string          `json:"except,omitempty"`
	Message json.RawMessage `json:"message"`
}

// NewBroadcast wraps an encoded client message into a relay event.
func NewBroadcast(room, except string, message []byte) (Event, error) {
	payload, err := json.Marshal(BroadcastPayload{Room: room, Except: except, Message: message})
	if err != nil {
		return Event{}, err
	}
	return Event{Type: TypeBroadcast, Payload: payload}, nil
}
