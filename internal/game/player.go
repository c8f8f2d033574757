package game

import "github.com/google/uuid"

const unregisteredName = "unregistered"

// Player is a seat of a game: a fixed mark plus an optional profile.
// Players are owned by their Game and only mutated under its lock.
type Player struct {
	id      string
	mark    Mark
	profile *Profile
}

func newPlayer(mark Mark) *Player {
	return &Player{id: uuid.New().String(), mark: mark}
}

func (p *Player) ID() string {
	return p.id
}

func (p *Player) Mark() Mark {
	return p.mark
}

func (p *Player) isRegistered() bool {
	return p.profile != nil
}

func (p *Player) isBot() bool {
	return p.profile != nil && p.profile.IsBot()
}

func (p *Player) name() string {
	if !p.isRegistered() {
		return unregisteredName
	}
	return p.profile.Name
}

// PlayerSnapshot is the wire form of a seat.
type PlayerSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Mark Mark   `json:"mark"`
}

func (p *Player) snapshot() PlayerSnapshot {
	return PlayerSnapshot{ID: p.id, Name: p.name(), Mark: p.mark}
}
