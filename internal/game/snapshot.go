package game

// Snapshot is the wire form of a game's public state.
type Snapshot struct {
	Values Grid            `json:"values"`
	IsOver bool            `json:"isOver"`
	Winner *PlayerSnapshot `json:"winner,omitempty"`
}

// Snapshot captures the game state at a single point in time.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

func (g *Game) snapshot() Snapshot {
	s := Snapshot{
		Values: g.grid.Clone(),
		IsOver: g.isOver(),
	}
	if g.winner != nil {
		w := g.winner.snapshot()
		s.Winner = &w
	}
	return s
}

// PlayerSnapshot returns the wire form of one of the game's seats.
func (g *Game) PlayerSnapshot(p *Player) PlayerSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return p.snapshot()
}

// Summary is the listing form used by the HTTP API.
type Summary struct {
	ID        string           `json:"id"`
	Size      int              `json:"size"`
	Turns     int              `json:"turns"`
	IsPending bool             `json:"isPending"`
	Players   []PlayerSnapshot `json:"players"`
	Snapshot
}

func (g *Game) Summary() Summary {
	g.mu.Lock()
	defer g.mu.Unlock()

	players := make([]PlayerSnapshot, 0, seatCount)
	for _, p := range g.players {
		players = append(players, p.snapshot())
	}
	return Summary{
		ID:        g.id,
		Size:      g.size,
		Turns:     g.turns,
		IsPending: g.isPending(),
		Players:   players,
		Snapshot:  g.snapshot(),
	}
}
