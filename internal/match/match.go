package match

import (
	"ctchen222/Criss-Cross/internal/game"
	"log/slog"
	"sync"
)

// Registry is the process-wide directory of live games. Games are kept in
// insertion order and are never removed.
type Registry struct {
	mu       sync.RWMutex
	games    []*game.Game
	byID     map[string]*game.Game
	byPlayer map[string]*game.Game
}

func NewRegistry() *Registry {
	return &Registry{
		games:    make([]*game.Game, 0),
		byID:     make(map[string]*game.Game),
		byPlayer: make(map[string]*game.Game),
	}
}

// Add inserts a game into the live set. Adding the same game twice is a no-op.
func (r *Registry) Add(g *game.Game) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[g.ID()]; ok {
		return
	}
	r.games = append(r.games, g)
	r.byID[g.ID()] = g
	for _, p := range g.Players() {
		r.byPlayer[p.ID()] = g
	}
	slog.Debug("Registry: game added", "game.id", g.ID(), "games.count", len(r.games))
}

// FindAvailable returns the earliest added game that still has an open seat.
func (r *Registry) FindAvailable() (*game.Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.games {
		if g.IsPending() {
			return g, true
		}
	}
	return nil, false
}

// FindByPlayer returns the game owning the seat with the given id.
func (r *Registry) FindByPlayer(playerID string) (*game.Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byPlayer[playerID]
	return g, ok
}

// Get returns a game by its id.
func (r *Registry) Get(gameID string) (*game.Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[gameID]
	return g, ok
}

// Games returns the live games in insertion order.
func (r *Registry) Games() []*game.Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*game.Game, len(r.games))
	copy(out, r.games)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
