package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

const (
	DefaultSize = 3
	seatCount   = 2
)

// Game is the criss-cross state machine. It is Pending while a seat is
// unregistered, InProgress once both are filled and Over when someone won or the
// grid is full. All methods are safe for concurrent use; a move and any bot moves
// it triggers are applied under one lock.
type Game struct {
	mu      sync.Mutex
	id      string
	size    int
	grid    Grid
	players [seatCount]*Player
	turns   int
	winner  *Player
}

// NewGame creates a game with two unregistered seats playing 'x' and 'o'.
func NewGame(size int) (*Game, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}
	return &Game{
		id:      uuid.New().String(),
		size:    size,
		grid:    NewGrid(size),
		players: [seatCount]*Player{newPlayer(MarkX), newPlayer(MarkO)},
	}, nil
}

func (g *Game) ID() string {
	return g.id
}

func (g *Game) Size() int {
	return g.size
}

// Players returns both seats in seat order.
func (g *Game) Players() [seatCount]*Player {
	return g.players
}

// Player finds a seat by id.
func (g *Game) Player(id string) (*Player, bool) {
	for _, p := range g.players {
		if p.id == id {
			return p, true
		}
	}
	return nil, false
}

// Register puts the profile into the first unregistered seat and runs any bot
// moves that become due.
func (g *Game) Register(profile Profile) (*Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, p := range g.players {
		if !p.isRegistered() {
			return p, g.assign(p, profile)
		}
	}
	return nil, ErrNoOpenSeat
}

// RegisterAt force-assigns the profile to the given seat, replacing any occupant.
func (g *Game) RegisterAt(profile Profile, seat int) (*Player, error) {
	if seat < 0 || seat >= seatCount {
		return nil, fmt.Errorf("%w: %d", ErrSeatOutOfRange, seat)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	p := g.players[seat]
	return p, g.assign(p, profile)
}

func (g *Game) assign(p *Player, profile Profile) error {
	p.profile = &profile
	return g.cascade()
}

// Put writes the player's mark at row x, column y, then lets any bot that became
// due answer. Nothing changes when the move is rejected.
func (g *Game) Put(x, y int, player *Player) error {
	_, err := g.Move(x, y, player)
	return err
}

// Move is Put returning the snapshot taken under the same lock, so the caller sees
// exactly the state its move produced.
func (g *Game) Move(x, y int, player *Player) (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.put(x, y, player); err != nil {
		return Snapshot{}, err
	}
	err := g.cascade()
	return g.snapshot(), err
}

func (g *Game) put(x, y int, player *Player) error {
	if g.isOver() {
		return ErrGameOver
	}
	if player == nil || player.id != g.currentPlayer().id {
		return ErrWrongTurn
	}
	if !g.grid.inRange(x) || !g.grid.inRange(y) {
		return fmt.Errorf("cell [%d,%d] is %w", x, y, ErrOutOfRange)
	}
	if g.grid[x][y] != None {
		return fmt.Errorf("cell [%d,%d] is %w", x, y, ErrCellBusy)
	}

	g.grid[x][y] = player.mark
	g.turns++
	if g.checkWinAt(x, y) {
		g.winner = player
	}
	return nil
}

// cascade lets bot seats move while one of them is due and the game goes on.
func (g *Game) cascade() error {
	for !g.isOver() {
		current := g.currentPlayer()
		if !current.isBot() {
			return nil
		}
		x, y := current.profile.Strategy.NextMove(g.grid.Clone(), current.mark)
		if err := g.put(x, y, current); err != nil {
			return fmt.Errorf("%w: %s chose [%d,%d]: %w", ErrBadBotMove, current.name(), x, y, err)
		}
	}
	return nil
}

// checkWinAt reports whether the mark at (x,y) completes its row, its column or
// either diagonal. Both diagonals are always scanned.
func (g *Game) checkWinAt(x, y int) bool {
	mark := g.grid[x][y]

	row, col, diag, anti := true, true, true, true
	for i := 0; i < g.size; i++ {
		row = row && g.grid[x][i] == mark
		col = col && g.grid[i][y] == mark
		diag = diag && g.grid[i][i] == mark
		anti = anti && g.grid[i][g.size-1-i] == mark
	}
	return row || col || diag || anti
}

func (g *Game) currentPlayer() *Player {
	return g.players[g.turns%seatCount]
}

func (g *Game) isOver() bool {
	return g.winner != nil || g.grid.Full()
}

func (g *Game) isPending() bool {
	for _, p := range g.players {
		if !p.isRegistered() {
			return true
		}
	}
	return false
}

// CurrentPlayer is the seat due to move.
func (g *Game) CurrentPlayer() *Player {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentPlayer()
}

func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isOver()
}

// IsPending reports whether at least one seat is still unregistered.
func (g *Game) IsPending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isPending()
}

func (g *Game) Turns() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turns
}

// Winner returns the winning seat, if any.
func (g *Game) Winner() (*Player, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner, g.winner != nil
}

// Grid returns a copy of the current grid.
func (g *Game) Grid() Grid {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.grid.Clone()
}

// IsRegistered reports whether the seat holds a profile.
func (g *Game) IsRegistered(p *Player) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return p.isRegistered()
}

// IsBot reports whether the seat is held by a bot.
func (g *Game) IsBot(p *Player) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return p.isBot()
}

func (g *Game) String() string {
	return g.Grid().String()
}
