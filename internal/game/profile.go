package game

import "github.com/google/uuid"

// ProfileKind tags the occupant of a seat.
type ProfileKind int

const (
	Human ProfileKind = iota + 1
	Bot
)

func (k ProfileKind) String() string {
	switch k {
	case Human:
		return "human"
	case Bot:
		return "bot"
	default:
		return "unknown"
	}
}

// Strategy picks the next cell for a bot-held seat. It must only read the board
// and must return an empty cell; the game performs the move itself.
type Strategy interface {
	NextMove(board Board, mark Mark) (x, y int)
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(board Board, mark Mark) (x, y int)

func (f StrategyFunc) NextMove(board Board, mark Mark) (x, y int) {
	return f(board, mark)
}

// Profile is the occupant of a seat. Immutable after creation.
type Profile struct {
	Kind     ProfileKind
	Name     string
	Strategy Strategy
}

// NewHuman creates a human profile. An empty name gets a generated anonymous one.
func NewHuman(name string) Profile {
	if name == "" {
		name = "Anonymous-" + uuid.New().String()
	}
	return Profile{Kind: Human, Name: name}
}

// NewBot creates a bot profile driven by the given strategy.
func NewBot(strategy Strategy) Profile {
	return Profile{Kind: Bot, Name: "Bot-" + uuid.New().String(), Strategy: strategy}
}

func (p Profile) IsBot() bool {
	return p.Kind == Bot && p.Strategy != nil
}
