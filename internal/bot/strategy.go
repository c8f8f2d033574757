package bot

import (
	"ctchen222/Criss-Cross/internal/game"
	"errors"
	"fmt"
	"sort"
)

const FirstAvailableName = "first-available"

var ErrUnknownStrategy = errors.New("unknown bot strategy")

// FirstAvailable scans the board in row-major order and takes the first empty cell.
// It must not be asked to move on a full board.
var FirstAvailable game.Strategy = game.StrategyFunc(firstAvailable)

func firstAvailable(board game.Board, _ game.Mark) (row, col int) {
	size := board.Size()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if board.At(r, c) == game.None {
				return r, c
			}
		}
	}
	return -1, -1
}

var strategies = map[string]game.Strategy{
	FirstAvailableName: FirstAvailable,
}

// Lookup resolves a configured strategy name.
func Lookup(name string) (game.Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownStrategy, name, Names())
	}
	return s, nil
}

// Names lists the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
