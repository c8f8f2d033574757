package game

import "errors"

var (
	ErrGameOver   = errors.New("game is over")
	ErrWrongTurn  = errors.New("wrong player order")
	ErrOutOfRange = errors.New("out of range")
	ErrCellBusy   = errors.New("already busy")

	ErrInvalidSize    = errors.New("grid size must be at least 2")
	ErrNoOpenSeat     = errors.New("no open seat")
	ErrSeatOutOfRange = errors.New("seat out of range")
	ErrBadBotMove     = errors.New("bot strategy returned an unusable cell")
)
