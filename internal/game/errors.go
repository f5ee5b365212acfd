package game

import "errors"

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrLeavesInCheck = errors.New("king would be in check")
	ErrGameOver      = errors.New("game is over")

	ErrNoPiece           = errors.New("no piece on that square")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrBlockedByOwnPiece = errors.New("square occupied by your piece")
)
