package model

import "errors"

var (
	ErrOutOfBounds         = errors.New("square out of bounds")
	ErrEmptySquare         = errors.New("no piece at from square")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrIllegalMove         = errors.New("illegal move")
	ErrPromotionRequired   = errors.New("promotion piece required")
	ErrUnexpectedPromotion = errors.New("promotion on a non-promoting move")
	ErrInvalidPromotion    = errors.New("invalid promotion piece")
	ErrGameOver            = errors.New("game is over")
	ErrNoMoveAvailable     = errors.New("no move available")
	ErrInvalidPosition     = errors.New("invalid position")

	// ErrKingNotFound is raised by panic: every reachable position holds
	// one king of each colour.
	ErrKingNotFound = errors.New("king not found")
)
