package model

import (
	"fmt"
	"strings"
)

// MoveRequest is a move as submitted by a player or chosen by the AI.
// Promotion must be set exactly when a pawn reaches the far rank.
type MoveRequest struct {
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

// LastMove is the most recently applied move; en passant is read from it.
type LastMove struct {
	From  Position `json:"from"`
	To    Position `json:"to"`
	Piece Piece    `json:"piece"`
}

type Ply struct {
	Piece         Piece     `json:"piece"`
	From          Position  `json:"from"`
	To            Position  `json:"to"`
	CapturedPiece *Piece    `json:"capturedPiece"`
	EnPassant     bool      `json:"enPassant"`
	Promotion     PieceType `json:"promotion"`
	Notation      string    `json:"notation"`
}

type Move struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// ParseMoveRequest builds a MoveRequest from algebraic squares and an
// optional promotion piece.
func ParseMoveRequest(from, to, promotion string) (MoveRequest, error) {
	f, err := ParsePosition(from)
	if err != nil {
		return MoveRequest{}, err
	}
	t, err := ParsePosition(to)
	if err != nil {
		return MoveRequest{}, err
	}
	p, err := ParsePromotion(promotion)
	if err != nil {
		return MoveRequest{}, err
	}
	return MoveRequest{From: f, To: t, Promotion: p}, nil
}

// ParseCoordinateMove parses "e2e4" or "e7e8q".
func ParseCoordinateMove(s string) (MoveRequest, error) {
	if len(s) != 4 && len(s) != 5 {
		return MoveRequest{}, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}
	return ParseMoveRequest(s[0:2], s[2:4], s[4:])
}

func (m MoveRequest) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != "" {
		s += strings.ToLower(m.Promotion.getPieceNotation())
	}
	return s
}
