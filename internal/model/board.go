package model

import (
	"encoding/json"
	"fmt"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Value is the material value of the piece type. The king's value is a
// sentinel so that any line losing the king dominates the score.
func (p PieceType) Value() int {
	switch p {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 1000
	}
	return 0
}

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

// IsPromotionChoice reports whether a pawn may promote to p.
func (p PieceType) IsPromotionChoice() bool {
	return p == Queen || p == Rook || p == Bishop || p == Knight
}

// ParsePromotion maps "q", "queen", "Q" and friends to a PieceType.
func ParsePromotion(s string) (PieceType, error) {
	switch s {
	case "":
		return "", nil
	case "q", "Q", "queen":
		return Queen, nil
	case "r", "R", "rook":
		return Rook, nil
	case "b", "B", "bishop":
		return Bishop, nil
	case "n", "N", "knight":
		return Knight, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPromotion, s)
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the row delta of a pawn advance.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// Piece is a board occupant. The zero Piece marks an empty square.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == ""
}

// Position is a square. X is the file (0 = a) and Y the row from Black's
// side (0 = rank 8, 7 = rank 1).
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

func (p Position) add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return p.getSquareNotation()
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", p.X+97)
}

// ParsePosition parses an algebraic square such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrOutOfBounds, s)
	}
	return Position{X: int(s[0] - 'a'), Y: 8 - int(s[1]-'0')}, nil
}

// Board is an 8x8 grid indexed [Y][X]. It holds pieces by value, so copying
// a Board yields an independent board.
type Board struct {
	Squares [8][8]Piece

	whiteKing, blackKing       Position
	hasWhiteKing, hasBlackKing bool
}

// PieceAt returns the occupant of pos and whether there is one.
// Out-of-board positions are reported as empty.
func (b *Board) PieceAt(pos Position) (Piece, bool) {
	if !pos.InBounds() {
		return Piece{}, false
	}
	p := b.Squares[pos.Y][pos.X]
	return p, !p.IsEmpty()
}

func (b *Board) isEmpty(pos Position) bool {
	return b.Squares[pos.Y][pos.X].IsEmpty()
}

// place puts p on pos, replacing any occupant.
func (b *Board) place(pos Position, p Piece) {
	b.remove(pos)
	b.Squares[pos.Y][pos.X] = p
	if p.Type == King {
		b.setKing(p.Color, pos)
	}
}

// remove empties pos.
func (b *Board) remove(pos Position) {
	old := b.Squares[pos.Y][pos.X]
	if old.Type == King {
		switch old.Color {
		case White:
			if b.whiteKing == pos {
				b.hasWhiteKing = false
			}
		case Black:
			if b.blackKing == pos {
				b.hasBlackKing = false
			}
		}
	}
	b.Squares[pos.Y][pos.X] = Piece{}
}

func (b *Board) setKing(c Color, pos Position) {
	switch c {
	case White:
		b.whiteKing, b.hasWhiteKing = pos, true
	case Black:
		b.blackKing, b.hasBlackKing = pos, true
	}
}

// KingPosition returns the square of c's king.
func (b *Board) KingPosition(c Color) (Position, bool) {
	if c == White {
		return b.whiteKing, b.hasWhiteKing
	}
	return b.blackKing, b.hasBlackKing
}

// MarshalJSON renders the board as rows of pieces with null for empty squares.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, 8)
	for y := 0; y < 8; y++ {
		rows[y] = make([]*Piece, 8)
		for x := 0; x < 8; x++ {
			if p := b.Squares[y][x]; !p.IsEmpty() {
				rows[y][x] = &p
			}
		}
	}
	return json.Marshal(rows)
}

func newBoard() Board {
	var board Board
	back := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x, t := range back {
		board.place(Position{X: x, Y: 0}, Piece{Type: t, Color: Black})
		board.place(Position{X: x, Y: 7}, Piece{Type: t, Color: White})
	}
	for x := 0; x < 8; x++ {
		board.place(Position{X: x, Y: 1}, Piece{Type: Pawn, Color: Black})
		board.place(Position{X: x, Y: 6}, Piece{Type: Pawn, Color: White})
	}
	return board
}
