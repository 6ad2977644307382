package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var pieceLetters = map[byte]PieceType{
	'K': King, 'Q': Queen, 'R': Rook, 'B': Bishop, 'N': Knight, 'P': Pawn,
}

func sq(t testing.TB, s string) Position {
	t.Helper()
	p, err := ParsePosition(s)
	if err != nil {
		t.Fatalf("ParsePosition(%q): %v", s, err)
	}
	return p
}

// setupPosition builds a position from entries like "wKe1" or "bPd7".
func setupPosition(t testing.TB, toMove Color, placements ...string) *GameState {
	t.Helper()
	pieces := map[Position]Piece{}
	for _, pl := range placements {
		if len(pl) != 4 {
			t.Fatalf("bad placement %q", pl)
		}
		color := White
		if pl[0] == 'b' {
			color = Black
		}
		pieces[sq(t, pl[2:])] = Piece{Type: pieceLetters[pl[1]], Color: color}
	}
	s, err := NewGameStateFromPieces(pieces, toMove)
	if err != nil {
		t.Fatalf("NewGameStateFromPieces(%v): %v", placements, err)
	}
	return s
}

func mustApply(t testing.TB, s *GameState, move string) Ply {
	t.Helper()
	req, err := ParseCoordinateMove(move)
	if err != nil {
		t.Fatalf("ParseCoordinateMove(%q): %v", move, err)
	}
	ply, err := s.ApplyMove(req)
	if err != nil {
		t.Fatalf("ApplyMove(%s): %v", move, err)
	}
	return ply
}

var sortPositions = cmpopts.SortSlices(func(a, b Position) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
})

// assertSquares compares got with the algebraic squares in want, ignoring order.
func assertSquares(t testing.TB, got []Position, want ...string) {
	t.Helper()
	wantPos := make([]Position, len(want))
	for i, w := range want {
		wantPos[i] = sq(t, w)
	}
	if diff := cmp.Diff(wantPos, got, sortPositions, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("squares mismatch (-want +got):\n%s", diff)
	}
}
