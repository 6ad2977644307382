package model

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs = []Position{{X: 2, Y: 1}, {X: 1, Y: 2}, {X: -1, Y: 2}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: -1, Y: -2}, {X: 1, Y: -2}, {X: 2, Y: -1}}
	kingDirs   = []Position{{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1}}
)

// PseudoLegalMoves returns the destinations the piece on from can reach by
// its movement pattern, without regard to the safety of its own king.
// An empty from square yields no moves.
func PseudoLegalMoves(board *Board, from Position, last *LastMove) []Position {
	piece, ok := board.PieceAt(from)
	if !ok {
		return nil
	}
	switch piece.Type {
	case Pawn:
		return pawnMoves(board, from, piece, last)
	case Knight:
		return stepMoves(board, from, piece.Color, knightDirs)
	case Bishop:
		return slideMoves(board, from, piece.Color, bishopDirs)
	case Rook:
		return slideMoves(board, from, piece.Color, rookDirs)
	case Queen:
		return append(slideMoves(board, from, piece.Color, rookDirs), slideMoves(board, from, piece.Color, bishopDirs)...)
	case King:
		return stepMoves(board, from, piece.Color, kingDirs)
	}
	return nil
}

func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

func promotionRow(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

func pawnMoves(board *Board, from Position, piece Piece, last *LastMove) []Position {
	moves := []Position{}
	dir := piece.Color.forward()

	one := Position{X: from.X, Y: from.Y + dir}
	if one.InBounds() && board.isEmpty(one) {
		moves = append(moves, one)
		two := Position{X: from.X, Y: from.Y + 2*dir}
		if !piece.HasMoved && from.Y == pawnStartRow(piece.Color) && board.isEmpty(two) {
			moves = append(moves, two)
		}
	}
	for _, dx := range []int{-1, 1} {
		target := Position{X: from.X + dx, Y: from.Y + dir}
		if occupant, ok := board.PieceAt(target); ok && occupant.Color != piece.Color {
			moves = append(moves, target)
		}
	}
	if target, ok := enPassantTarget(board, from, piece, last); ok {
		moves = append(moves, target)
	}
	return moves
}

// enPassantTarget returns the square behind an enemy pawn that has just
// advanced two squares to sit beside the pawn on from.
func enPassantTarget(board *Board, from Position, piece Piece, last *LastMove) (Position, bool) {
	if piece.Type != Pawn || last == nil {
		return Position{}, false
	}
	if last.Piece.Type != Pawn || last.Piece.Color == piece.Color {
		return Position{}, false
	}
	if abs(last.To.Y-last.From.Y) != 2 || last.To.X != last.From.X {
		return Position{}, false
	}
	if last.To.Y != from.Y || abs(last.To.X-from.X) != 1 {
		return Position{}, false
	}
	if victim, ok := board.PieceAt(last.To); !ok || victim.Type != Pawn || victim.Color == piece.Color {
		return Position{}, false
	}
	target := Position{X: last.To.X, Y: from.Y + piece.Color.forward()}
	if !target.InBounds() || !board.isEmpty(target) {
		return Position{}, false
	}
	return target, true
}

func stepMoves(board *Board, from Position, color Color, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		target := from.add(dir)
		if !target.InBounds() {
			continue
		}
		if occupant, ok := board.PieceAt(target); !ok || occupant.Color != color {
			moves = append(moves, target)
		}
	}
	return moves
}

func slideMoves(board *Board, from Position, color Color, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		target := from.add(dir)
		for target.InBounds() {
			occupant, ok := board.PieceAt(target)
			if !ok {
				moves = append(moves, target)
			} else if occupant.Color != color {
				moves = append(moves, target)
				break
			} else {
				break
			}
			target = target.add(dir)
		}
	}
	return moves
}

// IsSquareAttacked reports whether any piece of attacker could capture on
// pos. It walks outward from pos instead of generating every enemy move.
func IsSquareAttacked(board *Board, pos Position, attacker Color) bool {
	isAttacker := func(p Position, types ...PieceType) bool {
		occupant, ok := board.PieceAt(p)
		if !ok || occupant.Color != attacker {
			return false
		}
		for _, t := range types {
			if occupant.Type == t {
				return true
			}
		}
		return false
	}
	rays := func(dirs []Position, types ...PieceType) bool {
		for _, dir := range dirs {
			target := pos.add(dir)
			for target.InBounds() {
				if !board.isEmpty(target) {
					if isAttacker(target, types...) {
						return true
					}
					break
				}
				target = target.add(dir)
			}
		}
		return false
	}
	if rays(rookDirs, Rook, Queen) || rays(bishopDirs, Bishop, Queen) {
		return true
	}
	for _, dir := range knightDirs {
		if isAttacker(pos.add(dir), Knight) {
			return true
		}
	}
	for _, dir := range kingDirs {
		if isAttacker(pos.add(dir), King) {
			return true
		}
	}
	// an attacking pawn sits one row behind pos from its own point of view
	for _, dx := range []int{-1, 1} {
		if isAttacker(Position{X: pos.X + dx, Y: pos.Y - attacker.forward()}, Pawn) {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
