package model

import (
	"fmt"
	"slices"
)

const (
	ResolveCheckmate = "checkmate"
	ResolveStalemate = "stalemate"
)

// GameState is the complete rules state of one game. All mutation goes
// through ApplyMove; every other method is read-only.
type GameState struct {
	Board          Board          `json:"boardState"`
	ToMove         Color          `json:"toMove"`
	LastMove       *LastMove      `json:"lastMove"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	CheckSquare    *Position      `json:"checkSquare"`
	Resolve        *string        `json:"resolve"`
	Winner         *Color         `json:"winner"`
}

// CapturedPieces lists pieces taken by each colour.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

// NewGameState returns the standard starting position with White to move.
func NewGameState() *GameState {
	return &GameState{
		Board:          newBoard(),
		ToMove:         White,
		MoveHistory:    make([]Move, 0),
		CapturedPieces: newCapturedPieces(),
	}
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

// NewGameStateFromPieces builds a position from explicit placements. It
// requires one king per colour, no pawn on a back rank, and that the side
// not to move is not in check.
func NewGameStateFromPieces(pieces map[Position]Piece, toMove Color) (*GameState, error) {
	if toMove != White && toMove != Black {
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidPosition, toMove)
	}
	s := &GameState{
		ToMove:         toMove,
		MoveHistory:    make([]Move, 0),
		CapturedPieces: newCapturedPieces(),
	}
	kings := map[Color]int{}
	for pos, p := range pieces {
		if !pos.InBounds() {
			return nil, fmt.Errorf("%w: %v", ErrOutOfBounds, pos)
		}
		if p.Type.Value() == 0 || (p.Color != White && p.Color != Black) {
			return nil, fmt.Errorf("%w: bad piece %+v on %v", ErrInvalidPosition, p, pos)
		}
		if p.Type == Pawn && (pos.Y == 0 || pos.Y == 7) {
			return nil, fmt.Errorf("%w: pawn on back rank %v", ErrInvalidPosition, pos)
		}
		if p.Type == King {
			kings[p.Color]++
		}
		s.Board.place(pos, p)
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return nil, fmt.Errorf("%w: need one king per side, have white=%d black=%d", ErrInvalidPosition, kings[White], kings[Black])
	}
	if s.IsInCheck(toMove.Opponent()) {
		return nil, fmt.Errorf("%w: %s is in check but not to move", ErrInvalidPosition, toMove.Opponent())
	}
	s.updateStatus()
	return s, nil
}

// Clone returns a deep copy that shares no mutable data with s.
func (s *GameState) Clone() *GameState {
	c := *s
	if s.LastMove != nil {
		lm := *s.LastMove
		c.LastMove = &lm
	}
	c.MoveHistory = make([]Move, len(s.MoveHistory))
	for i, m := range s.MoveHistory {
		c.MoveHistory[i] = Move{WhitePly: m.WhitePly.clone(), BlackPly: m.BlackPly.clone()}
	}
	c.CapturedPieces = CapturedPieces{
		White: slices.Clone(s.CapturedPieces.White),
		Black: slices.Clone(s.CapturedPieces.Black),
	}
	if s.CheckSquare != nil {
		sq := *s.CheckSquare
		c.CheckSquare = &sq
	}
	if s.Resolve != nil {
		r := *s.Resolve
		c.Resolve = &r
	}
	if s.Winner != nil {
		w := *s.Winner
		c.Winner = &w
	}
	return &c
}

func (p *Ply) clone() *Ply {
	if p == nil {
		return nil
	}
	c := *p
	if p.CapturedPiece != nil {
		cp := *p.CapturedPiece
		c.CapturedPiece = &cp
	}
	return &c
}

// IsInCheck reports whether color's king is attacked. It panics with
// ErrKingNotFound if color has no king on the board.
func (s *GameState) IsInCheck(color Color) bool {
	return kingInCheck(&s.Board, color)
}

func kingInCheck(board *Board, color Color) bool {
	king, ok := board.KingPosition(color)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrKingNotFound, color))
	}
	return IsSquareAttacked(board, king, color.Opponent())
}

// LegalMoves returns the destinations of the piece on from that do not
// leave its own king in check.
func (s *GameState) LegalMoves(from Position) []Position {
	piece, ok := s.Board.PieceAt(from)
	if !ok {
		return nil
	}
	legal := []Position{}
	for _, to := range PseudoLegalMoves(&s.Board, from, s.LastMove) {
		next := s.Board
		movePiece(&next, from, to, Queen)
		if !kingInCheck(&next, piece.Color) {
			legal = append(legal, to)
		}
	}
	return legal
}

// AllLegalMoves returns every legal move of color, scanning the board row
// by row from Black's back rank.
func (s *GameState) AllLegalMoves(color Color) []SimpleMove {
	moves := []SimpleMove{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			from := Position{X: x, Y: y}
			if p, ok := s.Board.PieceAt(from); !ok || p.Color != color {
				continue
			}
			for _, to := range s.LegalMoves(from) {
				moves = append(moves, SimpleMove{From: from, To: to})
			}
		}
	}
	return moves
}

func (s *GameState) hasLegalMove(color Color) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			from := Position{X: x, Y: y}
			if p, ok := s.Board.PieceAt(from); ok && p.Color == color && len(s.LegalMoves(from)) > 0 {
				return true
			}
		}
	}
	return false
}

func (s *GameState) IsCheckmate(color Color) bool {
	return s.IsInCheck(color) && !s.hasLegalMove(color)
}

func (s *GameState) IsStalemate(color Color) bool {
	return !s.IsInCheck(color) && !s.hasLegalMove(color)
}

// NeedsPromotion reports whether moving from -> to brings a pawn to its
// far rank.
func (s *GameState) NeedsPromotion(from, to Position) bool {
	p, ok := s.Board.PieceAt(from)
	return ok && p.Type == Pawn && to.Y == promotionRow(p.Color)
}

// ApplyMove validates req against the side to move and the legal moves of
// its piece, then plays it. It is the only way the live state changes.
func (s *GameState) ApplyMove(req MoveRequest) (Ply, error) {
	if s.Resolve != nil {
		return Ply{}, fmt.Errorf("%w: %s", ErrGameOver, *s.Resolve)
	}
	if !req.From.InBounds() || !req.To.InBounds() {
		return Ply{}, fmt.Errorf("%w: %v -> %v", ErrOutOfBounds, req.From, req.To)
	}
	piece, ok := s.Board.PieceAt(req.From)
	if !ok {
		return Ply{}, fmt.Errorf("%w: %v", ErrEmptySquare, req.From)
	}
	if piece.Color != s.ToMove {
		return Ply{}, fmt.Errorf("%w: %s to move", ErrNotYourTurn, s.ToMove)
	}
	if !slices.Contains(s.LegalMoves(req.From), req.To) {
		return Ply{}, fmt.Errorf("%w: %v%v", ErrIllegalMove, req.From, req.To)
	}
	if s.NeedsPromotion(req.From, req.To) {
		if req.Promotion == "" {
			return Ply{}, fmt.Errorf("%w: %v%v", ErrPromotionRequired, req.From, req.To)
		}
		if !req.Promotion.IsPromotionChoice() {
			return Ply{}, fmt.Errorf("%w: %q", ErrInvalidPromotion, req.Promotion)
		}
	} else if req.Promotion != "" {
		return Ply{}, fmt.Errorf("%w: %v%v=%s", ErrUnexpectedPromotion, req.From, req.To, req.Promotion)
	}

	captured, enPassant := movePiece(&s.Board, req.From, req.To, req.Promotion)
	ply := Ply{
		Piece:         piece,
		From:          req.From,
		To:            req.To,
		CapturedPiece: captured,
		EnPassant:     enPassant,
		Promotion:     req.Promotion,
		Notation:      getNotation(piece, req.From, req.To, captured != nil, req.Promotion),
	}
	if captured != nil {
		switch s.ToMove {
		case White:
			s.CapturedPieces.White = append(s.CapturedPieces.White, *captured)
		case Black:
			s.CapturedPieces.Black = append(s.CapturedPieces.Black, *captured)
		}
	}
	s.LastMove = &LastMove{From: req.From, To: req.To, Piece: piece}

	s.switchTurn()
	s.updateStatus()
	switch {
	case s.Resolve != nil && *s.Resolve == ResolveCheckmate:
		ply.Notation += "#"
	case s.IsCheck:
		ply.Notation += "+"
	}
	s.recordPly(ply)
	return ply, nil
}

func (s *GameState) recordPly(ply Ply) {
	// the mover is the side no longer to move
	if s.ToMove == Black || len(s.MoveHistory) == 0 {
		m := Move{}
		if s.ToMove == Black {
			m.WhitePly = &ply
		} else {
			m.BlackPly = &ply
		}
		s.MoveHistory = append(s.MoveHistory, m)
		return
	}
	s.MoveHistory[len(s.MoveHistory)-1].BlackPly = &ply
}

// updateStatus refreshes the check flag and game result for the side to move.
func (s *GameState) updateStatus() {
	s.IsCheck = s.IsInCheck(s.ToMove)
	s.CheckSquare = nil
	if s.IsCheck {
		king, _ := s.Board.KingPosition(s.ToMove)
		s.CheckSquare = &king
	}
	if s.hasLegalMove(s.ToMove) {
		return
	}
	result := ResolveStalemate
	if s.IsCheck {
		result = ResolveCheckmate
		winner := s.ToMove.Opponent()
		s.Winner = &winner
	}
	s.Resolve = &result
}

func (s *GameState) switchTurn() {
	s.ToMove = s.ToMove.Opponent()
}

// movePiece relocates the piece on from to to, removing a pawn captured en
// passant and promoting a pawn that reaches its far rank. It returns the
// captured piece, if any.
func movePiece(board *Board, from, to Position, promotion PieceType) (*Piece, bool) {
	piece, _ := board.PieceAt(from)
	var captured *Piece
	enPassant := false
	if target, ok := board.PieceAt(to); ok {
		captured = &target
	} else if piece.Type == Pawn && from.X != to.X {
		victimPos := Position{X: to.X, Y: from.Y}
		if victim, ok := board.PieceAt(victimPos); ok {
			captured = &victim
			enPassant = true
			board.remove(victimPos)
		}
	}
	board.remove(from)
	piece.HasMoved = true
	if piece.Type == Pawn && to.Y == promotionRow(piece.Color) {
		if promotion == "" {
			promotion = Queen
		}
		piece.Type = promotion
	}
	board.place(to, piece)
	return captured, enPassant
}

func getNotation(piece Piece, from, to Position, capture bool, promotion PieceType) string {
	prefix := piece.Type.getPieceNotation()
	if piece.Type == Pawn && capture {
		prefix = from.getFileNotation()
	}
	captureMark := ""
	if capture {
		captureMark = "x"
	}
	suffix := ""
	if promotion != "" {
		suffix = "=" + promotion.getPieceNotation()
	}
	return fmt.Sprintf("%s%s%s%s", prefix, captureMark, to.getSquareNotation(), suffix)
}

// Evaluate sums material, positive for White and negative for Black.
func Evaluate(board *Board) int {
	total := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := board.Squares[y][x]
			if p.IsEmpty() {
				continue
			}
			if p.Color == White {
				total += p.Type.Value()
			} else {
				total -= p.Type.Value()
			}
		}
	}
	return total
}
