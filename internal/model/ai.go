package model

import "math"

// Policy chooses a move for the side to move.
type Policy interface {
	SelectMove(state *GameState) (MoveRequest, error)
}

// Weights tunes the HeuristicAI scoring terms.
type Weights struct {
	CenterBonus    float64 `json:"centerBonus"`
	MobilityWeight float64 `json:"mobilityWeight"`
	OpeningPenalty float64 `json:"openingPenalty"`
	RiskWeight     float64 `json:"riskWeight"`
	RiskThreshold  int     `json:"riskThreshold"`
}

func DefaultWeights() Weights {
	return Weights{
		CenterBonus:    0.1,
		MobilityWeight: 0.05,
		OpeningPenalty: 0.3,
		RiskWeight:     0.2,
		RiskThreshold:  5,
	}
}

// HeuristicAI scores each legal move by one-ply static features and plays
// the best. There is no search beyond the opponent's immediate replies.
type HeuristicAI struct {
	Weights Weights
}

func NewHeuristicAI(w Weights) *HeuristicAI {
	return &HeuristicAI{Weights: w}
}

// SelectMove returns the highest scoring legal move for state.ToMove. Ties
// go to the first move in AllLegalMoves order. Promotions are to a queen.
func (ai *HeuristicAI) SelectMove(state *GameState) (MoveRequest, error) {
	moves := state.AllLegalMoves(state.ToMove)
	if len(moves) == 0 {
		return MoveRequest{}, ErrNoMoveAvailable
	}
	best := moves[0]
	bestScore := math.Inf(-1)
	for _, m := range moves {
		if score := ai.Score(state, m); score > bestScore {
			best, bestScore = m, score
		}
	}
	req := MoveRequest{From: best.From, To: best.To}
	if state.NeedsPromotion(best.From, best.To) {
		req.Promotion = Queen
	}
	return req, nil
}

// Score rates move from the mover's point of view. It does not mutate state.
func (ai *HeuristicAI) Score(state *GameState, move SimpleMove) float64 {
	piece, ok := state.Board.PieceAt(move.From)
	if !ok {
		return math.Inf(-1)
	}
	side := piece.Color
	next := state.hypothetical(move)

	score := float64(Evaluate(&next.Board))
	if side == Black {
		score = -score
	}
	if isCenter(move.To) {
		score += ai.Weights.CenterBonus
	}
	score += ai.Weights.MobilityWeight * float64(len(next.AllLegalMoves(side)))
	if !piece.HasMoved && (piece.Type == Queen || piece.Type == Rook) {
		score -= ai.Weights.OpeningPenalty
	}
	// every reply that wins a major piece counts, even several hitting the same one
	for _, reply := range next.AllLegalMoves(side.Opponent()) {
		target, ok := next.Board.PieceAt(reply.To)
		if ok && target.Color == side && target.Type.Value() >= ai.Weights.RiskThreshold {
			score -= ai.Weights.RiskWeight * float64(target.Type.Value())
		}
	}
	return score
}

// hypothetical returns an independent position with move played and the
// turn passed. History and captures are not carried over.
func (s *GameState) hypothetical(move SimpleMove) *GameState {
	piece, _ := s.Board.PieceAt(move.From)
	next := &GameState{Board: s.Board, ToMove: piece.Color.Opponent()}
	movePiece(&next.Board, move.From, move.To, Queen)
	next.LastMove = &LastMove{From: move.From, To: move.To, Piece: piece}
	return next
}

func isCenter(p Position) bool {
	return p.X >= 2 && p.X <= 5 && p.Y >= 2 && p.Y <= 5
}
