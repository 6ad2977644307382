package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	chess "github.com/benbeisheim/chessai-backend/internal/model"
)

var (
	lightSquare  = lipgloss.NewStyle().Background(lipgloss.Color("#F0D9B5")).Foreground(lipgloss.Color("#000000"))
	darkSquare   = lipgloss.NewStyle().Background(lipgloss.Color("#B58863")).Foreground(lipgloss.Color("#000000"))
	targetSquare = lipgloss.NewStyle().Background(lipgloss.Color("#BACA44")).Foreground(lipgloss.Color("#000000"))
	lastSquare   = lipgloss.NewStyle().Background(lipgloss.Color("#CDD26A")).Foreground(lipgloss.Color("#000000"))
	checkSquare  = lipgloss.NewStyle().Background(lipgloss.Color("#FF0000")).Foreground(lipgloss.Color("#000000"))
)

var glyphs = map[chess.Color]map[chess.PieceType]string{
	chess.White: {chess.King: "♔", chess.Queen: "♕", chess.Rook: "♖", chess.Bishop: "♗", chess.Knight: "♘", chess.Pawn: "♙"},
	chess.Black: {chess.King: "♚", chess.Queen: "♛", chess.Rook: "♜", chess.Bishop: "♝", chess.Knight: "♞", chess.Pawn: "♟"},
}

// RenderBoard draws the position with rank and file labels. flipped puts
// White at the top.
func RenderBoard(st *chess.GameState, selected *chess.Position, targets []chess.Position, flipped bool) string {
	rows := []int{0, 1, 2, 3, 4, 5, 6, 7}
	cols := []int{0, 1, 2, 3, 4, 5, 6, 7}
	if flipped {
		slices.Reverse(rows)
		slices.Reverse(cols)
	}

	var b strings.Builder
	for _, y := range rows {
		b.WriteByte(byte('8' - y))
		b.WriteString(" ")
		for _, x := range cols {
			pos := chess.Position{X: x, Y: y}
			b.WriteString(squareStyle(st, pos, selected, targets).Render(cell(st, pos, targets)))
		}
		b.WriteString("\n")
	}
	b.WriteString("  ")
	for _, x := range cols {
		b.WriteString(" " + string(rune('a'+x)) + " ")
	}
	return b.String()
}

func cell(st *chess.GameState, pos chess.Position, targets []chess.Position) string {
	p, ok := st.Board.PieceAt(pos)
	if !ok {
		if slices.Contains(targets, pos) {
			return " · "
		}
		return "   "
	}
	return " " + glyphs[p.Color][p.Type] + " "
}

func squareStyle(st *chess.GameState, pos chess.Position, selected *chess.Position, targets []chess.Position) lipgloss.Style {
	switch {
	case st.CheckSquare != nil && *st.CheckSquare == pos:
		return checkSquare
	case selected != nil && *selected == pos, slices.Contains(targets, pos):
		return targetSquare
	case st.LastMove != nil && (st.LastMove.From == pos || st.LastMove.To == pos):
		return lastSquare
	case (pos.X+pos.Y)%2 == 0:
		return lightSquare
	}
	return darkSquare
}
