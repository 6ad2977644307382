package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	chess "github.com/benbeisheim/chessai-backend/internal/model"
)

type firstMove struct{}

func (firstMove) SelectMove(s *chess.GameState) (chess.MoveRequest, error) {
	moves := s.AllLegalMoves(s.ToMove)
	if len(moves) == 0 {
		return chess.MoveRequest{}, chess.ErrNoMoveAvailable
	}
	return chess.MoveRequest{From: moves[0].From, To: moves[0].To}, nil
}

func enter(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func pos(t *testing.T, s string) chess.Position {
	t.Helper()
	p, err := chess.ParsePosition(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestHumanMoveThenComputerReply(t *testing.T) {
	m := NewModel(chess.White, firstMove{})

	m, cmd := enter(t, m, "e2e4")
	if cmd == nil {
		t.Fatal("expected the computer to start thinking")
	}
	if !m.thinking || m.st.ToMove != chess.Black {
		t.Fatalf("thinking = %v, ToMove = %s; want true, black", m.thinking, m.st.ToMove)
	}

	// a move typed while the computer thinks is refused
	m, _ = enter(t, m, "d2d4")
	if _, ok := m.st.Board.PieceAt(pos(t, "d2")); !ok {
		t.Error("d2d4 was played during the computer's turn")
	}

	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.thinking || m.st.ToMove != chess.White {
		t.Errorf("thinking = %v, ToMove = %s; want false, white", m.thinking, m.st.ToMove)
	}
	if len(m.st.MoveHistory) != 1 || m.st.MoveHistory[0].BlackPly == nil {
		t.Errorf("MoveHistory = %+v, want one full move", m.st.MoveHistory)
	}
}

func TestComputerOpensForBlackHuman(t *testing.T) {
	m := NewModel(chess.Black, firstMove{})
	if !m.thinking {
		t.Error("thinking = false, want the computer to be on move")
	}
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned no command")
	}
	ai := m.aiTurn()
	next, _ := m.Update(ai())
	m = next.(Model)
	if m.st.ToMove != chess.Black {
		t.Errorf("ToMove = %s, want black after the computer's opening", m.st.ToMove)
	}
}

func TestSelectSquare(t *testing.T) {
	m := NewModel(chess.White, firstMove{})

	m, cmd := enter(t, m, "E2")
	if cmd != nil {
		t.Error("selecting a square should not start a command")
	}
	if m.selected == nil || *m.selected != pos(t, "e2") {
		t.Fatalf("selected = %v, want e2", m.selected)
	}
	want := []chess.Position{pos(t, "e3"), pos(t, "e4")}
	sortPos := cmpopts.SortSlices(func(a, b chess.Position) bool { return a.Y < b.Y })
	if diff := cmp.Diff(want, m.targets, sortPos); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}

	m, _ = enter(t, m, "e5")
	if m.selected != nil || m.targets != nil {
		t.Errorf("selecting an empty square kept %v %v", m.selected, m.targets)
	}
}

func TestRejectedInputIsLogged(t *testing.T) {
	m := NewModel(chess.White, firstMove{})
	for _, line := range []string{"e2e5", "zz", "nonsense"} {
		var cmd tea.Cmd
		m, cmd = enter(t, m, line)
		if cmd != nil {
			t.Errorf("%q started a command", line)
		}
	}
	if m.st.ToMove != chess.White || len(m.st.MoveHistory) != 0 {
		t.Error("rejected input changed the game")
	}
	if last := m.logLines[len(m.logLines)-1]; !strings.Contains(last, "cannot read move") {
		t.Errorf("last log line = %q", last)
	}
}

func TestStaleComputerMoveIgnored(t *testing.T) {
	m := NewModel(chess.White, firstMove{})
	m, cmd := enter(t, m, "e2e4")
	stale := cmd()

	m, _ = enter(t, m, "new")
	next, _ := m.Update(stale)
	m = next.(Model)

	if len(m.st.MoveHistory) != 0 || m.st.ToMove != chess.White {
		t.Errorf("a reply for the previous game was applied: %+v", m.st.MoveHistory)
	}
}

func TestQuit(t *testing.T) {
	m := NewModel(chess.White, firstMove{})
	_, cmd := enter(t, m, "quit")
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit did not produce tea.QuitMsg")
	}
}

func TestRenderBoard(t *testing.T) {
	st := chess.NewGameState()

	out := RenderBoard(st, nil, nil, false)
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 9", len(lines))
	}
	if !strings.HasPrefix(lines[0], "8") || !strings.HasPrefix(lines[7], "1") {
		t.Errorf("rank labels = %q, %q", lines[0][:1], lines[7][:1])
	}
	if !strings.Contains(lines[0], "♚") || !strings.Contains(lines[7], "♔") {
		t.Error("kings missing from their back ranks")
	}
	if !strings.Contains(lines[8], "a") || !strings.Contains(lines[8], "h") {
		t.Errorf("file labels = %q", lines[8])
	}

	flipped := strings.Split(RenderBoard(st, nil, nil, true), "\n")
	if !strings.HasPrefix(flipped[0], "1") {
		t.Errorf("flipped first rank label = %q, want 1", flipped[0][:1])
	}
	if strings.Index(flipped[8], "h") > strings.Index(flipped[8], "a") {
		t.Error("flipped files should run from h to a")
	}
}
