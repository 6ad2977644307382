package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	chess "github.com/benbeisheim/chessai-backend/internal/model"
)

// aiMoveMsg carries the AI's choice for the position numbered gen.
type aiMoveMsg struct {
	gen int
	req chess.MoveRequest
	err error
}

type Model struct {
	st    *chess.GameState
	gen   int
	human chess.Color
	ai    chess.Policy

	selected *chess.Position
	targets  []chess.Position
	thinking bool

	input    textinput.Model
	logLines []string

	width  int
	height int
}

func NewModel(human chess.Color, ai chess.Policy) Model {
	ti := textinput.New()
	ti.Placeholder = "e2 | e2e4 | e7e8q | new | quit"
	ti.Prompt = "> "
	ti.CharLimit = 16
	ti.Width = 40
	ti.Focus()

	return Model{
		st:       chess.NewGameState(),
		human:    human,
		ai:       ai,
		thinking: human == chess.Black,
		input:    ti,
		logLines: []string{fmt.Sprintf("new game, you play %s", human)},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.aiTurn())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case aiMoveMsg:
		cmd := m.applyAI(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			line := strings.TrimSpace(strings.ToLower(m.input.Value()))
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			cmd := m.execCommand(line)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) execCommand(line string) tea.Cmd {
	m.appendLog("> " + line)

	switch line {
	case "q", "quit", "exit":
		return tea.Quit
	case "new":
		m.st = chess.NewGameState()
		m.gen++
		m.thinking = false
		m.clearSelection()
		m.appendLog(fmt.Sprintf("new game, you play %s", m.human))
		return m.aiTurn()
	}

	if len(line) == 2 {
		m.selectSquare(line)
		return nil
	}

	req, err := chess.ParseCoordinateMove(line)
	if err != nil {
		m.appendLog(fmt.Sprintf("cannot read move: %v", err))
		return nil
	}
	return m.playHuman(req)
}

func (m *Model) selectSquare(square string) {
	pos, err := chess.ParsePosition(square)
	if err != nil {
		m.appendLog(err.Error())
		return
	}
	p, ok := m.st.Board.PieceAt(pos)
	if !ok {
		m.appendLog(fmt.Sprintf("%s is empty", square))
		m.clearSelection()
		return
	}
	m.selected = &pos
	m.targets = m.st.LegalMoves(pos)
	names := make([]string, len(m.targets))
	for i, t := range m.targets {
		names[i] = t.String()
	}
	m.appendLog(fmt.Sprintf("%s %s on %s: %s", p.Color, p.Type, square, strings.Join(names, " ")))
}

func (m *Model) clearSelection() {
	m.selected = nil
	m.targets = nil
}

func (m *Model) playHuman(req chess.MoveRequest) tea.Cmd {
	if m.thinking || m.st.ToMove != m.human {
		m.appendLog("wait for the computer to move")
		return nil
	}
	// the promotion choice defaults to a queen when none was typed
	if req.Promotion == "" && m.st.NeedsPromotion(req.From, req.To) {
		req.Promotion = chess.Queen
	}
	ply, err := m.st.ApplyMove(req)
	if err != nil {
		m.appendLog(fmt.Sprintf("move rejected: %v", err))
		return nil
	}
	m.gen++
	m.clearSelection()
	m.appendLog(fmt.Sprintf("you: %s", ply.Notation))
	m.reportResult()
	return m.aiTurn()
}

// aiTurn starts the AI search on a copy of the position when it is the
// computer's move.
func (m *Model) aiTurn() tea.Cmd {
	if m.st.Resolve != nil || m.st.ToMove == m.human {
		return nil
	}
	m.thinking = true
	st, gen, ai := m.st.Clone(), m.gen, m.ai
	return func() tea.Msg {
		req, err := ai.SelectMove(st)
		return aiMoveMsg{gen: gen, req: req, err: err}
	}
}

func (m *Model) applyAI(msg aiMoveMsg) tea.Cmd {
	if msg.gen != m.gen {
		return nil
	}
	m.thinking = false
	if errors.Is(msg.err, chess.ErrNoMoveAvailable) {
		m.reportResult()
		return nil
	}
	if msg.err != nil {
		m.appendLog(fmt.Sprintf("computer failed: %v", msg.err))
		return nil
	}
	ply, err := m.st.ApplyMove(msg.req)
	if err != nil {
		m.appendLog(fmt.Sprintf("computer move rejected: %v", err))
		return nil
	}
	m.gen++
	m.appendLog(fmt.Sprintf("computer: %s", ply.Notation))
	m.reportResult()
	return nil
}

func (m *Model) reportResult() {
	side := m.st.ToMove
	switch {
	case m.st.IsCheckmate(side):
		m.appendLog(fmt.Sprintf("checkmate, %s wins", side.Opponent()))
	case m.st.IsStalemate(side):
		m.appendLog("stalemate")
	case m.st.IsCheck:
		m.appendLog(fmt.Sprintf("%s is in check", side))
	}
}

func (m *Model) appendLog(s string) {
	m.logLines = append(m.logLines, s)
	if len(m.logLines) > 200 {
		m.logLines = m.logLines[len(m.logLines)-200:]
	}
}

func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	status := fmt.Sprintf("%s to move", m.st.ToMove)
	if m.thinking {
		status = "computer thinking"
	}
	if m.st.Resolve != nil {
		status = *m.st.Resolve
	}
	header := titleStyle.Render(fmt.Sprintf("chessai  [%s]  you: %s", status, m.human))

	board := RenderBoard(m.st, m.selected, m.targets, m.human == chess.Black)

	logHeight := max(5, m.height-16)
	logStart := max(0, len(m.logLines)-logHeight)
	logBody := strings.Join(m.logLines[logStart:], "\n")
	logBox := boxStyle.Width(max(30, m.width-30)).Height(logHeight).Render(logBody)

	body := lipgloss.JoinHorizontal(lipgloss.Top, boxStyle.Render(board), logBox)
	inputBox := boxStyle.Width(max(30, m.width-2)).Render(m.input.View())

	return header + "\n" + body + "\n" + inputBox + "\n"
}
