package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	chess "github.com/benbeisheim/chessai-backend/internal/model"
)

func Run(human chess.Color, ai chess.Policy) error {
	p := tea.NewProgram(NewModel(human, ai), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
