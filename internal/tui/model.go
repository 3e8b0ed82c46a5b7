// Package tui renders the widget in a terminal. The model keeps the current
// game as a value and redraws everything from it after each key press.
package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
	"github.com/rocketscienceinc/tictactoe-widget/internal/widget"
)

const boardSide = 3

type Model struct {
	Game   entity.Game
	Theme  entity.Theme
	Cursor int

	logger *slog.Logger
	keys   KeyMap
	help   help.Model
	styles Styles
}

func NewModel(logger *slog.Logger, theme entity.Theme) Model {
	return Model{
		Game:   entity.NewGame(),
		Theme:  theme,
		Cursor: 4,
		logger: logger.With("component", "tui"),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: NewStyles(theme),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-boardSide)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(boardSide)
	case key.Matches(msg, m.keys.Left):
		if m.Cursor%boardSide > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.Cursor%boardSide < boardSide-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.keys.Place):
		m.place(m.Cursor)
	case key.Matches(msg, m.keys.Cell):
		cell := int(msg.Runes[0] - '1')
		m.Cursor = cell
		m.place(cell)
	case key.Matches(msg, m.keys.Restart):
		m.Game = m.Game.Restart()
		m.logger.Debug("game restarted")
	case key.Matches(msg, m.keys.Theme):
		m.Theme = m.Theme.Toggle()
		m.styles = NewStyles(m.Theme)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if next := m.Cursor + delta; entity.IsValidCell(next) {
		m.Cursor = next
	}
}

func (m *Model) place(cell int) {
	game, accepted := m.Game.ApplyMove(cell)
	if !accepted {
		m.logger.Debug("move ignored", "cell", cell, "status", m.Game.StatusText())
		return
	}

	m.Game = game
	m.logger.Debug("move accepted", "cell", cell, "status", game.StatusText())
}

func (m Model) View() string {
	view := widget.Render(m.Game, m.Theme)
	s := m.styles

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		s.Title.Render("Tic Tac Toe"),
		"   ",
		s.Toggle.Render(view.ThemeToggle),
	)

	status := s.Status[view.StatusClass].Render(view.Status)

	rows := make([]string, 0, boardSide)
	for r := range boardSide {
		cells := make([]string, 0, boardSide)
		for c := range boardSide {
			cells = append(cells, m.renderCell(view.Cells[r*boardSide+c]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	board := lipgloss.JoinVertical(lipgloss.Left, rows...)

	legend := s.Legend.Render("X uses ") + s.X.Render(widget.ColorX) +
		s.Legend.Render(", O uses ") + s.O.Render(widget.ColorO)

	var b strings.Builder
	b.WriteString(header + "\n\n")
	b.WriteString(status + "\n\n")
	b.WriteString(board + "\n\n")
	b.WriteString(legend + "\n\n")
	b.WriteString(s.Help.Render(m.help.View(m.keys)))

	return s.App.Render(b.String())
}

func (m Model) renderCell(cell widget.Cell) string {
	s := m.styles

	style := s.Cell
	switch {
	case cell.Index == m.Cursor:
		style = s.Cursor
	case cell.Disabled:
		style = s.Disabled
	}

	content := " "
	switch cell.Value {
	case string(entity.PlayerX):
		content = s.X.Render(cell.Value)
	case string(entity.PlayerO):
		content = s.O.Render(cell.Value)
	}

	return style.Render(content)
}
