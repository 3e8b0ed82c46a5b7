package widget

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, cells ...int) entity.Game {
	t.Helper()

	game := entity.NewGame()
	for _, cell := range cells {
		var accepted bool
		game, accepted = game.ApplyMove(cell)
		require.True(t, accepted)
	}

	return game
}

func TestRender_NewGame(t *testing.T) {
	// When: rendering a fresh game in light mode
	view := Render(entity.NewGame(), entity.ThemeLight)

	// Then: every square is clickable and labelled 1..9
	for i, cell := range view.Cells {
		assert.Equal(t, i, cell.Index)
		assert.Empty(t, cell.Value)
		assert.False(t, cell.Disabled)
		assert.Empty(t, cell.Class)
	}
	assert.Equal(t, "Square 1", view.Cells[0].AriaLabel)
	assert.Equal(t, "Square 9", view.Cells[8].AriaLabel)

	// Then: status and theme switch reflect the state
	assert.Equal(t, "Turn: X", view.Status)
	assert.Equal(t, "x", view.StatusClass)
	assert.Equal(t, "🌙 Dark", view.ThemeToggle)
	assert.Equal(t, "Switch to dark mode", view.ThemeToggleLabel)
}

func TestRender_InProgress(t *testing.T) {
	// Given: X at 0, O at 4
	view := Render(play(t, 0, 4), entity.ThemeDark)

	// Then: only the occupied squares are disabled
	assert.True(t, view.Cells[0].Disabled)
	assert.Equal(t, "square-x", view.Cells[0].Class)
	assert.True(t, view.Cells[4].Disabled)
	assert.Equal(t, "square-o", view.Cells[4].Class)
	assert.False(t, view.Cells[1].Disabled)

	assert.Equal(t, "x", view.StatusClass)
	assert.Equal(t, "☀️ Light", view.ThemeToggle)
}

func TestRender_Decided(t *testing.T) {
	t.Run("A win disables every square", func(t *testing.T) {
		view := Render(play(t, 0, 4, 1, 5, 2), entity.ThemeLight)

		for _, cell := range view.Cells {
			assert.True(t, cell.Disabled, "square %d", cell.Index)
		}
		assert.Equal(t, "X wins!", view.Status)
		assert.Equal(t, "win", view.StatusClass)
		assert.Equal(t, "X", view.Winner)
	})

	t.Run("O win gets its own status class", func(t *testing.T) {
		view := Render(play(t, 0, 2, 1, 4, 8, 6), entity.ThemeLight)

		assert.Equal(t, "win o", view.StatusClass)
	})

	t.Run("Draw has no status class", func(t *testing.T) {
		view := Render(play(t, 0, 1, 2, 4, 3, 5, 7, 6, 8), entity.ThemeLight)

		assert.Equal(t, "Draw", view.Status)
		assert.Empty(t, view.StatusClass)
		assert.Equal(t, entity.OutcomeDraw, view.Outcome)
		for _, cell := range view.Cells {
			assert.True(t, cell.Disabled, "square %d", cell.Index)
		}
	})
}

func TestRenderSession(t *testing.T) {
	session := entity.NewSession(entity.ThemeDark)

	view := RenderSession(session)

	assert.Equal(t, session.ID, view.SessionID)
	assert.Equal(t, entity.ThemeDark, view.Theme)
}
