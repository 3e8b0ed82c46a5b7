// Package widget turns a game and a theme into what the grid, the status line
// and the theme switch display. It holds no game rules of its own.
package widget

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
)

const (
	// Legend colours of the two marks.
	ColorX = "#3b82f6"
	ColorO = "#06b6d4"
)

type Cell struct {
	Index     int    `json:"index"`
	Value     string `json:"value"`
	Disabled  bool   `json:"disabled"`
	AriaLabel string `json:"aria_label"`
	Class     string `json:"class"`
}

type View struct {
	SessionID        string         `json:"session_id,omitempty"`
	Cells            [9]Cell        `json:"cells"`
	Turn             string         `json:"turn"`
	Winner           string         `json:"winner"`
	Outcome          entity.Outcome `json:"outcome"`
	Status           string         `json:"status"`
	StatusClass      string         `json:"status_class"`
	Theme            entity.Theme   `json:"theme"`
	ThemeToggle      string         `json:"theme_toggle"`
	ThemeToggleLabel string         `json:"theme_toggle_aria_label"`
}

// Render builds the view of a game under the given theme.
func Render(game entity.Game, theme entity.Theme) View {
	winner := game.Winner()
	decided := game.IsDecided()

	view := View{
		Turn:             string(game.Turn),
		Winner:           string(winner),
		Outcome:          game.Outcome(),
		Status:           game.StatusText(),
		StatusClass:      statusClass(game),
		Theme:            theme,
		ThemeToggle:      theme.ToggleLabel(),
		ThemeToggleLabel: theme.ToggleAriaLabel(),
	}

	for i, mark := range game.Board {
		view.Cells[i] = Cell{
			Index:     i,
			Value:     string(mark),
			Disabled:  !mark.IsEmpty() || decided,
			AriaLabel: fmt.Sprintf("Square %d", i+1),
			Class:     cellClass(mark),
		}
	}

	return view
}

// RenderSession is Render plus the session id the page talks back with.
func RenderSession(session entity.Session) View {
	view := Render(session.Game, session.Theme)
	view.SessionID = session.ID

	return view
}

func cellClass(mark entity.Mark) string {
	switch mark {
	case entity.PlayerX:
		return "square-x"
	case entity.PlayerO:
		return "square-o"
	default:
		return ""
	}
}

func statusClass(game entity.Game) string {
	switch game.Outcome() {
	case entity.OutcomeXWins:
		return "win"
	case entity.OutcomeOWins:
		return "win o"
	case entity.OutcomeDraw:
		return ""
	}

	if game.Turn == entity.PlayerO {
		return "o"
	}

	return "x"
}
