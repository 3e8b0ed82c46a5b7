package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session binds one page load of the web widget to its game and theme.
// The two are kept side by side and never mixed.
type Session struct {
	ID        string    `json:"id"`
	Game      Game      `json:"game"`
	Theme     Theme     `json:"theme"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(theme Theme) Session {
	return Session{
		ID:        uuid.NewString(),
		Game:      NewGame(),
		Theme:     theme,
		UpdatedAt: time.Now().UTC(),
	}
}

func (that Session) WithGame(game Game) Session {
	that.Game = game
	that.UpdatedAt = time.Now().UTC()
	return that
}

func (that Session) WithTheme(theme Theme) Session {
	that.Theme = theme
	that.UpdatedAt = time.Now().UTC()
	return that
}
