package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-widget/internal/apperror"
)

// Theme is view state only and never touches the game.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(value string) (Theme, error) {
	switch Theme(value) {
	case ThemeLight, ThemeDark:
		return Theme(value), nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidTheme, value)
	}
}

func (that Theme) Toggle() Theme {
	if that == ThemeDark {
		return ThemeLight
	}

	return ThemeDark
}

func (that Theme) IsDark() bool {
	return that == ThemeDark
}

// ToggleLabel is the caption of the switch, naming the theme it leads to.
func (that Theme) ToggleLabel() string {
	if that.IsDark() {
		return "☀️ Light"
	}

	return "🌙 Dark"
}

func (that Theme) ToggleAriaLabel() string {
	return fmt.Sprintf("Switch to %s mode", that.Toggle())
}
