package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
	"github.com/rocketscienceinc/tictactoe-widget/internal/widget"
)

// Palette holds the colours of one theme.
type Palette struct {
	Background string
	Panel      string
	Text       string
	Muted      string
	Border     string
	Cursor     string
	Win        string
	X          string
	O          string
}

var (
	lightPalette = Palette{
		Background: "#f8fafc",
		Panel:      "#ffffff",
		Text:       "#0f172a",
		Muted:      "#64748b",
		Border:     "#cbd5e1",
		Cursor:     "#f59e0b",
		Win:        "#16a34a",
		X:          widget.ColorX,
		O:          widget.ColorO,
	}

	darkPalette = Palette{
		Background: "#0f172a",
		Panel:      "#1e293b",
		Text:       "#f1f5f9",
		Muted:      "#94a3b8",
		Border:     "#334155",
		Cursor:     "#fbbf24",
		Win:        "#4ade80",
		X:          "#60a5fa",
		O:          "#22d3ee",
	}
)

// Styles contains the style set derived from a palette.
type Styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Toggle   lipgloss.Style
	Status   map[string]lipgloss.Style // keyed by widget status class
	Cell     lipgloss.Style
	Cursor   lipgloss.Style
	Disabled lipgloss.Style
	X        lipgloss.Style
	O        lipgloss.Style
	Legend   lipgloss.Style
	Help     lipgloss.Style
}

func PaletteFor(theme entity.Theme) Palette {
	if theme.IsDark() {
		return darkPalette
	}

	return lightPalette
}

func NewStyles(theme entity.Theme) Styles {
	p := PaletteFor(theme)

	cell := lipgloss.NewStyle().
		Width(5).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Border)).
		Foreground(lipgloss.Color(p.Text))

	return Styles{
		App: lipgloss.NewStyle().
			Background(lipgloss.Color(p.Panel)).
			Foreground(lipgloss.Color(p.Text)).
			Padding(1, 3),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.Text)),
		Toggle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Muted)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 1),
		Status: map[string]lipgloss.Style{
			"x":     lipgloss.NewStyle().Foreground(lipgloss.Color(p.X)),
			"o":     lipgloss.NewStyle().Foreground(lipgloss.Color(p.O)),
			"win":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Win)),
			"win o": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.O)),
			"":      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)),
		},
		Cell:     cell,
		Cursor:   cell.BorderForeground(lipgloss.Color(p.Cursor)),
		Disabled: cell.Foreground(lipgloss.Color(p.Muted)),
		X:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.X)),
		O:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.O)),
		Legend:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
	}
}
