package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the palette for the feed. Colors are ANSI 256 codes so they work
// on most terminals.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	MutedText  lipgloss.Color

	SelectedBorder lipgloss.Color
	BorderColor    lipgloss.Color

	LinkForeground lipgloss.Color
	LikeAccent     lipgloss.Color
	Verified       lipgloss.Color
	UnseenStory    lipgloss.Color

	OverlayBackground  lipgloss.Color
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color
	PrimaryButton      lipgloss.Color
}

// DefaultTheme is a light-on-dark palette.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),
	MutedText:  lipgloss.Color("240"),

	SelectedBorder: lipgloss.Color("255"),
	BorderColor:    lipgloss.Color("238"),

	LinkForeground: lipgloss.Color("75"),
	LikeAccent:     lipgloss.Color("203"),
	Verified:       lipgloss.Color("39"),
	UnseenStory:    lipgloss.Color("205"),

	OverlayBackground:  lipgloss.Color("235"),
	SelectedBackground: lipgloss.Color("24"),
	SelectedForeground: lipgloss.Color("255"),
	PrimaryButton:      lipgloss.Color("33"),
}

type styles struct {
	text     lipgloss.Style
	faint    lipgloss.Style
	muted    lipgloss.Style
	bold     lipgloss.Style
	link     lipgloss.Style
	liked    lipgloss.Style
	verified lipgloss.Style
	unseen   lipgloss.Style
	title    lipgloss.Style
	button   lipgloss.Style
	selected lipgloss.Style
	panel    lipgloss.Style
	overlay  lipgloss.Style
}

func newStyles(theme Theme) styles {
	return styles{
		text:     lipgloss.NewStyle().Foreground(theme.NormalText),
		faint:    lipgloss.NewStyle().Foreground(theme.FaintText),
		muted:    lipgloss.NewStyle().Foreground(theme.MutedText),
		bold:     lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true),
		link:     lipgloss.NewStyle().Foreground(theme.LinkForeground),
		liked:    lipgloss.NewStyle().Foreground(theme.LikeAccent),
		verified: lipgloss.NewStyle().Foreground(theme.Verified),
		unseen:   lipgloss.NewStyle().Foreground(theme.UnseenStory).Bold(true),
		title:    lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true).Italic(true),
		button: lipgloss.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.PrimaryButton).
			Padding(0, 1),
		selected: lipgloss.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderColor),
		overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.SelectedBorder).
			Background(theme.OverlayBackground),
	}
}
