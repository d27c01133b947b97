package render

import "charm.land/lipgloss/v2"

// Palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// theme groups the styles a Renderer applies.
type theme struct {
	header lipgloss.Style
	cell   lipgloss.Style
	rule   lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	hint   lipgloss.Style
}

var defaultTheme = theme{
	header: lipgloss.NewStyle().Bold(true).Foreground(Primary),
	cell:   lipgloss.NewStyle().Foreground(Text),
	rule:   lipgloss.NewStyle().Foreground(Border),
	label:  lipgloss.NewStyle().Bold(true).Foreground(Secondary),
	value:  lipgloss.NewStyle().Foreground(Accent),
	hint:   lipgloss.NewStyle().Foreground(TextDim).Italic(true),
}
