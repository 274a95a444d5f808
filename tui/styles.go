// ABOUTME: Defines lipgloss style constants for the TUI panels, file kinds, and status messages.
// ABOUTME: Provides StyleForKind to map project kinds to their display colors.
package tui

import (
	"github.com/2389-research/stackrush/project"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Panel borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62"))

	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	// File kinds
	MarkupStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	StyleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	ScriptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	DocumentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	UnknownStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// File list rows
	SelectedStyle = lipgloss.NewStyle().Reverse(true)
	ActiveMarker  = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)

	// Status messages
	NoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	// New/rename prompt
	PromptStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 1)
)

// StyleForKind returns the lipgloss style used to label a file of kind k.
func StyleForKind(k project.Kind) lipgloss.Style {
	switch k {
	case project.KindMarkup:
		return MarkupStyle
	case project.KindStyle:
		return StyleStyle
	case project.KindScript:
		return ScriptStyle
	case project.KindDocument:
		return DocumentStyle
	default:
		return UnknownStyle
	}
}

func borderFor(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorderStyle
	}
	return BorderStyle
}
