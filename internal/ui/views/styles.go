package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Confirm       lipgloss.Style
	Dim           lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Highlight     lipgloss.Style
	User          lipgloss.Style
	Card          lipgloss.Style
	CardFocused   lipgloss.Style
	CardTitle     lipgloss.Style
	Rating        lipgloss.Style
	Control       lipgloss.Style
	ActiveDot     lipgloss.Style
	InactiveDot   lipgloss.Style
	DetailTitle   lipgloss.Style
	Label         lipgloss.Style
	Link          lipgloss.Style
	FormBox       lipgloss.Style
	ConfirmBox    lipgloss.Style
	FieldActive   lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Confirm:   lipgloss.NewStyle().Bold(true),
		Dim:       lipgloss.NewStyle().Faint(true),
		Help:      lipgloss.NewStyle().Faint(true),
		Main:      lipgloss.NewStyle().Padding(1, 2),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		User:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		CardFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		CardTitle:   lipgloss.NewStyle().Bold(true),
		Rating:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Control:     lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		ActiveDot:   lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		InactiveDot: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		DetailTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Link:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		FormBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		ConfirmBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 2),
		FieldActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
