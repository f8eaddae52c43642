package ui

import (
	"fmt"
	"html"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"reelshare/internal/domain"
)

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	what string
	err  error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		key:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

type helpEntry struct{ keys, desc string }

var helpSections = []struct {
	name    string
	entries []helpEntry
}{
	{"Carousel", []helpEntry{
		{"←/→, h/l", "Previous/next slide (wraps around)"},
		{"Tab", "Focus next visible movie"},
		{"Shift+Tab", "Focus previous visible movie"},
		{"Enter", "Open movie details"},
		{"r", "Refresh the movie list"},
	}},
	{"Movie details", []helpEntry{
		{"y", "Copy trailer embed link"},
		{"v", "Read the full review"},
		{"Esc", "Back to the carousel"},
	}},
	{"Account", []helpEntry{
		{"L", "Log in"},
		{"R", "Create an account"},
		{"O", "Log out"},
		{"a", "Recommend a movie (requires login)"},
	}},
	{"Forms", []helpEntry{
		{"Enter", "Next field, submit on the last one"},
		{"Tab/↓", "Next field"},
		{"Shift+Tab/↑", "Previous field"},
		{"Esc", "Cancel"},
	}},
	{"Other", []helpEntry{
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	var help strings.Builder

	help.WriteString(r.title.Render("reelshare Help"))
	help.WriteString("\n")

	for _, s := range helpSections {
		help.WriteString(r.section.Render(s.name))
		help.WriteString("\n")
		for _, e := range s.entries {
			help.WriteString(fmt.Sprintf("  %s  %s\n", r.key.Render(fmt.Sprintf("%-12s", e.keys)), r.desc.Render(e.desc)))
		}
	}
	return help.String()
}

// RenderReview formats a movie review for the pager. Stored text is
// HTML-escaped and is unescaped here.
func (r *HelpRenderer) RenderReview(movie domain.Movie) string {
	var b strings.Builder
	b.WriteString(r.title.Render(fmt.Sprintf("%s (%d)", html.UnescapeString(movie.Title), movie.Year)))
	b.WriteString("\n")
	b.WriteString(r.desc.Render(fmt.Sprintf("★ %d/10 · %s", movie.Rating, html.UnescapeString(strings.Join(movie.Genres, ", ")))))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(78).Render(html.UnescapeString(movie.Review)))
	b.WriteString("\n")
	return b.String()
}

// PagerOps shows long text in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// ShowInPager hands the terminal to ov until the user quits it
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal() // Ignore error as we're in defer context
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
