package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reelshare/internal/catalog"
	"reelshare/internal/domain"
)

// reviewLines is how much of the review the detail screen shows inline
const reviewLines = 6

// DetailRenderer draws the movie detail screen
type DetailRenderer struct {
	styles *Styles
}

func NewDetailRenderer(styles *Styles) *DetailRenderer {
	return &DetailRenderer{styles: styles}
}

func (dr *DetailRenderer) Render(movie domain.Movie, width int) string {
	s := dr.styles
	var b strings.Builder

	b.WriteString(s.DetailTitle.Render(display(movie.Title)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d · %s · %s\n\n",
		movie.Year,
		s.Rating.Render(fmt.Sprintf("★ %d/10", movie.Rating)),
		genres(movie.Genres)))

	review := lipgloss.NewStyle().Width(max(20, width)).Render(display(movie.Review))
	lines := strings.Split(review, "\n")
	if len(lines) > reviewLines {
		lines = append(lines[:reviewLines], s.Dim.Render("… press v to read the full review"))
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(s.Label.Render(fmt.Sprintf("%-16s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("Recommended by", movie.RecommendedBy)
	row("Poster", s.Link.Render(movie.Poster))
	row("Movie file", s.Link.Render(movie.FileURL))
	if movie.TrailerURL != "" {
		row("Trailer", s.Link.Render(display(movie.TrailerURL)))
		row("Embed", s.Link.Render(catalog.EmbedURL(display(movie.TrailerURL))))
	} else {
		row("Trailer", s.Dim.Render("none"))
	}

	return b.String()
}
