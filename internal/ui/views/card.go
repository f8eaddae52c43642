package views

import (
	"fmt"
	"strings"

	"reelshare/internal/domain"
)

// CardHeight is the number of rows a movie card occupies, borders included
const CardHeight = 6

// CardRenderer draws one movie card of the carousel
type CardRenderer struct {
	styles *Styles
}

func NewCardRenderer(styles *Styles) *CardRenderer {
	return &CardRenderer{styles: styles}
}

// Render draws the card exactly width cells wide
func (cr *CardRenderer) Render(movie domain.Movie, width int, focused bool) string {
	style := cr.styles.Card
	if focused {
		style = cr.styles.CardFocused
	}
	inner := width - style.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	lines := []string{
		cr.styles.CardTitle.Render(truncate(display(movie.Title), inner)),
		truncate(fmt.Sprintf("%d · %s", movie.Year, cr.styles.Rating.Render(fmt.Sprintf("★ %d/10", movie.Rating))), inner),
		cr.styles.Dim.Render(truncate(genres(movie.Genres), inner)),
		cr.styles.Dim.Render(truncate("by "+shortID(movie.RecommendedBy), inner)),
	}

	return style.
		Width(width - style.GetHorizontalBorderSize()).
		Height(CardHeight - style.GetVerticalFrameSize()).
		Render(strings.Join(lines, "\n"))
}
