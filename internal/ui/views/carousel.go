package views

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"reelshare/internal/domain"
	"reelshare/internal/ui/services/carousel"
)

const (
	controlWidth = 2
	minCardWidth = 8
)

// CarouselRenderer draws the strip of cards and cuts the visible window
// out of it at the pager's offset.
type CarouselRenderer struct {
	styles *Styles
	cards  *CardRenderer
}

func NewCarouselRenderer(styles *Styles) *CarouselRenderer {
	return &CarouselRenderer{styles: styles, cards: NewCardRenderer(styles)}
}

// ViewportWidth is the width of the card window for a content width: a
// whole number of cards, leaving room for the controls.
func ViewportWidth(width, slidesPerView int) (viewport, card int) {
	spv := max(1, slidesPerView)
	card = max(minCardWidth, (width-2*controlWidth)/spv)
	return card * spv, card
}

// StripOffset converts the offset percentage into columns of the viewport
func StripOffset(offsetPercent float64, viewport int) int {
	return int(math.Round(offsetPercent * float64(viewport) / 100))
}

// Render draws the carousel for the given content width
func (cr *CarouselRenderer) Render(movies []domain.Movie, st carousel.State, width int) string {
	if len(movies) == 0 {
		return cr.styles.Dim.Render("No movies yet. Press a to recommend one.")
	}

	viewport, cardWidth := ViewportWidth(width, st.SlidesPerView)

	cards := make([]string, len(movies))
	for i, m := range movies {
		cards[i] = cr.cards.Render(m, cardWidth, i == st.Focus)
	}
	strip := strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, cards...), "\n")

	offset := StripOffset(st.OffsetPercent, viewport)
	middle := len(strip) / 2

	rows := make([]string, len(strip))
	for i, line := range strip {
		left, right := strings.Repeat(" ", controlWidth), strings.Repeat(" ", controlWidth)
		if st.ShowControls && i == middle {
			left = cr.styles.Control.Render("‹") + " "
			right = " " + cr.styles.Control.Render("›")
		}
		rows[i] = left + padRight(ansi.Cut(line, offset, offset+viewport), viewport) + right
	}

	out := strings.Join(rows, "\n")
	if st.ShowControls {
		out += "\n" + lipgloss.PlaceHorizontal(viewport+2*controlWidth, lipgloss.Center, cr.dots(st))
	}
	return out
}

func (cr *CarouselRenderer) dots(st carousel.State) string {
	p := paginator.New()
	p.Type = paginator.Dots
	p.TotalPages = st.TotalSlides
	p.Page = st.CurrentIndex
	p.ActiveDot = cr.styles.ActiveDot.Render("•")
	p.InactiveDot = cr.styles.InactiveDot.Render("•")
	return p.View()
}
