package input

import (
	"reelshare/internal/ui/services/carousel"
	"reelshare/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State    *state.AppState
	Carousel *carousel.Service
}

func (c *ModelContext) MovieCount() int {
	return len(c.State.Movies)
}

// FocusedMovieID returns the id of the focused card, or "" with no movies
func (c *ModelContext) FocusedMovieID() string {
	i := c.Carousel.Focused()
	if i < 0 || i >= len(c.State.Movies) {
		return ""
	}
	return c.State.Movies[i].ID
}

func (c *ModelContext) SignedIn() bool {
	return c.State.User != nil
}
