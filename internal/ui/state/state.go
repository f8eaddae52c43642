package state

import (
	"reelshare/internal/domain"
)

// Screen is the page the TUI is showing
type Screen int

const (
	ScreenHome Screen = iota
	ScreenDetail
)

// AppState contains all the application state
type AppState struct {
	// Catalog data
	Movies []domain.Movie // in API order
	Detail *domain.Movie  // movie shown on the detail screen

	// Session
	User *domain.PublicUser // nil when logged out

	// UI state
	Screen        Screen
	Loading       bool   // a catalog request is in flight
	Uploading     bool   // an upload is in flight
	StatusMessage string // status bar message
	StatusIsError bool
	StatusSeq     int // bumped on every status change, guards the timed clear
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Movies: make([]domain.Movie, 0),
		Screen: ScreenHome,
	}
}

// SetStatus replaces the status bar message and returns its sequence number
func (s *AppState) SetStatus(message string, isError bool) int {
	s.StatusMessage = message
	s.StatusIsError = isError
	s.StatusSeq++
	return s.StatusSeq
}

// ClearStatus clears the message if it is still the one numbered seq
func (s *AppState) ClearStatus(seq int) {
	if s.StatusSeq == seq {
		s.StatusMessage = ""
		s.StatusIsError = false
	}
}

// MovieByID looks a movie up in the loaded list
func (s *AppState) MovieByID(id string) (domain.Movie, bool) {
	for _, m := range s.Movies {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Movie{}, false
}

// ReplaceMovie updates a loaded movie in place, keeping list order
func (s *AppState) ReplaceMovie(movie domain.Movie) {
	for i := range s.Movies {
		if s.Movies[i].ID == movie.ID {
			s.Movies[i] = movie
			return
		}
	}
}
