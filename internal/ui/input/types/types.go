package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeDetail
	ModeLogin
	ModeRegister
	ModeAddMovie
	ModeLogoutConfirm
)

// IsForm reports whether the mode edits a form through the shared text input
func (m Mode) IsForm() bool {
	switch m {
	case ModeLogin, ModeRegister, ModeAddMovie:
		return true
	default:
		return false
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	MovieCount() int
	FocusedMovieID() string
	SignedIn() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
