package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"reelshare/internal/ui/input/types"
)

// NormalMode drives the home screen carousel
type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyLeft:
		return []types.Action{types.NavigateAction{Direction: "left"}}, true

	case tea.KeyRight:
		return []types.Action{types.NavigateAction{Direction: "right"}}, true

	case tea.KeyTab:
		return []types.Action{types.FocusAction{Forward: true}}, true

	case tea.KeyShiftTab:
		return []types.Action{types.FocusAction{Forward: false}}, true

	case tea.KeyEnter:
		id := ctx.FocusedMovieID()
		if id == "" {
			return nil, false
		}
		return []types.Action{
			types.OpenDetailAction{ID: id},
			types.ChangeModeAction{Mode: types.ModeDetail},
		}, true
	}

	// Handle string keys
	switch msg.String() {
	case "h":
		return []types.Action{types.NavigateAction{Direction: "left"}}, true

	case "l":
		return []types.Action{types.NavigateAction{Direction: "right"}}, true

	case "r":
		return []types.Action{types.RefreshAction{}}, true

	case "a":
		if !ctx.SignedIn() {
			return []types.Action{types.StatusAction{Message: "Log in (L) to add a movie", IsError: true}}, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeAddMovie}}, true

	case "L":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeLogin}}, true

	case "R":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeRegister}}, true

	case "O":
		if !ctx.SignedIn() {
			return []types.Action{types.StatusAction{Message: "Not logged in"}}, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeLogoutConfirm}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}
