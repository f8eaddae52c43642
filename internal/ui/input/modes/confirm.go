package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"reelshare/internal/ui/input/types"
)

// ConfirmMode asks a yes/no question before running its action
type ConfirmMode struct {
	name    string
	confirm types.Action
}

// NewLogoutConfirmMode confirms a logout
func NewLogoutConfirmMode() *ConfirmMode {
	return &ConfirmMode{name: "logout-confirm", confirm: types.LogoutAction{}}
}

func (m *ConfirmMode) Name() string {
	return m.name
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "n", "N":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "y", "Y":
		return []types.Action{
			m.confirm,
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	// swallow everything else while the question is open
	return nil, true
}
