package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"reelshare/internal/ui/input/types"
)

// DetailMode handles keys on the movie detail screen
type DetailMode struct{}

func NewDetailMode() *DetailMode {
	return &DetailMode{}
}

func (m *DetailMode) Name() string {
	return "detail"
}

func (m *DetailMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *DetailMode) Exit(ctx types.Context) []types.Action {
	return []types.Action{types.CloseDetailAction{}}
}

func (m *DetailMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "backspace":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "y":
		return []types.Action{types.CopyTrailerAction{}}, true
	case "v":
		return []types.Action{types.ShowReviewAction{}}, true
	case "r":
		return []types.Action{types.RefreshAction{}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true
	}
	return nil, false
}
