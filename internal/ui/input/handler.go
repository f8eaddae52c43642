package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"reelshare/internal/ui/input/modes"
	"reelshare/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for form modes
}

func New() *Handler {
	ti := textinput.New()
	ti.CharLimit = 512

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeDetail] = modes.NewDetailMode()
	h.modes[types.ModeLogin] = modes.NewLoginMode(h.textInput)
	h.modes[types.ModeRegister] = modes.NewRegisterMode(h.textInput)
	h.modes[types.ModeAddMovie] = modes.NewAddMovieMode(h.textInput)
	h.modes[types.ModeLogoutConfirm] = modes.NewLogoutConfirmMode()

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	// If not consumed and we're in a form, the text input gets the key below
	if !consumed && !h.currentMode.IsForm() {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode.Mode, ctx)...)
			if h.currentMode.IsForm() {
				cmd = textinput.Blink
			}
		} else {
			allActions = append(allActions, action)
		}
	}

	if h.currentMode.IsForm() && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		// Always append an update action when in text mode to keep view in sync
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

// ChangeMode switches modes outside of key handling, for example after an
// event from the API.
func (h *Handler) ChangeMode(mode types.Mode, ctx types.Context) ([]types.Action, tea.Cmd) {
	actions := h.switchMode(mode, ctx)
	if h.currentMode.IsForm() {
		return actions, textinput.Blink
	}
	return actions, nil
}

func (h *Handler) switchMode(mode types.Mode, ctx types.Context) []types.Action {
	var out []types.Action
	if cur := h.modes[h.currentMode]; cur != nil {
		out = append(out, cur.Exit(ctx)...)
	}

	h.currentMode = mode

	// the form's Enter loads its first field, so the input is reset first
	if mode.IsForm() {
		h.textInput.Reset()
		h.textInput.Focus()
	} else {
		h.textInput.Blur()
	}

	if next := h.modes[mode]; next != nil {
		out = append(out, next.Enter(ctx)...)
	}
	return out
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// Form returns the active form, or nil outside form modes
func (h *Handler) Form() *modes.FormMode {
	if h == nil || !h.currentMode.IsForm() {
		return nil
	}
	form, _ := h.modes[h.currentMode].(*modes.FormMode)
	return form
}

func (h *Handler) TextInput() *textinput.Model {
	if h.currentMode.IsForm() {
		return h.textInput
	}
	return nil
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode.IsForm() {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
