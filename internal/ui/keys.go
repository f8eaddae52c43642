package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"reelshare/internal/ui/input/types"
)

// keyMap feeds the help bar; the bindings themselves are handled by the
// input modes.
type keyMap struct {
	Slide  key.Binding
	Focus  key.Binding
	Open   key.Binding
	Add    key.Binding
	Login  key.Binding
	Logout key.Binding
	Back   key.Binding
	Copy   key.Binding
	Review key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Slide:  key.NewBinding(key.WithKeys("left", "right", "h", "l"), key.WithHelp("←/→", "slide")),
		Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Login:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "login")),
		Logout: key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "logout")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy trailer")),
		Review: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "review")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// modeKeys adapts the key map to the current mode for help.Model
type modeKeys struct {
	keys     keyMap
	mode     types.Mode
	signedIn bool
}

func (k modeKeys) ShortHelp() []key.Binding {
	switch k.mode {
	case types.ModeDetail:
		return []key.Binding{k.keys.Back, k.keys.Copy, k.keys.Review, k.keys.Help, k.keys.Quit}
	case types.ModeNormal:
		account := k.keys.Login
		if k.signedIn {
			account = k.keys.Logout
		}
		return []key.Binding{k.keys.Slide, k.keys.Focus, k.keys.Open, k.keys.Add, account, k.keys.Help, k.keys.Quit}
	default:
		return nil
	}
}

func (k modeKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
