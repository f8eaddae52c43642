package types

// Navigation actions
type NavigateAction struct {
	Direction string // "left" or "right"
}

func (a NavigateAction) Type() string { return "navigate" }

type FocusAction struct {
	Forward bool
}

func (a FocusAction) Type() string { return "focus" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// OpenDetailAction shows the detail screen for a movie
type OpenDetailAction struct {
	ID string
}

func (a OpenDetailAction) Type() string { return "open_detail" }

type CloseDetailAction struct{}

func (a CloseDetailAction) Type() string { return "close_detail" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// FieldChangedAction reports that a form moved to another field
type FieldChangedAction struct {
	Index int
}

func (a FieldChangedAction) Type() string { return "field_changed" }

// SubmitFormAction carries the values of a completed form, keyed by field name
type SubmitFormAction struct {
	Mode   Mode
	Values map[string]string
}

func (a SubmitFormAction) Type() string { return "submit_form" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Command actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type LogoutAction struct{}

func (a LogoutAction) Type() string { return "logout" }

type CopyTrailerAction struct{}

func (a CopyTrailerAction) Type() string { return "copy_trailer" }

type ShowReviewAction struct{}

func (a ShowReviewAction) Type() string { return "show_review" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// StatusAction puts a message in the status bar
type StatusAction struct {
	Message string
	IsError bool
}

func (a StatusAction) Type() string { return "status" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
