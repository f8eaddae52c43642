package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"reelshare/internal/ui/input/types"
)

// Field describes one form input
type Field struct {
	Name        string
	Label       string
	Placeholder string
	Masked      bool
	Optional    bool
}

// Form field names
const (
	FieldUsername   = "username"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldTitle      = "title"
	FieldGenres     = "genres"
	FieldYear       = "year"
	FieldRating     = "rating"
	FieldReview     = "review"
	FieldTrailerURL = "trailerUrl"
	FieldPoster     = "poster"
	FieldMovieFile  = "movieFile"
)

var loginFields = []Field{
	{Name: FieldEmail, Label: "Email", Placeholder: "you@example.com"},
	{Name: FieldPassword, Label: "Password", Masked: true},
}

var registerFields = []Field{
	{Name: FieldUsername, Label: "Username"},
	{Name: FieldEmail, Label: "Email", Placeholder: "you@example.com"},
	{Name: FieldPassword, Label: "Password", Masked: true},
}

var addMovieFields = []Field{
	{Name: FieldTitle, Label: "Title"},
	{Name: FieldGenres, Label: "Genres", Placeholder: "Drama, Sci-Fi"},
	{Name: FieldYear, Label: "Year", Placeholder: "1999"},
	{Name: FieldRating, Label: "Rating", Placeholder: "0-10"},
	{Name: FieldReview, Label: "Review"},
	{Name: FieldTrailerURL, Label: "Trailer URL", Placeholder: "https://youtu.be/...", Optional: true},
	{Name: FieldPoster, Label: "Poster file", Placeholder: "/path/to/poster.jpg"},
	{Name: FieldMovieFile, Label: "Movie file", Placeholder: "/path/to/movie.mp4"},
}

// FormMode steps through a fixed list of fields using the shared text input.
// Values live in the mode until the form is submitted or cancelled.
type FormMode struct {
	mode      types.Mode
	name      string
	title     string
	fields    []Field
	values    []string
	index     int
	textInput *textinput.Model
}

func newFormMode(mode types.Mode, name, title string, fields []Field, ti *textinput.Model) *FormMode {
	return &FormMode{
		mode:      mode,
		name:      name,
		title:     title,
		fields:    fields,
		values:    make([]string, len(fields)),
		textInput: ti,
	}
}

func NewLoginMode(ti *textinput.Model) *FormMode {
	return newFormMode(types.ModeLogin, "login", "Log in", loginFields, ti)
}

func NewRegisterMode(ti *textinput.Model) *FormMode {
	return newFormMode(types.ModeRegister, "register", "Create account", registerFields, ti)
}

func NewAddMovieMode(ti *textinput.Model) *FormMode {
	return newFormMode(types.ModeAddMovie, "add-movie", "Recommend a movie", addMovieFields, ti)
}

func (m *FormMode) Name() string    { return m.name }
func (m *FormMode) Title() string   { return m.title }
func (m *FormMode) Fields() []Field { return m.fields }
func (m *FormMode) Index() int      { return m.index }

// Values returns the field values, including the one being edited
func (m *FormMode) Values() []string {
	out := make([]string, len(m.values))
	copy(out, m.values)
	if m.textInput != nil && m.index < len(out) {
		out[m.index] = m.textInput.Value()
	}
	return out
}

// Prefill sets a value before the form is shown
func (m *FormMode) Prefill(name, value string) {
	for i, f := range m.fields {
		if f.Name == name {
			m.values[i] = value
			if i == m.index {
				m.load(i)
			}
		}
	}
}

func (m *FormMode) Enter(ctx types.Context) []types.Action {
	m.index = 0
	m.load(0)
	return nil
}

func (m *FormMode) Exit(ctx types.Context) []types.Action {
	for i := range m.values {
		m.values[i] = ""
	}
	m.index = 0
	if m.textInput != nil {
		m.textInput.Blur()
		m.textInput.Reset()
		m.textInput.EchoMode = textinput.EchoNormal
	}
	return nil
}

func (m *FormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "enter":
		if m.index == len(m.fields)-1 {
			return []types.Action{
				types.SubmitFormAction{Mode: m.mode, Values: m.submission()},
				types.ChangeModeAction{Mode: types.ModeNormal},
			}, true
		}
		return m.move(1), true
	case "tab", "down":
		return m.move(1), true
	case "shift+tab", "up":
		return m.move(-1), true
	default:
		// Returning false lets the input handler feed the key to the text input
		return nil, false
	}
}

func (m *FormMode) move(delta int) []types.Action {
	m.store()
	n := len(m.fields)
	m.index = (m.index + delta + n) % n
	m.load(m.index)
	return []types.Action{types.FieldChangedAction{Index: m.index}}
}

func (m *FormMode) submission() map[string]string {
	m.store()
	out := make(map[string]string, len(m.fields))
	for i, f := range m.fields {
		v := m.values[i]
		if !f.Masked {
			v = strings.TrimSpace(v)
		}
		out[f.Name] = v
	}
	return out
}

func (m *FormMode) store() {
	if m.textInput != nil {
		m.values[m.index] = m.textInput.Value()
	}
}

func (m *FormMode) load(i int) {
	if m.textInput == nil {
		return
	}
	f := m.fields[i]
	m.textInput.SetValue(m.values[i])
	m.textInput.Placeholder = f.Placeholder
	m.textInput.Prompt = ""
	if f.Masked {
		m.textInput.EchoMode = textinput.EchoPassword
		m.textInput.EchoCharacter = '•'
	} else {
		m.textInput.EchoMode = textinput.EchoNormal
	}
	m.textInput.CursorEnd()
}
