package ui

import (
	"fmt"
	"html"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"reelshare/internal/catalog"
	"reelshare/internal/config"
	"reelshare/internal/domain"
	"reelshare/internal/eventbus"
	"reelshare/internal/logging"
	"reelshare/internal/ui/input"
	"reelshare/internal/ui/input/modes"
	inputtypes "reelshare/internal/ui/input/types"
	"reelshare/internal/ui/services/carousel"
	"reelshare/internal/ui/services/events"
	"reelshare/internal/ui/state"
	"reelshare/internal/ui/views"
)

// E2EEnv turns on the readiness marker used by the end-to-end tests
const E2EEnv = "REELSHARE_E2E_TEST"

const (
	statusTimeout = 3 * time.Second
	errorTimeout  = 5 * time.Second
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	keys        keyMap
	inPagerMode bool // tracks if we're currently in pager mode
	ticking     bool // spinner tick is scheduled
	ready       bool // show the e2e readiness marker

	uiBus        *events.Bus
	carousel     *carousel.Service
	renderer     *views.Renderer
	inputHandler *input.Handler
	helpRender   *HelpRenderer
	pagerOps     *PagerOps

	// copyText writes to the system clipboard
	copyText func(string) error

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. user is the session restored at
// startup, or nil.
func NewModel(bus eventbus.EventBus, cfg *config.Config, user *domain.PublicUser) *Model {
	appState := state.NewAppState()
	appState.User = user
	appState.Loading = user != nil

	uiBus := events.NewBus()
	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		help:         help.New(),
		keys:         newKeyMap(),
		ready:        os.Getenv(E2EEnv) == "1",
		uiBus:        uiBus,
		carousel:     carousel.NewService(cfg.PagerLayout(), uiBus),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		helpRender:   NewHelpRenderer(),
		pagerOps:     NewPagerOps(nil),
		copyText:     clipboard.WriteAll,
	}

	forward := func(e interface{}) {
		if m.program != nil {
			m.program.Send(carouselChangedMsg{event: e})
		}
	}
	uiBus.Subscribe(events.TypeOf(carousel.SlideChangedEvent{}), forward)
	uiBus.Subscribe(events.TypeOf(carousel.LayoutChangedEvent{}), forward)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pagerOps = NewPagerOps(p)
}

// Init initializes the model. The catalog is only requested with a
// session; the API rejects anonymous reads.
func (m *Model) Init() tea.Cmd {
	if m.state.User == nil {
		return nil
	}
	return m.refresh()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.renderer.ContentWidth(msg.Width)
		m.carousel.Resize(m.config.WidthUnits(msg.Width))
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		actions, cmd := m.inputHandler.HandleKey(msg, m.context())
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tickMsg:
		if m.state.Loading || m.state.Uploading {
			return m, tick()
		}
		m.ticking = false
		return m, nil

	case clearStatusMsg:
		m.state.ClearStatus(msg.seq)
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			logging.Warn().Err(msg.err).Msg("Clipboard write failed")
			return m, m.setStatus(fmt.Sprintf("Clipboard unavailable: %v", msg.err), true)
		}
		return m, m.setStatus("Copied "+msg.text, false)

	case pagerMsg:
		if msg.err != nil {
			logging.Warn().Err(msg.err).Str("pager", msg.what).Msg("Pager failed")
			return m, m.setStatus(fmt.Sprintf("Could not open %s: %v", msg.what, msg.err), true)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case carouselChangedMsg:
		switch e := msg.event.(type) {
		case carousel.LayoutChangedEvent:
			logging.Debug().Int("width", e.Width).Str("class", string(e.Class)).
				Int("slides_per_view", e.SlidesPerView).Msg("Carousel layout changed")
		case carousel.SlideChangedEvent:
			logging.Debug().Int("from", e.OldIndex).Int("to", e.NewIndex).
				Int("total", e.TotalSlides).Msg("Carousel slide changed")
		}
		return m, nil

	default:
		// cursor blink and other text input messages
		return m, m.inputHandler.Update(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	mode := m.inputHandler.CurrentMode()
	vs := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Screen:        m.state.Screen,
		Movies:        m.state.Movies,
		Detail:        m.state.Detail,
		Carousel:      m.carousel.State(),
		User:          m.state.User,
		Loading:       m.state.Loading,
		Uploading:     m.state.Uploading,
		StatusMessage: m.state.StatusMessage,
		StatusIsError: m.state.StatusIsError,
		Mode:          mode,
		Form:          m.inputHandler.Form(),
		TextInput:     m.inputHandler.TextInput(),
		Ready:         m.ready,
	}
	if !mode.IsForm() {
		vs.HelpView = m.help.View(modeKeys{keys: m.keys, mode: mode, signedIn: m.state.User != nil})
	}
	return m.renderer.Render(vs)
}

func (m *Model) context() inputtypes.Context {
	return &input.ModelContext{State: m.state, Carousel: m.carousel}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.carousel.Navigate(carousel.Direction(a.Direction))

	case inputtypes.FocusAction:
		if a.Forward {
			m.carousel.FocusNext()
		} else {
			m.carousel.FocusPrev()
		}

	case inputtypes.OpenDetailAction:
		movie, ok := m.state.MovieByID(a.ID)
		if !ok {
			return nil
		}
		m.state.Detail = &movie
		m.state.Screen = state.ScreenDetail
		m.publish(eventbus.MovieDetailRequestedEvent{ID: a.ID})

	case inputtypes.CloseDetailAction:
		m.state.Screen = state.ScreenHome
		m.state.Detail = nil

	case inputtypes.RefreshAction:
		if m.state.User == nil {
			return m.setStatus("Log in (L) to browse movies", true)
		}
		return m.refresh()

	case inputtypes.SubmitFormAction:
		return m.submitForm(a)

	case inputtypes.LogoutAction:
		m.publish(eventbus.LogoutRequestedEvent{})

	case inputtypes.CopyTrailerAction:
		if m.state.Detail == nil || m.state.Detail.TrailerURL == "" {
			return m.setStatus("No trailer for this movie", true)
		}
		link := catalog.EmbedURL(html.UnescapeString(m.state.Detail.TrailerURL))
		return func() tea.Msg {
			return clipboardMsg{text: link, err: m.copyText(link)}
		}

	case inputtypes.ShowReviewAction:
		if m.state.Detail == nil {
			return nil
		}
		return m.showPager("review", m.helpRender.RenderReview(*m.state.Detail))

	case inputtypes.ToggleHelpAction:
		return m.showPager("help", m.helpRender.RenderHelpContent())

	case inputtypes.StatusAction:
		return m.setStatus(a.Message, a.IsError)

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

func (m *Model) submitForm(a inputtypes.SubmitFormAction) tea.Cmd {
	v := a.Values
	switch a.Mode {
	case inputtypes.ModeLogin:
		if v[modes.FieldEmail] == "" || v[modes.FieldPassword] == "" {
			return m.formError(a, "Email and password are required")
		}
		m.publish(eventbus.LoginRequestedEvent{Email: v[modes.FieldEmail], Password: v[modes.FieldPassword]})
		return m.setStatus("Logging in...", false)

	case inputtypes.ModeRegister:
		if v[modes.FieldUsername] == "" || v[modes.FieldEmail] == "" || v[modes.FieldPassword] == "" {
			return m.formError(a, "All fields are required")
		}
		m.publish(eventbus.RegisterRequestedEvent{
			Username: v[modes.FieldUsername],
			Email:    v[modes.FieldEmail],
			Password: v[modes.FieldPassword],
		})
		return m.setStatus("Creating account...", false)

	case inputtypes.ModeAddMovie:
		sub, err := buildSubmission(v)
		if err != nil {
			return m.formError(a, err.Error())
		}
		m.state.Uploading = true
		m.publish(eventbus.MovieSubmitRequestedEvent{Submission: sub})
		return tea.Batch(m.setStatus(fmt.Sprintf("Uploading %q...", sub.Title), false), m.startTicking())
	}
	return nil
}

// formError reopens the form with what was typed so it can be fixed
func (m *Model) formError(a inputtypes.SubmitFormAction, message string) tea.Cmd {
	cmd := m.openForm(a.Mode, a.Values)
	return tea.Batch(cmd, m.setStatus(message, true))
}

func (m *Model) openForm(mode inputtypes.Mode, values map[string]string) tea.Cmd {
	actions, cmd := m.inputHandler.ChangeMode(mode, m.context())
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	if form := m.inputHandler.Form(); form != nil {
		for name, value := range values {
			form.Prefill(name, value)
		}
	}
	return tea.Batch(cmds...)
}

// handleEvent applies a domain event from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.MoviesLoadedEvent:
		m.state.Loading = false
		m.state.Movies = e.Movies
		m.carousel.SetCount(len(e.Movies))
		if m.state.Detail != nil {
			if movie, ok := m.state.MovieByID(m.state.Detail.ID); ok {
				m.state.Detail = &movie
			}
		}

	case eventbus.MovieDetailLoadedEvent:
		m.state.ReplaceMovie(e.Movie)
		if m.state.Detail != nil && m.state.Detail.ID == e.Movie.ID {
			movie := e.Movie
			m.state.Detail = &movie
		}

	case eventbus.MovieAddedEvent:
		m.state.Uploading = false
		return m.setStatus(fmt.Sprintf("Added %q", html.UnescapeString(e.Movie.Title)), false)

	case eventbus.RegisteredEvent:
		status := m.setStatus(fmt.Sprintf("Account created for %s, log in to continue", e.User.Username), false)
		if m.inputHandler.CurrentMode() != inputtypes.ModeNormal {
			return status
		}
		return tea.Batch(status, m.openForm(inputtypes.ModeLogin, map[string]string{modes.FieldEmail: e.User.Email}))

	case eventbus.SessionChangedEvent:
		m.state.User = e.User
		if e.User != nil {
			return tea.Batch(m.setStatus("Logged in as "+e.User.Username, false), m.refresh())
		}
		return tea.Batch(m.signOut(), m.setStatus("Logged out", false))

	case eventbus.ErrorEvent:
		m.state.Loading = false
		m.state.Uploading = false
		return m.setStatus(e.Message, true)
	}
	return nil
}

// refresh requests the catalog, and the open movie if there is one
func (m *Model) refresh() tea.Cmd {
	m.state.Loading = true
	m.publish(eventbus.CatalogRefreshRequestedEvent{})
	if m.state.Detail != nil {
		m.publish(eventbus.MovieDetailRequestedEvent{ID: m.state.Detail.ID})
	}
	return m.startTicking()
}

// signOut drops everything fetched under the previous session
func (m *Model) signOut() tea.Cmd {
	m.state.Loading = false
	m.state.Movies = nil
	m.carousel.SetCount(0)
	m.state.Detail = nil
	m.state.Screen = state.ScreenHome
	if m.inputHandler.CurrentMode() != inputtypes.ModeDetail {
		return nil
	}
	actions, cmd := m.inputHandler.ChangeMode(inputtypes.ModeNormal, m.context())
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	return tea.Batch(cmds...)
}

// publish puts an event on the domain bus. The bus is buffered, so this
// never blocks the update loop.
func (m *Model) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	seq := m.state.SetStatus(message, isError)
	timeout := statusTimeout
	if isError {
		timeout = errorTimeout
	}
	return tea.Tick(timeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// showPager returns a command that shows content in the ov pager
func (m *Model) showPager(what, content string) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.pagerOps.ShowInPager(content)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{what: what, err: err}
	}
}
