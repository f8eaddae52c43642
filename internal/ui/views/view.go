package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"reelshare/internal/domain"
	"reelshare/internal/ui/input/modes"
	"reelshare/internal/ui/input/types"
	"reelshare/internal/ui/services/carousel"
	"reelshare/internal/ui/state"
)

// ReadyMarker is appended to the title line for the end-to-end tests
const ReadyMarker = "__READY__"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Screen        state.Screen
	Movies        []domain.Movie
	Detail        *domain.Movie
	Carousel      carousel.State
	User          *domain.PublicUser
	Loading       bool
	Uploading     bool
	StatusMessage string
	StatusIsError bool
	Mode          types.Mode
	Form          *modes.FormMode
	TextInput     *textinput.Model
	HelpView      string
	Ready         bool // show ReadyMarker
}

// Renderer handles all view rendering
type Renderer struct {
	styles         *Styles
	carouselRender *CarouselRenderer
	detailRender   *DetailRenderer
	formRender     *FormRenderer
	popupRender    *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:         styles,
		carouselRender: NewCarouselRenderer(styles),
		detailRender:   NewDetailRenderer(styles),
		formRender:     NewFormRenderer(styles),
		popupRender:    NewPopupRenderer(styles),
	}
}

// ContentWidth is the width left inside the main container's padding
func (r *Renderer) ContentWidth(width int) int {
	if width <= 0 {
		width = 80 // Default terminal width
	}
	return max(1, width-r.styles.Main.GetHorizontalFrameSize())
}

// Render produces the complete view
// SignedOutPrompt replaces the carousel until a session exists
const SignedOutPrompt = "Log in (L) to browse movies. No account? Press R to register."

func (r *Renderer) Render(vs ViewState) string {
	content := &strings.Builder{}
	width := r.ContentWidth(vs.Width)

	content.WriteString(r.renderTitle(vs, width))
	content.WriteString("\n")

	switch {
	case vs.Screen == state.ScreenDetail && vs.Detail != nil:
		content.WriteString(r.detailRender.Render(*vs.Detail, width))
	case vs.Loading && len(vs.Movies) == 0:
		content.WriteString(r.styles.Dim.Render("Loading movies..."))
	case vs.User == nil && len(vs.Movies) == 0:
		content.WriteString(r.styles.Dim.Render(SignedOutPrompt))
	default:
		content.WriteString(r.styles.Title.Render("Recommended movies"))
		content.WriteString("\n")
		content.WriteString(r.carouselRender.Render(vs.Movies, vs.Carousel, width))
	}

	if status := r.renderStatus(vs); status != "" {
		content.WriteString("\n\n")
		content.WriteString(status)
	}

	// push the help bar to the bottom
	if vs.HelpView != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := vs.Height - r.styles.Main.GetVerticalFrameSize()
		if availableLines <= 0 {
			availableLines = 22 // Default terminal height minus padding
		}
		if pad := availableLines - currentLines - 1; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		content.WriteString("\n")
		content.WriteString(vs.HelpView)
	}

	mainStyle := r.styles.Main
	if vs.Height > 0 {
		mainStyle = mainStyle.MaxHeight(vs.Height)
	}
	finalContent := mainStyle.Render(content.String())

	// Overlay popups on top of main content
	if vs.Form != nil {
		popup := r.formRender.Render(vs.Form, vs.TextInput)
		return r.popupRender.RenderPopupOverlay(finalContent, popup, vs.Height, vs.Width, r.styles.FormBox)
	}
	if vs.Mode == types.ModeLogoutConfirm {
		name := "this account"
		if vs.User != nil {
			name = vs.User.Username
		}
		popup := r.styles.Confirm.Render(fmt.Sprintf("Log out of %s? (y/n)", name))
		return r.popupRender.RenderPopupOverlay(finalContent, popup, vs.Height, vs.Width, r.styles.ConfirmBox)
	}

	return finalContent
}

func (r *Renderer) renderTitle(vs ViewState, width int) string {
	logo := r.styles.Title.UnsetMarginBottom().Render("reelshare")

	var right []string
	if vs.Loading || vs.Uploading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		label := "Loading"
		if vs.Uploading {
			label = "Uploading"
		}
		right = append(right, r.styles.Dim.Render(fmt.Sprintf("%s %s", spinner[frame], label)))
	}
	if vs.User != nil {
		right = append(right, r.styles.User.Render("● "+vs.User.Username))
	} else {
		right = append(right, r.styles.Dim.Render("not logged in"))
	}
	if vs.Ready {
		right = append(right, ReadyMarker)
	}

	rightContent := strings.Join(right, "  ")
	padding := width - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + rightContent
}

func (r *Renderer) renderStatus(vs ViewState) string {
	if vs.StatusMessage == "" {
		return ""
	}
	style := r.styles.StatusSuccess
	switch {
	case vs.StatusIsError:
		style = r.styles.StatusError
	case vs.Loading || vs.Uploading:
		style = r.styles.StatusLoading
	}
	return style.Render(vs.StatusMessage)
}
