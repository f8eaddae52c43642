package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"reelshare/internal/ui/input/modes"
)

const labelWidth = 13

// FormRenderer draws a form popup
type FormRenderer struct {
	styles *Styles
}

func NewFormRenderer(styles *Styles) *FormRenderer {
	return &FormRenderer{styles: styles}
}

// Render draws the fields of form, with the active field shown through ti
func (fr *FormRenderer) Render(form *modes.FormMode, ti *textinput.Model) string {
	s := fr.styles
	var b strings.Builder

	b.WriteString(s.Title.Render(form.Title()))
	b.WriteString("\n")

	values := form.Values()
	for i, f := range form.Fields() {
		label := fmt.Sprintf("%-*s", labelWidth, f.Label)
		var value string
		switch {
		case i == form.Index() && ti != nil:
			label = s.FieldActive.Render("› " + label)
			value = ti.View()
		case values[i] == "":
			label = "  " + s.Label.Render(label)
			if f.Optional {
				value = s.Dim.Render("(optional)")
			}
		case f.Masked:
			label = "  " + s.Label.Render(label)
			value = strings.Repeat("•", len([]rune(values[i])))
		default:
			label = "  " + s.Label.Render(label)
			value = truncate(values[i], 40)
		}
		b.WriteString(label)
		b.WriteString(value)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Help.Render("enter next/submit • tab/shift+tab move • esc cancel"))
	return b.String()
}
