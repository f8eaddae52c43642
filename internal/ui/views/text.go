package views

import (
	"html"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// display turns a stored, HTML-escaped string back into plain text
func display(s string) string {
	return html.UnescapeString(s)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// padRight pads s with spaces to exactly width cells
func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func genres(g []string) string {
	out := make([]string, len(g))
	for i, s := range g {
		out[i] = display(s)
	}
	return strings.Join(out, ", ")
}

// shortID keeps ids readable in narrow cards
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
