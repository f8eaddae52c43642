package ui

import (
	"time"

	"reelshare/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// clearStatusMsg clears the status bar if it still shows message seq
type clearStatusMsg struct {
	seq int
}

// clipboardMsg contains the result of a clipboard write
type clipboardMsg struct {
	text string
	err  error
}

// carouselChangedMsg is sent by the carousel service subscriptions
type carouselChangedMsg struct {
	event interface{}
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
