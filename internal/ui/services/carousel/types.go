package carousel

import "reelshare/internal/pager"

// State is a snapshot of everything the view needs to draw the carousel
type State struct {
	CurrentIndex  int
	SlidesPerView int
	TotalSlides   int
	ShowControls  bool
	OffsetPercent float64
	WindowStart   int
	WindowEnd     int
	Count         int
	Class         pager.WidthClass
	// Focus is the absolute index of the focused card, -1 with no items
	Focus int
}

// Direction represents movement directions
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// SlideChangedEvent is published whenever the window position changes
type SlideChangedEvent struct {
	OldIndex    int
	NewIndex    int
	TotalSlides int
}

// LayoutChangedEvent is published on every width change
type LayoutChangedEvent struct {
	Width         int
	Class         pager.WidthClass
	SlidesPerView int
}
