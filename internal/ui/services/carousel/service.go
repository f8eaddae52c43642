package carousel

import (
	"reelshare/internal/pager"
	"reelshare/internal/ui/services/events"
)

// Service owns the carousel pager and the card focus inside its window.
// Like the pager it is driven from the update loop only.
type Service struct {
	pager *pager.Pager
	bus   events.EventBus
	focus int // offset of the focused card inside the window
}

// NewService creates a carousel with no items, sized for width 0 until the
// first Resize.
func NewService(layout pager.Layout, bus events.EventBus) *Service {
	if bus == nil {
		bus = &events.NullBus{}
	}
	return &Service{
		pager: pager.New(layout, 0, 0),
		bus:   bus,
	}
}

// Resize applies a width change in layout units. The window always returns
// to the first position.
func (s *Service) Resize(width int) {
	old := s.pager.CurrentIndex()
	spv := s.pager.Resize(width)
	s.focus = 0

	s.bus.Publish(LayoutChangedEvent{
		Width:         width,
		Class:         s.pager.Layout().Classify(width),
		SlidesPerView: spv,
	})
	s.publishSlide(old)
}

// SetCount replaces the number of items, keeping the window position when
// it is still valid.
func (s *Service) SetCount(n int) {
	old := s.pager.CurrentIndex()
	s.pager.SetCount(n)
	s.clampFocus()
	s.publishSlide(old)
}

// Navigate moves the window one position, wrapping at both ends
func (s *Service) Navigate(direction Direction) {
	old := s.pager.CurrentIndex()
	switch direction {
	case DirectionLeft:
		s.pager.Retreat()
	case DirectionRight:
		s.pager.Advance()
	default:
		return
	}
	s.clampFocus()
	s.publishSlide(old)
}

// FocusNext cycles focus forward through the visible cards
func (s *Service) FocusNext() {
	if n := s.visible(); n > 0 {
		s.focus = (s.focus + 1) % n
	}
}

// FocusPrev cycles focus backward through the visible cards
func (s *Service) FocusPrev() {
	if n := s.visible(); n > 0 {
		s.focus = (s.focus - 1 + n) % n
	}
}

// Focused returns the absolute index of the focused card, or -1
func (s *Service) Focused() int {
	if s.visible() == 0 {
		return -1
	}
	start, _ := s.pager.Window()
	return start + s.focus
}

// State returns a snapshot for rendering
func (s *Service) State() State {
	start, end := s.pager.Window()
	return State{
		CurrentIndex:  s.pager.CurrentIndex(),
		SlidesPerView: s.pager.SlidesPerView(),
		TotalSlides:   s.pager.TotalSlides(),
		ShowControls:  s.pager.ShowControls(),
		OffsetPercent: s.pager.OffsetPercent(),
		WindowStart:   start,
		WindowEnd:     end,
		Count:         s.pager.Count(),
		Class:         s.pager.Layout().Classify(s.pager.Width()),
		Focus:         s.Focused(),
	}
}

func (s *Service) visible() int {
	start, end := s.pager.Window()
	return end - start
}

func (s *Service) clampFocus() {
	if n := s.visible(); s.focus >= n {
		s.focus = max(0, n-1)
	}
}

func (s *Service) publishSlide(old int) {
	if cur := s.pager.CurrentIndex(); cur != old {
		s.bus.Publish(SlideChangedEvent{
			OldIndex:    old,
			NewIndex:    cur,
			TotalSlides: s.pager.TotalSlides(),
		})
	}
}
