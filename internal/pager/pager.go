// Package pager implements the circular, width-responsive window used by the
// movie carousel. It holds no item data, only the item count.
package pager

// Breakpoints are the width thresholds, in layout units, between the narrow,
// medium and wide classes.
type Breakpoints struct {
	Medium int // first width that counts as medium
	Wide   int // first width that counts as wide
}

// Slots is the number of items visible per breakpoint class.
type Slots struct {
	Narrow int
	Medium int
	Wide   int
}

// Layout couples breakpoints with their slot counts.
type Layout struct {
	Breakpoints Breakpoints
	Slots       Slots
}

// DefaultLayout is 2/3/4 slots split at 768 and 1024 units.
func DefaultLayout() Layout {
	return Layout{
		Breakpoints: Breakpoints{Medium: 768, Wide: 1024},
		Slots:       Slots{Narrow: 2, Medium: 3, Wide: 4},
	}
}

// WidthClass names a breakpoint class.
type WidthClass string

const (
	Narrow WidthClass = "narrow"
	Medium WidthClass = "medium"
	Wide   WidthClass = "wide"
)

// Classify maps a width to its breakpoint class.
func (l Layout) Classify(width int) WidthClass {
	switch {
	case width >= l.Breakpoints.Wide:
		return Wide
	case width >= l.Breakpoints.Medium:
		return Medium
	default:
		return Narrow
	}
}

// Configure returns the slides per view for a width. It is a pure function of
// width and never returns less than 1.
func (l Layout) Configure(width int) int {
	var n int
	switch l.Classify(width) {
	case Wide:
		n = l.Slots.Wide
	case Medium:
		n = l.Slots.Medium
	default:
		n = l.Slots.Narrow
	}
	return clampSlots(n)
}

// TotalSlides is the number of distinct window positions for n items.
func TotalSlides(n, slidesPerView int) int {
	total := n - clampSlots(slidesPerView) + 1
	if total < 1 {
		return 1
	}
	return total
}

// VisibleOffsetPercent is the strip translation for a window position, as a
// percentage of the viewport width.
func VisibleOffsetPercent(currentIndex, slidesPerView int) float64 {
	return float64(currentIndex) * (100 / float64(clampSlots(slidesPerView)))
}

// ShouldShowControls reports whether some items are out of view.
func ShouldShowControls(n, slidesPerView int) bool {
	return n > clampSlots(slidesPerView)
}

func clampSlots(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// State is the pager's whole mutable state.
type State struct {
	CurrentIndex  int
	SlidesPerView int
}

// Pager is a circular window over a sequence of items. It is not safe for
// concurrent use; a single event loop owns it.
type Pager struct {
	layout Layout
	width  int
	count  int
	state  State
}

// New mounts a pager at the given width with count items.
func New(layout Layout, width, count int) *Pager {
	p := &Pager{layout: layout, count: max(0, count)}
	p.Resize(width)
	return p
}

// Resize applies a width change. The index always goes back to 0, even when
// the slides per view did not change.
func (p *Pager) Resize(width int) int {
	p.width = width
	p.state.SlidesPerView = p.layout.Configure(width)
	p.state.CurrentIndex = 0
	return p.state.SlidesPerView
}

// SetCount replaces the item count. The index is kept when it is still a
// valid position and moved to the last position otherwise.
func (p *Pager) SetCount(count int) {
	p.count = max(0, count)
	if last := p.TotalSlides() - 1; p.state.CurrentIndex > last {
		p.state.CurrentIndex = last
	}
}

// Advance moves one position forward, wrapping from the last to the first.
func (p *Pager) Advance() int {
	if p.state.CurrentIndex >= p.TotalSlides()-1 {
		p.state.CurrentIndex = 0
	} else {
		p.state.CurrentIndex++
	}
	return p.state.CurrentIndex
}

// Retreat moves one position back, wrapping from the first to the last.
func (p *Pager) Retreat() int {
	if p.state.CurrentIndex <= 0 {
		p.state.CurrentIndex = p.TotalSlides() - 1
	} else {
		p.state.CurrentIndex--
	}
	return p.state.CurrentIndex
}

// State returns a copy of the current index and slides per view.
func (p *Pager) State() State { return p.state }

// CurrentIndex returns the first visible slide.
func (p *Pager) CurrentIndex() int { return p.state.CurrentIndex }

// SlidesPerView returns how many items fit at the current width.
func (p *Pager) SlidesPerView() int { return p.state.SlidesPerView }

// Count returns the number of items.
func (p *Pager) Count() int { return p.count }

// Width returns the last width passed to Resize.
func (p *Pager) Width() int { return p.width }

// Layout returns the breakpoint table in use.
func (p *Pager) Layout() Layout { return p.layout }

// TotalSlides returns the number of reachable start positions.
func (p *Pager) TotalSlides() int { return TotalSlides(p.count, p.state.SlidesPerView) }

// ShowControls reports whether there are more items than fit in view.
func (p *Pager) ShowControls() bool { return ShouldShowControls(p.count, p.state.SlidesPerView) }

// OffsetPercent returns the track translation for the current index.
func (p *Pager) OffsetPercent() float64 {
	return VisibleOffsetPercent(p.state.CurrentIndex, p.state.SlidesPerView)
}

// Window returns the half-open range of item indices currently in view.
func (p *Pager) Window() (start, end int) {
	start = p.state.CurrentIndex
	end = min(p.count, start+p.state.SlidesPerView)
	if start > end {
		start = end
	}
	return start, end
}
