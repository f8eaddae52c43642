package carousel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelshare/internal/pager"
)

// recordingBus captures events synchronously
type recordingBus struct {
	mu     sync.Mutex
	events []interface{}
}

func (b *recordingBus) Publish(event interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe(string, func(interface{})) {}

func (b *recordingBus) take() []interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.events
	b.events = nil
	return out
}

func newService(t *testing.T, width, count int) (*Service, *recordingBus) {
	t.Helper()
	bus := &recordingBus{}
	s := NewService(pager.DefaultLayout(), bus)
	s.Resize(width)
	s.SetCount(count)
	bus.take()
	return s, bus
}

func TestResizePublishesLayout(t *testing.T) {
	s, bus := newService(t, 500, 6)
	s.Navigate(DirectionRight)
	bus.take()

	s.Resize(900)
	got := bus.take()
	require.Len(t, got, 2)
	assert.Equal(t, LayoutChangedEvent{Width: 900, Class: pager.Medium, SlidesPerView: 3}, got[0])
	assert.Equal(t, SlideChangedEvent{OldIndex: 1, NewIndex: 0, TotalSlides: 4}, got[1])

	st := s.State()
	assert.Equal(t, 0, st.CurrentIndex)
	assert.Equal(t, pager.Medium, st.Class)
}

func TestResizeSameWidthOnlyLayout(t *testing.T) {
	s, bus := newService(t, 1200, 6)
	s.Resize(1200)
	got := bus.take()
	require.Len(t, got, 1)
	assert.IsType(t, LayoutChangedEvent{}, got[0])
}

func TestNavigateWrapsAndPublishes(t *testing.T) {
	s, bus := newService(t, 500, 4) // 2 per view, 3 slides

	s.Navigate(DirectionLeft)
	assert.Equal(t, 2, s.State().CurrentIndex)
	s.Navigate(DirectionRight)
	assert.Equal(t, 0, s.State().CurrentIndex)

	assert.Equal(t, []interface{}{
		SlideChangedEvent{OldIndex: 0, NewIndex: 2, TotalSlides: 3},
		SlideChangedEvent{OldIndex: 2, NewIndex: 0, TotalSlides: 3},
	}, bus.take())
}

func TestNavigateWithEverythingVisible(t *testing.T) {
	s, bus := newService(t, 1200, 3)
	s.Navigate(DirectionRight)
	s.Navigate(DirectionLeft)
	assert.Empty(t, bus.take())
	assert.False(t, s.State().ShowControls)
}

func TestFocusCyclesInsideWindow(t *testing.T) {
	s, _ := newService(t, 900, 5) // 3 per view
	assert.Equal(t, 0, s.Focused())

	s.FocusNext()
	s.FocusNext()
	assert.Equal(t, 2, s.Focused())
	s.FocusNext()
	assert.Equal(t, 0, s.Focused())
	s.FocusPrev()
	assert.Equal(t, 2, s.Focused())

	s.Navigate(DirectionRight)
	assert.Equal(t, 3, s.Focused(), "focus keeps its slot when the window moves")

	s.Resize(900)
	assert.Equal(t, 0, s.Focused())
}

func TestFocusWithFewItems(t *testing.T) {
	s, _ := newService(t, 1200, 2)
	s.FocusNext()
	assert.Equal(t, 1, s.Focused())

	s.SetCount(1)
	assert.Equal(t, 0, s.Focused())

	s.SetCount(0)
	assert.Equal(t, -1, s.Focused())
	s.FocusNext()
	s.FocusPrev()
	assert.Equal(t, -1, s.State().Focus)
}

func TestSetCountClampsIndex(t *testing.T) {
	s, bus := newService(t, 500, 8)
	for i := 0; i < 5; i++ {
		s.Navigate(DirectionRight)
	}
	bus.take()

	s.SetCount(3)
	assert.Equal(t, []interface{}{SlideChangedEvent{OldIndex: 5, NewIndex: 1, TotalSlides: 2}}, bus.take())

	st := s.State()
	assert.Equal(t, 1, st.WindowStart)
	assert.Equal(t, 3, st.WindowEnd)
	assert.InDelta(t, 50.0, st.OffsetPercent, 1e-9)
}

func TestNilBus(t *testing.T) {
	s := NewService(pager.DefaultLayout(), nil)
	s.Resize(1000)
	s.SetCount(10)
	s.Navigate(DirectionRight)
	assert.Equal(t, 1, s.State().CurrentIndex)
}
