package eventbus

import (
	"runtime/debug"
	"sync"

	"reelshare/internal/domain"
	"reelshare/internal/logging"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventCatalogRefreshRequested = domain.EventCatalogRefreshRequested
	EventMoviesLoaded            = domain.EventMoviesLoaded
	EventMovieDetailRequested    = domain.EventMovieDetailRequested
	EventMovieDetailLoaded       = domain.EventMovieDetailLoaded
	EventMovieSubmitRequested    = domain.EventMovieSubmitRequested
	EventMovieAdded              = domain.EventMovieAdded
	EventLoginRequested          = domain.EventLoginRequested
	EventRegisterRequested       = domain.EventRegisterRequested
	EventRegistered              = domain.EventRegistered
	EventLogoutRequested         = domain.EventLogoutRequested
	EventSessionChanged          = domain.EventSessionChanged
	EventError                   = domain.EventError
	EventConfigLoaded            = domain.EventConfigLoaded
	EventConfigSaved             = domain.EventConfigSaved
)

// Re-export domain event types
type CatalogRefreshRequestedEvent = domain.CatalogRefreshRequestedEvent
type MoviesLoadedEvent = domain.MoviesLoadedEvent
type MovieDetailRequestedEvent = domain.MovieDetailRequestedEvent
type MovieDetailLoadedEvent = domain.MovieDetailLoadedEvent
type MovieSubmitRequestedEvent = domain.MovieSubmitRequestedEvent
type MovieAddedEvent = domain.MovieAddedEvent
type LoginRequestedEvent = domain.LoginRequestedEvent
type RegisterRequestedEvent = domain.RegisterRequestedEvent
type RegisteredEvent = domain.RegisteredEvent
type LogoutRequestedEvent = domain.LogoutRequestedEvent
type SessionChangedEvent = domain.SessionChangedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers. Events are dropped when the
// queue is full or the bus is closed.
func (b *bus) Publish(event DomainEvent) {
	// Credentials travel in login/register events; keep them out of the log line.
	logging.Debug().Str("event", string(event.Type())).Msg("EventBus: publishing")

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		logging.Warn().Str("event", string(event.Type())).Msg("Event bus channel full, dropping event")
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and discards queued events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				// handlers may block on network calls, so each gets its own goroutine
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							logging.Error().
								Str("event", string(eventType)).
								Interface("panic", r).
								Bytes("stack", debug.Stack()).
								Msg("Event handler panic")
						}
					}()
					h(event)
				}(s.handler, event.Type())
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
