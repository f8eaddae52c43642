package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogRefreshRequested EventType = "CatalogRefreshRequested"
	EventMoviesLoaded            EventType = "MoviesLoaded"
	EventMovieDetailRequested    EventType = "MovieDetailRequested"
	EventMovieDetailLoaded       EventType = "MovieDetailLoaded"
	EventMovieSubmitRequested    EventType = "MovieSubmitRequested"
	EventMovieAdded              EventType = "MovieAdded"
	EventLoginRequested          EventType = "LoginRequested"
	EventRegisterRequested       EventType = "RegisterRequested"
	EventRegistered              EventType = "Registered"
	EventLogoutRequested         EventType = "LogoutRequested"
	EventSessionChanged          EventType = "SessionChanged"
	EventError                   EventType = "Error"
	EventConfigLoaded            EventType = "ConfigLoaded"
	EventConfigSaved             EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CatalogRefreshRequestedEvent asks the catalog service to reload the movie list
type CatalogRefreshRequestedEvent struct{}

func (e CatalogRefreshRequestedEvent) Type() EventType { return EventCatalogRefreshRequested }

// MoviesLoadedEvent carries a freshly fetched movie list, in display order
type MoviesLoadedEvent struct {
	Movies []Movie
}

func (e MoviesLoadedEvent) Type() EventType { return EventMoviesLoaded }

type MovieDetailRequestedEvent struct {
	ID string
}

func (e MovieDetailRequestedEvent) Type() EventType { return EventMovieDetailRequested }

type MovieDetailLoadedEvent struct {
	Movie Movie
}

func (e MovieDetailLoadedEvent) Type() EventType { return EventMovieDetailLoaded }

// MovieSubmitRequestedEvent asks for an upload on behalf of the current session
type MovieSubmitRequestedEvent struct {
	Submission MovieSubmission
}

func (e MovieSubmitRequestedEvent) Type() EventType { return EventMovieSubmitRequested }

// MovieAddedEvent is emitted after the API accepted an upload
type MovieAddedEvent struct {
	Movie Movie
}

func (e MovieAddedEvent) Type() EventType { return EventMovieAdded }

type LoginRequestedEvent struct {
	Email    string
	Password string
}

func (e LoginRequestedEvent) Type() EventType { return EventLoginRequested }

type RegisterRequestedEvent struct {
	Username string
	Email    string
	Password string
}

func (e RegisterRequestedEvent) Type() EventType { return EventRegisterRequested }

type RegisteredEvent struct {
	User PublicUser
}

func (e RegisteredEvent) Type() EventType { return EventRegistered }

type LogoutRequestedEvent struct{}

func (e LogoutRequestedEvent) Type() EventType { return EventLogoutRequested }

// SessionChangedEvent is emitted on login and logout. User is nil after logout.
type SessionChangedEvent struct {
	User *PublicUser
}

func (e SessionChangedEvent) Type() EventType { return EventSessionChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
