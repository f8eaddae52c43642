package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"reelshare/internal/domain"
	"reelshare/internal/eventbus"
	"reelshare/internal/logging"
	"reelshare/internal/session"
)

// API is the part of Client the service drives.
type API interface {
	Register(ctx context.Context, username, email, password string) (domain.PublicUser, error)
	Login(ctx context.Context, email, password string) (*session.Session, error)
	ListMovies(ctx context.Context, sess *session.Session) ([]domain.Movie, error)
	GetMovie(ctx context.Context, sess *session.Session, id string) (domain.Movie, error)
	AddMovie(ctx context.Context, sess *session.Session, sub domain.MovieSubmission) (domain.Movie, error)
}

// Service turns request events on the bus into API calls and publishes the
// outcome. It owns the client session.
type Service struct {
	bus      eventbus.EventBus
	api      API
	sessions *session.Store
	ctx      context.Context

	mu      sync.RWMutex
	session *session.Session

	unsubscribe []func()
}

// NewService subscribes to the catalog request events. sessions may be nil,
// in which case logins last for the process only.
func NewService(ctx context.Context, bus eventbus.EventBus, client API, sessions *session.Store) *Service {
	s := &Service{
		bus:      bus,
		api:      client,
		sessions: sessions,
		ctx:      ctx,
		session:  &session.Session{},
	}

	if sessions != nil {
		if sess, err := sessions.Load(); err != nil {
			logging.Warn().Err(err).Msg("Failed to load saved session")
		} else if sess.Authenticated(time.Now()) {
			s.session = sess
		}
	}

	s.unsubscribe = []func(){
		bus.Subscribe(eventbus.EventCatalogRefreshRequested, s.handleRefresh),
		bus.Subscribe(eventbus.EventMovieDetailRequested, s.handleDetail),
		bus.Subscribe(eventbus.EventMovieSubmitRequested, s.handleSubmit),
		bus.Subscribe(eventbus.EventLoginRequested, s.handleLogin),
		bus.Subscribe(eventbus.EventRegisterRequested, s.handleRegister),
		bus.Subscribe(eventbus.EventLogoutRequested, s.handleLogout),
	}
	return s
}

// Close unsubscribes the service from the bus.
func (s *Service) Close() {
	for _, unsub := range s.unsubscribe {
		unsub()
	}
}

// Session returns a copy of the current session.
func (s *Service) Session() session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.session
}

// CurrentUser is nil when signed out.
func (s *Service) CurrentUser() *domain.PublicUser {
	sess := s.Session()
	if !sess.Authenticated(time.Now()) {
		return nil
	}
	return &sess.User
}

func (s *Service) handleRefresh(domain.DomainEvent) {
	sess := s.Session()
	movies, err := s.api.ListMovies(s.ctx, &sess)
	if errors.Is(err, ErrUnauthorized) {
		s.signedOut("Please log in to browse movies", err)
		return
	}
	if err != nil {
		s.fail("Failed to load movies", err)
		return
	}
	logging.Debug().Int("count", len(movies)).Msg("Movies loaded")
	s.bus.Publish(eventbus.MoviesLoadedEvent{Movies: movies})
}

func (s *Service) handleDetail(e domain.DomainEvent) {
	ev, ok := e.(eventbus.MovieDetailRequestedEvent)
	if !ok {
		return
	}
	sess := s.Session()
	movie, err := s.api.GetMovie(s.ctx, &sess, ev.ID)
	if errors.Is(err, ErrUnauthorized) {
		s.signedOut("Please log in to browse movies", err)
		return
	}
	if err != nil {
		s.fail("Failed to load movie", err)
		return
	}
	s.bus.Publish(eventbus.MovieDetailLoadedEvent{Movie: movie})
}

func (s *Service) handleSubmit(e domain.DomainEvent) {
	ev, ok := e.(eventbus.MovieSubmitRequestedEvent)
	if !ok {
		return
	}

	sess := s.Session()
	movie, err := s.api.AddMovie(s.ctx, &sess, ev.Submission)
	if errors.Is(err, ErrUnauthorized) {
		s.signedOut("Please log in to upload a movie", err)
		return
	}
	if err != nil {
		s.fail("Failed to upload movie", err)
		return
	}

	logging.Info().Str("movie_id", movie.ID).Msg("Movie uploaded")
	s.bus.Publish(eventbus.MovieAddedEvent{Movie: movie})
	s.bus.Publish(eventbus.CatalogRefreshRequestedEvent{})
}

func (s *Service) handleLogin(e domain.DomainEvent) {
	ev, ok := e.(eventbus.LoginRequestedEvent)
	if !ok {
		return
	}
	sess, err := s.api.Login(s.ctx, ev.Email, ev.Password)
	if err != nil {
		s.fail("Login failed", err)
		return
	}
	s.setSession(sess)
}

func (s *Service) handleRegister(e domain.DomainEvent) {
	ev, ok := e.(eventbus.RegisterRequestedEvent)
	if !ok {
		return
	}
	user, err := s.api.Register(s.ctx, ev.Username, ev.Email, ev.Password)
	if err != nil {
		s.fail("Registration failed", err)
		return
	}
	s.bus.Publish(eventbus.RegisteredEvent{User: user})
}

func (s *Service) handleLogout(domain.DomainEvent) {
	s.setSession(&session.Session{})
}

// setSession swaps the session, persists it and announces the change.
func (s *Service) setSession(sess *session.Session) {
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	if s.sessions != nil {
		var err error
		if sess.Token == "" {
			err = s.sessions.Clear()
		} else {
			err = s.sessions.Save(sess)
		}
		if err != nil {
			logging.Warn().Err(err).Msg("Failed to persist session")
		}
	}

	var user *domain.PublicUser
	if sess.Token != "" {
		u := sess.User
		user = &u
	}
	s.bus.Publish(eventbus.SessionChangedEvent{User: user})
}

// signedOut drops a session the API no longer accepts. Nothing is announced
// when there was no session to drop.
func (s *Service) signedOut(message string, err error) {
	if s.Session().Token != "" {
		s.setSession(&session.Session{})
	}
	s.fail(message, err)
}

func (s *Service) fail(message string, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		message = message + ": " + apiErr.Message
	}
	logging.Warn().Err(err).Msg(message)
	s.bus.Publish(eventbus.ErrorEvent{Message: message, Err: err})
}
