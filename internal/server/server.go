// Package server is the reelshare HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"reelshare/internal/api"
	"reelshare/internal/auth"
	"reelshare/internal/domain"
	"reelshare/internal/media"
)

// Store is the persistence the handlers need.
type Store interface {
	auth.UserLookup
	CreateUser(ctx context.Context, u domain.User) error
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	CreateMovie(ctx context.Context, m domain.Movie) error
	Movie(ctx context.Context, id string) (domain.Movie, error)
	ListMovies(ctx context.Context) ([]domain.Movie, error)
}

// Options are the tunables taken from the [server] config section.
type Options struct {
	CORSOrigins     []string
	RateLimitMax    int
	RateLimitWindow time.Duration
	MaxUploadBytes  int64
	// MediaDir is served under /media/ when set (local media backend).
	MediaDir string
}

// Server wires handlers to their dependencies.
type Server struct {
	store    Store
	jwt      *auth.JWTManager
	uploader media.Uploader
	opts     Options
	router   chi.Router
}

func New(store Store, jwt *auth.JWTManager, uploader media.Uploader, opts Options) *Server {
	if opts.RateLimitMax < 1 {
		opts.RateLimitMax = 100
	}
	if opts.RateLimitWindow <= 0 {
		opts.RateLimitWindow = time.Minute
	}
	if opts.MaxUploadBytes < 1 {
		opts.MaxUploadBytes = 100 << 20
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	s := &Server{store: store, jwt: jwt, uploader: uploader, opts: opts}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(requestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(s.opts.CORSOrigins))
	r.Use(rateLimit(s.opts.RateLimitMax, s.opts.RateLimitWindow))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		api.NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// credential guessing gets a tighter budget than browsing
			r.Use(rateLimit(max(1, s.opts.RateLimitMax/5), s.opts.RateLimitWindow))
			r.Post("/create", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		r.Route("/movies", func(r chi.Router) {
			r.Use(auth.Middleware(s.jwt, s.store))
			r.Get("/get", s.handleListMovies)
			r.Get("/get/{id}", s.handleGetMovie)
			r.Post("/add", s.handleAddMovie)
		})
	})

	if s.opts.MediaDir != "" {
		fs := http.StripPrefix(media.MountPath, http.FileServer(http.Dir(s.opts.MediaDir)))
		r.Get(media.MountPath+"*", fs.ServeHTTP)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, api.ErrCodeBadRequest, "Method not allowed")
	})

	return r
}
