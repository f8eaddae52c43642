package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"reelshare/internal/api"
	"reelshare/internal/auth"
	"reelshare/internal/domain"
	"reelshare/internal/logging"
	"reelshare/internal/media"
	"reelshare/internal/store"
)

// Multipart part names of POST /api/movies/add
const (
	FieldPoster    = "poster"
	FieldMovieFile = "movieFile"
)

// parts above this size spill to temp files
const multipartMemory = 8 << 20

type addMovieForm struct {
	Title      string   `json:"title" validate:"required,max=200"`
	Genres     []string `json:"genres" validate:"required,min=1,max=10,dive,required,max=40"`
	Year       int      `json:"year" validate:"gte=1888,lte=2100"`
	Rating     int      `json:"rating" validate:"gte=0,lte=10"`
	Review     string   `json:"review" validate:"required,max=5000"`
	TrailerURL string   `json:"trailerUrl" validate:"omitempty,url"`
}

// handleAddMovie serves POST /api/movies/add
func (s *Server) handleAddMovie(w http.ResponseWriter, r *http.Request) {
	rw := api.NewResponseWriter(w, r)

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		rw.Unauthorized("Unauthorized: No token provided")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) ||
			strings.Contains(err.Error(), "request body too large") {
			rw.PayloadTooLarge(fmt.Sprintf("Upload exceeds %d bytes", s.opts.MaxUploadBytes))
			return
		}
		rw.BadRequest("Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	poster, posterHeader, posterErr := r.FormFile(FieldPoster)
	video, videoHeader, videoErr := r.FormFile(FieldMovieFile)
	if poster != nil {
		defer poster.Close()
	}
	if video != nil {
		defer video.Close()
	}

	missing := posterErr != nil || videoErr != nil
	for _, name := range []string{"title", "genres", "year", "rating", "review"} {
		if strings.TrimSpace(r.FormValue(name)) == "" {
			missing = true
		}
	}
	if missing {
		rw.BadRequest("All required fields must be provided")
		return
	}

	form, fields := parseAddMovieForm(r)
	if fields == nil {
		fields = validateStruct(&form)
	}
	if fields != nil {
		rw.ValidationError("Invalid movie details", fields)
		return
	}

	posterType := posterHeader.Header.Get("Content-Type")
	videoType := videoHeader.Header.Get("Content-Type")
	for _, part := range []struct {
		kind media.Kind
		ct   string
	}{{media.KindPoster, posterType}, {media.KindVideo, videoType}} {
		if err := media.CheckType(part.kind, part.ct); err != nil {
			rw.UnsupportedMedia(strings.TrimPrefix(err.Error(), media.ErrUnsupportedType.Error()+": "))
			return
		}
	}

	ctx := r.Context()
	posterURL, err := s.uploader.Upload(ctx, media.KindPoster, posterHeader.Filename, posterType, poster)
	if err != nil {
		rw.InternalError("Failed to upload movie", err)
		return
	}
	fileURL, err := s.uploader.Upload(ctx, media.KindVideo, videoHeader.Filename, videoType, video)
	if err != nil {
		rw.InternalError("Failed to upload movie", err)
		return
	}

	movie := domain.Movie{
		ID:            uuid.NewString(),
		Title:         form.Title,
		Poster:        posterURL,
		FileURL:       fileURL,
		Genres:        form.Genres,
		Year:          form.Year,
		Rating:        form.Rating,
		Review:        form.Review,
		RecommendedBy: claims.UserID,
		TrailerURL:    form.TrailerURL,
	}
	if err := s.store.CreateMovie(ctx, movie); err != nil {
		rw.InternalError("Failed to upload movie", err)
		return
	}

	logging.Ctx(ctx).Info().
		Str("movie_id", movie.ID).
		Str("user_id", claims.UserID).
		Int64("bytes", posterHeader.Size+videoHeader.Size).
		Msg("Movie added")
	rw.Created(api.MovieResult{Movie: movie})
}

// parseAddMovieForm sanitizes the text parts and converts the typed ones.
// A non-nil map reports the parts that could not be converted.
func parseAddMovieForm(r *http.Request) (addMovieForm, map[string]string) {
	form := addMovieForm{
		Title:      sanitize(r.FormValue("title")),
		Review:     sanitize(r.FormValue("review")),
		TrailerURL: withScheme(sanitize(r.FormValue("trailerUrl"))),
	}
	fields := map[string]string{}

	var genres []string
	if err := json.Unmarshal([]byte(r.FormValue("genres")), &genres); err != nil {
		fields["genres"] = "genres must be a JSON array of strings"
	}
	for _, g := range genres {
		if g = sanitize(g); g != "" {
			form.Genres = append(form.Genres, g)
		}
	}

	var err error
	if form.Year, err = strconv.Atoi(strings.TrimSpace(r.FormValue("year"))); err != nil {
		fields["year"] = "year must be a number"
	}
	if form.Rating, err = strconv.Atoi(strings.TrimSpace(r.FormValue("rating"))); err != nil {
		fields["rating"] = "rating must be a number"
	}

	if len(fields) == 0 {
		return form, nil
	}
	return form, fields
}

// withScheme gives a bare link such as "youtu.be/x" an https scheme
func withScheme(link string) string {
	if link == "" || strings.Contains(link, "://") {
		return link
	}
	return "https://" + link
}

// handleListMovies serves GET /api/movies/get
func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	rw := api.NewResponseWriter(w, r)
	movies, err := s.store.ListMovies(r.Context())
	if err != nil {
		rw.InternalError("Failed to fetch movies", err)
		return
	}
	rw.Success(movies)
}

// handleGetMovie serves GET /api/movies/get/{id}
func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	rw := api.NewResponseWriter(w, r)
	movie, err := s.store.Movie(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.NotFound("Movie not found")
			return
		}
		rw.InternalError("Failed to fetch movie", err)
		return
	}
	rw.Success(api.MovieResult{Movie: movie})
}
