package server

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelshare/internal/api"
	"reelshare/internal/auth"
	"reelshare/internal/domain"
	"reelshare/internal/media"
	"reelshare/internal/store"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *api.APIError   `json:"error"`
}

type harness struct {
	t        *testing.T
	srv      *Server
	mediaDir string
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	st, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	jwtManager, err := auth.NewJWTManager(testSecret, time.Hour)
	require.NoError(t, err)

	dir := t.TempDir()
	uploader, err := media.NewLocalUploader(dir, "")
	require.NoError(t, err)
	opts.MediaDir = dir

	return &harness{t: t, srv: New(st, jwtManager, uploader, opts), mediaDir: dir}
}

func (h *harness) do(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	h.t.Helper()
	rec := httptest.NewRecorder()
	h.srv.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(h.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (h *harness) postJSON(path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	h.t.Helper()
	data, err := json.Marshal(body)
	require.NoError(h.t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return h.do(req)
}

func (h *harness) registerAndLogin(username, email string) string {
	h.t.Helper()
	rec, _ := h.postJSON("/api/auth/create", api.RegisterRequest{Username: username, Email: email, Password: "hunter22"})
	require.Equal(h.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := h.postJSON("/api/auth/login", api.LoginRequest{Email: email, Password: "hunter22"})
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())
	var res api.LoginResult
	require.NoError(h.t, json.Unmarshal(env.Data, &res))
	return res.Token
}

// get issues an authenticated GET
func (h *harness) get(path, token string) (*httptest.ResponseRecorder, envelope) {
	h.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return h.do(req)
}

type filePart struct {
	field, name, contentType, body string
}

func multipartRequest(t *testing.T, fields map[string]string, files ...filePart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.name))
		hdr.Set("Content-Type", f.contentType)
		w, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = io.WriteString(w, f.body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/movies/add", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func movieFields() map[string]string {
	return map[string]string{
		"title":      "Arrival <b>2016</b>",
		"genres":     `["Sci-Fi", "Drama"]`,
		"year":       "2016",
		"rating":     "9",
		"review":     "Language as a weapon.",
		"trailerUrl": "https://www.youtube.com/watch?v=tFMo3UJ4B4g",
	}
}

func movieFiles() []filePart {
	return []filePart{
		{FieldPoster, "arrival.jpg", "image/jpeg", "poster-bytes"},
		{FieldMovieFile, "arrival.mp4", "video/mp4", "video-bytes"},
	}
}

func TestHealthz(t *testing.T) {
	h := newHarness(t, Options{})
	rec, env := h.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRegister(t *testing.T) {
	h := newHarness(t, Options{})

	rec, env := h.postJSON("/api/auth/create", api.RegisterRequest{Username: "<i>ana</i>", Email: "ana@example.com", Password: "hunter22"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res api.UserResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "ana", res.User.Username, "markup stripped")
	assert.NotEmpty(t, res.User.ID)
	assert.NotContains(t, rec.Body.String(), "hunter22")
	assert.NotContains(t, rec.Body.String(), "password")

	rec, env = h.postJSON("/api/auth/create", api.RegisterRequest{Username: "other", Email: "ANA@example.com", Password: "hunter22"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User already exists", env.Error.Message)

	rec, env = h.postJSON("/api/auth/create", map[string]string{"username": "bo"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, api.ErrCodeValidationFailed, env.Error.Code)
	details, ok := env.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/create", strings.NewReader("{not json"))
	rec, env = h.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, api.ErrCodeBadRequest, env.Error.Code)
}

func TestLogin(t *testing.T) {
	h := newHarness(t, Options{})
	token := h.registerAndLogin("ana", "ana@example.com")
	assert.NotEmpty(t, token)

	rec, env := h.postJSON("/api/auth/login", api.LoginRequest{Email: "ana@example.com", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", env.Error.Message)

	rec, _ = h.postJSON("/api/auth/login", api.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = h.postJSON("/api/auth/login", map[string]string{"email": "ana@example.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password are required", env.Error.Message)
}

func TestAddMovieRequiresToken(t *testing.T) {
	h := newHarness(t, Options{})
	rec, env := h.do(multipartRequest(t, movieFields(), movieFiles()...))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized: No token provided", env.Error.Message)
}

func TestAddListGetMovie(t *testing.T) {
	h := newHarness(t, Options{})
	token := h.registerAndLogin("ana", "ana@example.com")

	req := multipartRequest(t, movieFields(), movieFiles()...)
	req.Header.Set("Authorization", "Bearer "+token)
	rec, env := h.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var added api.MovieResult
	require.NoError(t, json.Unmarshal(env.Data, &added))
	m := added.Movie
	assert.Equal(t, "Arrival 2016", m.Title)
	assert.Equal(t, []string{"Sci-Fi", "Drama"}, m.Genres)
	assert.Equal(t, 2016, m.Year)
	assert.Equal(t, 9, m.Rating)
	assert.NotEmpty(t, m.RecommendedBy)
	assert.True(t, strings.HasPrefix(m.Poster, media.MountPath+"posters/"), m.Poster)
	assert.True(t, strings.HasPrefix(m.FileURL, media.MountPath+"videos/"), m.FileURL)

	// uploaded files are served back
	rec = httptest.NewRecorder()
	h.srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, m.Poster, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "poster-bytes", rec.Body.String())

	rec, env = h.get("/api/movies/get", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var movies []domain.Movie
	require.NoError(t, json.Unmarshal(env.Data, &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, m.ID, movies[0].ID)

	rec, env = h.get("/api/movies/get/"+m.ID, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var got api.MovieResult
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, m, got.Movie)

	rec, env = h.get("/api/movies/get/missing", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Movie not found", env.Error.Message)
}

func TestListMoviesEmptyIsArray(t *testing.T) {
	h := newHarness(t, Options{})
	token := h.registerAndLogin("ana", "ana@example.com")
	rec, _ := h.get("/api/movies/get", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestMovieReadsRequireToken(t *testing.T) {
	h := newHarness(t, Options{})
	for _, path := range []string{"/api/movies/get", "/api/movies/get/some-id"} {
		rec, env := h.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "Unauthorized: No token provided", env.Error.Message, path)

		rec, env = h.get(path, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "Unauthorized: Invalid or expired token", env.Error.Message, path)
	}
}

func TestAddMovieBareTrailerLink(t *testing.T) {
	h := newHarness(t, Options{})
	token := h.registerAndLogin("ana", "ana@example.com")

	fields := movieFields()
	fields["trailerUrl"] = "youtube.com/watch?v=tFMo3UJ4B4g"
	req := multipartRequest(t, fields, movieFiles()...)
	req.Header.Set("Authorization", "Bearer "+token)
	rec, env := h.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var added api.MovieResult
	require.NoError(t, json.Unmarshal(env.Data, &added))
	assert.Equal(t, "https://youtube.com/watch?v=tFMo3UJ4B4g", added.Movie.TrailerURL)
}

func TestAddMovieRejections(t *testing.T) {
	h := newHarness(t, Options{})
	token := h.registerAndLogin("ana", "ana@example.com")

	send := func(fields map[string]string, files ...filePart) (*httptest.ResponseRecorder, envelope) {
		req := multipartRequest(t, fields, files...)
		req.Header.Set("Authorization", "Bearer "+token)
		return h.do(req)
	}

	t.Run("missing field", func(t *testing.T) {
		fields := movieFields()
		delete(fields, "review")
		rec, env := send(fields, movieFiles()...)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "All required fields must be provided", env.Error.Message)
	})

	t.Run("missing file", func(t *testing.T) {
		rec, _ := send(movieFields(), movieFiles()[0])
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad numbers", func(t *testing.T) {
		fields := movieFields()
		fields["year"] = "last year"
		fields["rating"] = "11"
		rec, env := send(fields, movieFiles()...)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, api.ErrCodeValidationFailed, env.Error.Code)
	})

	t.Run("rating out of range", func(t *testing.T) {
		fields := movieFields()
		fields["rating"] = "11"
		rec, env := send(fields, movieFiles()...)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		details, _ := env.Error.Details.(map[string]interface{})
		assert.Contains(t, details, "rating")
	})

	t.Run("genres not json", func(t *testing.T) {
		fields := movieFields()
		fields["genres"] = "Drama"
		rec, env := send(fields, movieFiles()...)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		details, _ := env.Error.Details.(map[string]interface{})
		assert.Contains(t, details, "genres")
	})

	t.Run("poster not an image", func(t *testing.T) {
		files := movieFiles()
		files[0].contentType = "text/plain"
		rec, env := send(movieFields(), files...)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Equal(t, "poster must be an image", env.Error.Message)
	})

	t.Run("video not mp4", func(t *testing.T) {
		files := movieFiles()
		files[1].contentType = "video/webm"
		rec, env := send(movieFields(), files...)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Equal(t, "movie file must be MP4", env.Error.Message)
	})

	rec, env := h.get("/api/movies/get", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", string(env.Data), "nothing stored by rejected uploads")
}

func TestAddMovieTooLarge(t *testing.T) {
	h := newHarness(t, Options{MaxUploadBytes: 512})
	token := h.registerAndLogin("ana", "ana@example.com")

	files := movieFiles()
	files[1].body = strings.Repeat("x", 4096)
	req := multipartRequest(t, movieFields(), files...)
	req.Header.Set("Authorization", "Bearer "+token)
	rec, env := h.do(req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, api.ErrCodePayloadTooLarge, env.Error.Code)
}

func TestRateLimit(t *testing.T) {
	h := newHarness(t, Options{RateLimitMax: 3, RateLimitWindow: time.Minute})
	for i := 0; i < 3; i++ {
		rec, _ := h.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec, env := h.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, api.ErrCodeTooManyRequests, env.Error.Code)
}

func TestUnknownRoute(t *testing.T) {
	h := newHarness(t, Options{})
	rec, env := h.do(httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, api.ErrCodeNotFound, env.Error.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newHarness(t, Options{CORSOrigins: []string{"https://app.test"}})
	req := httptest.NewRequest(http.MethodOptions, "/api/movies/get", nil)
	req.Header.Set("Origin", "https://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.srv.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.test", rec.Header().Get("Access-Control-Allow-Origin"))
}
