// Package catalog talks to the reelshare API on behalf of the TUI.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"reelshare/internal/api"
	"reelshare/internal/domain"
	"reelshare/internal/logging"
	"reelshare/internal/session"
)

// ErrUnauthorized matches any 401 answer, and calls that need a session
// made without one.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %s", e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Client is a thin HTTP client for the reelshare API.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// BaseURL is the API root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, username, email, password string) (domain.PublicUser, error) {
	var res api.UserResult
	err := c.postJSON(ctx, "/api/auth/create", api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &res)
	return res.User, err
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var res api.LoginResult
	if err := c.postJSON(ctx, "/api/auth/login", api.LoginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	return &session.Session{Token: res.Token, User: res.User, ExpiresAt: res.ExpiresAt}, nil
}

// ListMovies returns every movie. Browsing needs a session.
func (c *Client) ListMovies(ctx context.Context, sess *session.Session) ([]domain.Movie, error) {
	var movies []domain.Movie
	if err := c.get(ctx, sess, "/api/movies/get", &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (c *Client) GetMovie(ctx context.Context, sess *session.Session, id string) (domain.Movie, error) {
	var res api.MovieResult
	err := c.get(ctx, sess, "/api/movies/get/"+url.PathEscape(id), &res)
	return res.Movie, err
}

// AddMovie uploads a submission. The poster and video are streamed from
// disk rather than buffered.
func (c *Client) AddMovie(ctx context.Context, sess *session.Session, sub domain.MovieSubmission) (domain.Movie, error) {
	if !sess.Authenticated(c.now()) {
		return domain.Movie{}, ErrUnauthorized
	}

	genres, err := json.Marshal(sub.Genres)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("encode genres: %w", err)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeSubmission(mw, sub, genres))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/movies/add", pr)
	if err != nil {
		_ = pr.Close()
		return domain.Movie{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", sess.BearerHeader())

	var res api.MovieResult
	err = c.do(req, &res)
	_ = pr.Close()
	return res.Movie, err
}

func writeSubmission(mw *multipart.Writer, sub domain.MovieSubmission, genres []byte) error {
	fields := [][2]string{
		{"title", sub.Title},
		{"genres", string(genres)},
		{"year", strconv.Itoa(sub.Year)},
		{"rating", strconv.Itoa(sub.Rating)},
		{"review", sub.Review},
	}
	if sub.TrailerURL != "" {
		fields = append(fields, [2]string{"trailerUrl", sub.TrailerURL})
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}
	if err := writeFilePart(mw, "poster", sub.PosterPath); err != nil {
		return err
	}
	if err := writeFilePart(mw, "movieFile", sub.VideoPath); err != nil {
		return err
	}
	return mw.Close()
}

func writeFilePart(mw *multipart.Writer, field, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", field, err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read %s: %w", field, err)
	}
	head = head[:n]

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filepath.Base(path)))
	hdr.Set("Content-Type", ContentType(path, head))
	w, err := mw.CreatePart(hdr)
	if err != nil {
		return err
	}
	if _, err := w.Write(head); err != nil {
		return err
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("stream %s: %w", field, err)
	}
	return nil
}

// get sends an authenticated GET
func (c *Client) get(ctx context.Context, sess *session.Session, path string, out interface{}) error {
	if !sess.Authenticated(c.now()) {
		return ErrUnauthorized
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", sess.BearerHeader())
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *api.APIError   `json:"error"`
}

// do sends req and decodes the envelope's data into out.
func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	logging.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API call")

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, decodeErr)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", req.URL.Path, err)
	}
	return nil
}
