//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// FakeMovie is the JSON shape the movies API returns
type FakeMovie struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Poster        string   `json:"poster"`
	FileURL       string   `json:"fileUrl"`
	Genres        []string `json:"genres"`
	Year          int      `json:"year"`
	Rating        int      `json:"rating"`
	Review        string   `json:"review"`
	RecommendedBy string   `json:"recommendedBy"`
	TrailerURL    string   `json:"trailerUrl,omitempty"`
}

// FakeToken is the only bearer token the fake API accepts
const FakeToken = "e2e-token"

// FakeAPI serves the read side of the movies API from memory
type FakeAPI struct {
	srv *httptest.Server

	mu     sync.Mutex
	movies []FakeMovie
	hits   map[string]int
}

// StartFakeAPI starts a fake API for the test and points the app at it
func (tf *TUITestFramework) StartFakeAPI(movies []FakeMovie) *FakeAPI {
	tf.t.Helper()
	api := &FakeAPI{movies: movies, hits: make(map[string]int)}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/movies/get", requireToken(api.list))
	mux.HandleFunc("/api/movies/get/", requireToken(api.get))
	api.srv = httptest.NewServer(mux)
	tf.api = api
	return api
}

func (a *FakeAPI) URL() string { return a.srv.URL }
func (a *FakeAPI) Close()      { a.srv.Close() }

// Hits returns how many times path was requested
func (a *FakeAPI) Hits(path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[path]
}

// requireToken answers 401 unless the request carries FakeToken
func requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+FakeToken {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized: No token provided")
			return
		}
		next(w, r)
	}
}

func (a *FakeAPI) list(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.hits[r.URL.Path]++
	movies := append([]FakeMovie(nil), a.movies...)
	a.mu.Unlock()
	writeEnvelope(w, http.StatusOK, movies)
}

func (a *FakeAPI) get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/movies/get/")
	a.mu.Lock()
	a.hits[r.URL.Path]++
	defer a.mu.Unlock()
	for _, m := range a.movies {
		if m.ID == id {
			writeEnvelope(w, http.StatusOK, map[string]FakeMovie{"movie": m})
			return
		}
	}
	writeError(w, http.StatusNotFound, "NOT_FOUND", "Movie not found")
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
}

// SampleMovies returns n movies titled "Movie 1" .. "Movie n"
func SampleMovies(n int) []FakeMovie {
	movies := make([]FakeMovie, n)
	for i := range movies {
		movies[i] = FakeMovie{
			ID:            fmt.Sprintf("m%02d", i+1),
			Title:         fmt.Sprintf("Movie %d", i+1),
			Genres:        []string{"Drama"},
			Year:          2000 + i,
			Rating:        7,
			Review:        fmt.Sprintf("Review of movie %d", i+1),
			RecommendedBy: "user-1",
		}
	}
	return movies
}
