package domain

// Movie is a shared recommendation
type Movie struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Poster        string   `json:"poster"`  // URL of the uploaded poster image
	FileURL       string   `json:"fileUrl"` // URL of the uploaded mp4
	Genres        []string `json:"genres"`
	Year          int      `json:"year"`
	Rating        int      `json:"rating"` // out of 10
	Review        string   `json:"review"`
	RecommendedBy string   `json:"recommendedBy"` // user id
	TrailerURL    string   `json:"trailerUrl,omitempty"`
}

// Key is the stable identity used by the carousel
func (m Movie) Key() string { return m.ID }

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// PublicUser is the user shape returned by the API
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email}
}

// MovieSubmission is what a client sends to add a movie. PosterPath and
// VideoPath are local files streamed as multipart parts.
type MovieSubmission struct {
	Title      string
	Genres     []string
	Year       int
	Rating     int
	Review     string
	TrailerURL string
	PosterPath string
	VideoPath  string
}
