package catalog

import (
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// extension table for types Go's mime package does not know everywhere
var videoTypes = map[string]string{
	".mp4": "video/mp4",
	".m4v": "video/mp4",
}

// ContentType picks a part's content type from the file extension, falling
// back to sniffing the first bytes.
func ContentType(path string, head []byte) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := videoTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return http.DetectContentType(head)
}

var trailerPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/|vimeo\.com/).+`)

// ValidTrailerURL accepts YouTube and Vimeo links.
func ValidTrailerURL(s string) bool {
	return trailerPattern.MatchString(strings.TrimSpace(s))
}

// NormalizeTrailerURL trims a trailer link and gives it an https scheme when
// it has none, so "youtu.be/x" is sent as "https://youtu.be/x".
func NormalizeTrailerURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, "://") {
		return s
	}
	return "https://" + s
}

// EmbedURL converts a YouTube or Vimeo page link to its player URL. Anything
// else is returned unchanged.
func EmbedURL(trailer string) string {
	trailer = strings.TrimSpace(trailer)
	u, err := url.Parse(NormalizeTrailerURL(trailer))
	if err != nil {
		return trailer
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch {
	case host == "youtube.com" || host == "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case host == "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case host == "vimeo.com":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://player.vimeo.com/video/" + id
		}
	}
	return trailer
}
