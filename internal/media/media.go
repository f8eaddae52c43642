// Package media stores uploaded posters and movie files and hands back the
// public URL they are served from.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"reelshare/internal/config"
)

// Kind tells posters and movie files apart.
type Kind string

const (
	KindPoster Kind = "poster"
	KindVideo  Kind = "video"
)

var ErrUnsupportedType = errors.New("unsupported media type")

// Uploader persists one file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, kind Kind, filename, contentType string, r io.Reader) (string, error)
}

// CheckType enforces the accepted content types: any image for posters,
// MP4 for movie files.
func CheckType(kind Kind, contentType string) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	switch kind {
	case KindPoster:
		if !strings.HasPrefix(mediaType, "image/") {
			return fmt.Errorf("%w: poster must be an image", ErrUnsupportedType)
		}
	case KindVideo:
		if mediaType != "video/mp4" {
			return fmt.Errorf("%w: movie file must be MP4", ErrUnsupportedType)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrUnsupportedType, kind)
	}
	return nil
}

// objectName is "<kind>s/<uuid><ext>"; the client's file name only
// contributes its extension.
func objectName(kind Kind, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 8 || strings.ContainsAny(ext, `/\ `) {
		ext = ""
	}
	return path.Join(string(kind)+"s", uuid.NewString()+ext)
}

// New builds the uploader selected by the media config.
func New(ctx context.Context, cfg config.MediaConfig) (Uploader, error) {
	switch cfg.Backend {
	case config.MediaBackendLocal, "":
		return NewLocalUploader(cfg.LocalDir, cfg.PublicBaseURL)
	case config.MediaBackendGCS:
		return NewGCSUploader(ctx, cfg.GCSBucket, cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("media: unknown backend %q", cfg.Backend)
	}
}
