package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"reelshare/internal/catalog"
	"reelshare/internal/domain"
	"reelshare/internal/media"
	"reelshare/internal/ui/input/modes"
)

var errMissingFields = errors.New("All required fields must be provided")

// buildSubmission checks an add-movie form and turns it into a submission.
// Files are checked for existence and type before anything is uploaded.
func buildSubmission(values map[string]string) (domain.MovieSubmission, error) {
	for _, name := range []string{
		modes.FieldTitle, modes.FieldGenres, modes.FieldYear, modes.FieldRating,
		modes.FieldReview, modes.FieldPoster, modes.FieldMovieFile,
	} {
		if values[name] == "" {
			return domain.MovieSubmission{}, errMissingFields
		}
	}

	var genres []string
	for _, g := range strings.Split(values[modes.FieldGenres], ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	if len(genres) == 0 {
		return domain.MovieSubmission{}, errMissingFields
	}

	year, err := strconv.Atoi(values[modes.FieldYear])
	if err != nil || year < 1888 || year > 2100 {
		return domain.MovieSubmission{}, errors.New("Year must be a number between 1888 and 2100")
	}
	rating, err := strconv.Atoi(values[modes.FieldRating])
	if err != nil || rating < 0 || rating > 10 {
		return domain.MovieSubmission{}, errors.New("Rating must be a number between 0 and 10")
	}

	trailer := values[modes.FieldTrailerURL]
	if trailer != "" && !catalog.ValidTrailerURL(trailer) {
		return domain.MovieSubmission{}, errors.New("Trailer must be a YouTube or Vimeo link")
	}
	trailer = catalog.NormalizeTrailerURL(trailer)

	poster, err := checkFile(values[modes.FieldPoster], media.KindPoster)
	if err != nil {
		return domain.MovieSubmission{}, err
	}
	video, err := checkFile(values[modes.FieldMovieFile], media.KindVideo)
	if err != nil {
		return domain.MovieSubmission{}, err
	}

	return domain.MovieSubmission{
		Title:      values[modes.FieldTitle],
		Genres:     genres,
		Year:       year,
		Rating:     rating,
		Review:     values[modes.FieldReview],
		TrailerURL: trailer,
		PosterPath: poster,
		VideoPath:  video,
	}, nil
}

// checkFile resolves a leading ~ and sniffs the file's content type
func checkFile(path string, kind media.Kind) (string, error) {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("Cannot open %s file: %s", kind, path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("Not a regular file: %s", path)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("Cannot read %s: %w", path, err)
	}

	if err := media.CheckType(kind, catalog.ContentType(path, head[:n])); err != nil {
		msg := strings.TrimPrefix(err.Error(), media.ErrUnsupportedType.Error()+": ")
		return "", errors.New(strings.ToUpper(msg[:1]) + msg[1:])
	}
	return path, nil
}
