// Package store keeps users and movies in BadgerDB.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"reelshare/internal/domain"
	"reelshare/internal/logging"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// Key prefixes for BadgerDB storage
const (
	userKeyPrefix       = "user:"
	userEmailKeyPrefix  = "user_email:"
	userNameKeyPrefix   = "user_name:"
	movieKeyPrefix      = "movie:"
	movieOrderKeyPrefix = "movie_order:"
	movieSequenceKey    = "seq:movie"
)

// userRecord is the stored form of a user; unlike domain.User it serializes
// the password hash.
type userRecord struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// Store implements user and movie persistence.
type Store struct {
	db  *badger.DB
	seq *badger.Sequence
}

// Open opens (or creates) a store in dir. An empty dir opens an in-memory
// store, which tests use.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{})
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	seq, err := db.GetSequence([]byte(movieSequenceKey), 64)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("movie sequence: %w", err)
	}
	return &Store{db: db, seq: seq}, nil
}

// Close releases the sequence lease and closes the database.
func (s *Store) Close() error {
	return errors.Join(s.seq.Release(), s.db.Close())
}

// CreateUser stores a user; email and username must both be unused
// (compared case-insensitively).
func (s *Store) CreateUser(_ context.Context, u domain.User) error {
	data, err := json.Marshal(userRecord{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	})
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	emailKey := []byte(userEmailKeyPrefix + normalize(u.Email))
	nameKey := []byte(userNameKeyPrefix + normalize(u.Username))

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range [][]byte{emailKey, nameKey} {
			_, err := txn.Get(key)
			if err == nil {
				return ErrConflict
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("check user index: %w", err)
			}
		}
		if err := txn.Set([]byte(userKeyPrefix+u.ID), data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		if err := txn.Set(emailKey, []byte(u.ID)); err != nil {
			return fmt.Errorf("set email index: %w", err)
		}
		return txn.Set(nameKey, []byte(u.ID))
	})
	if errors.Is(err, badger.ErrConflict) {
		return ErrConflict
	}
	return err
}

// UserByID returns ErrNotFound for unknown ids.
func (s *Store) UserByID(_ context.Context, id string) (domain.User, error) {
	var u domain.User
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		u, err = getUser(txn, id)
		return err
	})
	return u, err
}

// UserByEmail looks a user up through the email index.
func (s *Store) UserByEmail(_ context.Context, email string) (domain.User, error) {
	var u domain.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userEmailKeyPrefix + normalize(email)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get email index: %w", err)
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		u, err = getUser(txn, string(id))
		return err
	})
	return u, err
}

func getUser(txn *badger.Txn, id string) (domain.User, error) {
	item, err := txn.Get([]byte(userKeyPrefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}

	var rec userRecord
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return domain.User{}, fmt.Errorf("decode user: %w", err)
	}
	return domain.User{
		ID:           rec.ID,
		Username:     rec.Username,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
	}, nil
}

// CreateMovie stores a movie and appends it to the listing order.
func (s *Store) CreateMovie(_ context.Context, m domain.Movie) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal movie: %w", err)
	}
	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("next movie sequence: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(movieKeyPrefix + m.ID)
		if _, err := txn.Get(key); err == nil {
			return ErrConflict
		}
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set movie: %w", err)
		}
		return txn.Set(orderKey(n), []byte(m.ID))
	})
}

// Movie returns ErrNotFound for unknown ids.
func (s *Store) Movie(_ context.Context, id string) (domain.Movie, error) {
	var m domain.Movie
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		m, err = getMovie(txn, id)
		return err
	})
	return m, err
}

// ListMovies returns every movie in the order it was added.
func (s *Store) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	movies := make([]domain.Movie, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(movieOrderKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			m, err := getMovie(txn, string(id))
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			movies = append(movies, m)
		}
		return nil
	})
	return movies, err
}

func getMovie(txn *badger.Txn, id string) (domain.Movie, error) {
	var m domain.Movie
	item, err := txn.Get([]byte(movieKeyPrefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return m, ErrNotFound
	}
	if err != nil {
		return m, fmt.Errorf("get movie: %w", err)
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &m)
	})
	return m, err
}

// orderKey zero-pads the sequence so keys sort numerically.
func orderKey(n uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", movieOrderKeyPrefix, n))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// badgerLogger sends badger's own log lines through zerolog.
type badgerLogger struct{}

func (badgerLogger) Errorf(f string, v ...interface{}) {
	logging.Error().Str("component", "badger").Msgf(strings.TrimSpace(f), v...)
}

func (badgerLogger) Warningf(f string, v ...interface{}) {
	logging.Warn().Str("component", "badger").Msgf(strings.TrimSpace(f), v...)
}

func (badgerLogger) Infof(f string, v ...interface{}) {
	logging.Debug().Str("component", "badger").Msgf(strings.TrimSpace(f), v...)
}

func (badgerLogger) Debugf(f string, v ...interface{}) {
	logging.Debug().Str("component", "badger").Msgf(strings.TrimSpace(f), v...)
}
