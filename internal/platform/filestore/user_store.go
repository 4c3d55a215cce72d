package filestore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/murermader/flashcards/internal/domain"
	"github.com/murermader/flashcards/internal/store"
)

// usersEnvelope is the on-disk record format for the user list.
type usersEnvelope struct {
	Version int            `json:"version"`
	Users   []*domain.User `json:"users"`
}

// LoadUsers implements store.UserStore. An absent users file means no users
// yet and yields an empty slice; an existing file that cannot be decoded
// yields ErrCorrupt, and the caller decides whether to treat that as "no
// users" or to surface it.
func (s *FileStore) LoadUsers() ([]*domain.User, error) {
	data, err := os.ReadFile(s.usersPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*domain.User{}, nil
		}
		return nil, store.NewStoreError("user", "load", usersFileName, mapFSError(err))
	}

	var envelope usersEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, store.NewStoreError("user", "load", usersFileName,
			errors.Join(store.ErrCorrupt, err))
	}

	if envelope.Version != formatVersion {
		return nil, store.NewStoreError("user", "load", usersFileName, store.ErrCorrupt)
	}

	if envelope.Users == nil {
		return []*domain.User{}, nil
	}

	return envelope.Users, nil
}

// SaveUsers implements store.UserStore. Saving an empty list is a no-op by
// legacy contract; callers relying on "save empty list clears storage" must
// use ClearUsers instead.
func (s *FileStore) SaveUsers(users []*domain.User) error {
	if len(users) == 0 {
		s.logger.Debug("empty user list, skipping save")
		return nil
	}

	envelope := usersEnvelope{
		Version: formatVersion,
		Users:   users,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return store.NewStoreError("user", "save", usersFileName, err)
	}

	if err := writeFileAtomic(s.usersPath(), data); err != nil {
		return store.NewStoreError("user", "save", usersFileName, err)
	}

	s.logger.Info("users saved", slog.Int("count", len(users)))
	return nil
}

// ClearUsers implements store.UserStore. This is the explicit destructive
// counterpart to SaveUsers' empty-list no-op.
func (s *FileStore) ClearUsers() error {
	if err := os.Remove(s.usersPath()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return store.NewStoreError("user", "clear", usersFileName, mapFSError(err))
	}

	s.logger.Info("users file removed")
	return nil
}
