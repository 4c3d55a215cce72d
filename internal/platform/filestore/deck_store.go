package filestore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/murermader/flashcards/internal/domain"
	"github.com/murermader/flashcards/internal/store"
)

// deckEnvelope is the on-disk record format for a deck. The explicit
// version field replaces the legacy whole-object-graph serialization and
// lets the format evolve safely.
type deckEnvelope struct {
	Version int          `json:"version"`
	Deck    *domain.Deck `json:"deck"`
}

// ListDeckNames implements store.DeckStore. It returns the deck file stems
// in the storage root, skipping the users file. A missing or unreadable
// root is reported as an empty list, matching the "nothing there yet"
// semantics a fresh installation needs.
func (s *FileStore) ListDeckNames() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		s.logger.Debug("storage root not readable, listing no decks",
			slog.String("root", s.root),
			slog.String("error", err.Error()))
		return []string{}, nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if name == usersFileName || !strings.HasSuffix(strings.ToLower(name), deckFileExt) {
			continue
		}

		names = append(names, name[:len(name)-len(deckFileExt)])
	}

	return names, nil
}

// LoadDeck implements store.DeckStore.
//
// When the file exists but cannot be decoded, an empty placeholder deck
// with the requested name and no owner is returned together with the
// ErrCorrupt-based error. The placeholder keeps a UI functional; the error
// makes sure the failure is never swallowed.
func (s *FileStore) LoadDeck(name string) (*domain.Deck, error) {
	if !validDeckName(name) {
		return nil, store.NewStoreError("deck", "load", name, store.ErrInvalidDeck)
	}

	data, err := os.ReadFile(s.deckPath(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, store.NewStoreError("deck", "load", name, store.ErrDeckNotFound)
		}
		return nil, store.NewStoreError("deck", "load", name, mapFSError(err))
	}

	var envelope deckEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		s.logger.Warn("deck file is not decodable, returning placeholder",
			slog.String("deck", name),
			slog.String("error", err.Error()))
		return placeholderDeck(name), store.NewStoreError("deck", "load", name,
			errors.Join(store.ErrCorrupt, err))
	}

	if envelope.Version != formatVersion || envelope.Deck == nil {
		s.logger.Warn("deck file has unexpected format version",
			slog.String("deck", name),
			slog.Int("version", envelope.Version))
		return placeholderDeck(name), store.NewStoreError("deck", "load", name, store.ErrCorrupt)
	}

	return envelope.Deck, nil
}

// SaveDeck implements store.DeckStore. A deck whose name is empty or not a
// plain file stem (path separators, dot components) is refused outright;
// nothing is written. Every write lands directly inside the storage root.
func (s *FileStore) SaveDeck(deck *domain.Deck) error {
	if deck == nil || !validDeckName(deck.Name) {
		return store.NewStoreError("deck", "save", "unusable deck name", store.ErrInvalidDeck)
	}

	envelope := deckEnvelope{
		Version: formatVersion,
		Deck:    deck,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return store.NewStoreError("deck", "save", deck.Name, err)
	}

	if err := writeFileAtomic(s.deckPath(deck.Name), data); err != nil {
		return store.NewStoreError("deck", "save", deck.Name, err)
	}

	s.logger.Info("deck saved",
		slog.String("deck", deck.Name),
		slog.String("owner", deck.Owner),
		slog.Int("cards", deck.Len()))
	return nil
}

// DeleteDeck implements store.DeckStore. The legacy behavior of logging a
// failed delete and carrying on is gone: absence, missing write permission,
// and any other failure all propagate to the caller.
func (s *FileStore) DeleteDeck(name string) error {
	if !validDeckName(name) {
		return store.NewStoreError("deck", "delete", name, store.ErrInvalidDeck)
	}

	path := s.deckPath(name)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store.NewStoreError("deck", "delete", name, store.ErrDeckNotFound)
		}
		return store.NewStoreError("deck", "delete", name, mapFSError(err))
	}

	if info.Mode().Perm()&0o200 == 0 {
		return store.NewStoreError("deck", "delete", name, store.ErrPermission)
	}

	if err := os.Remove(path); err != nil {
		return store.NewStoreError("deck", "delete", name, mapFSError(err))
	}

	s.logger.Info("deck deleted", slog.String("deck", name))
	return nil
}

// placeholderDeck synthesizes the empty stand-in deck returned alongside
// corruption errors.
func placeholderDeck(name string) *domain.Deck {
	return &domain.Deck{
		Name:  name,
		Owner: "",
		Cards: []domain.Flashcard{},
	}
}
