package store

import (
	"github.com/murermader/flashcards/internal/domain"
)

// DeckStore defines the interface for deck persistence.
//
// Every operation re-reads or rewrites the backing files; no in-memory
// cache is authoritative. This trades performance for simplicity, which is
// acceptable at local single-user scale.
type DeckStore interface {
	// ListDeckNames enumerates the deck files in the storage root and
	// returns their names with the file extension stripped. An absent or
	// unreadable root directory yields an empty slice, not an error.
	ListDeckNames() ([]string, error)

	// LoadDeck reads the deck with the given name.
	// Returns ErrDeckNotFound if no backing file exists.
	// Returns ErrCorrupt if the file exists but cannot be decoded; in that
	// case an empty placeholder deck with the requested name and no owner
	// is returned alongside the error so a UI can keep rendering, but the
	// caller must still treat the load as failed.
	LoadDeck(name string) (*domain.Deck, error)

	// SaveDeck writes or overwrites the deck's backing file atomically.
	// Returns ErrInvalidDeck, writing nothing, if the deck's name is empty
	// or is not a plain file stem (path separators, "." or ".."): a deck
	// file must always land directly inside the storage root. The same name
	// rule applies to LoadDeck and DeleteDeck.
	SaveDeck(deck *domain.Deck) error

	// DeleteDeck removes the deck's backing file.
	// Returns ErrDeckNotFound if the file does not exist and ErrPermission
	// if it exists but is not writable. Failures always propagate; there
	// is no silent success.
	DeleteDeck(name string) error
}

// UserStore defines the interface for user-list persistence. All users
// live in a single file.
type UserStore interface {
	// LoadUsers reads the full user list. An absent file yields an empty
	// slice; a file that exists but cannot be decoded yields ErrCorrupt.
	LoadUsers() ([]*domain.User, error)

	// SaveUsers atomically overwrites the users file. Saving an empty
	// slice is a no-op that leaves any existing file untouched; callers
	// that want to wipe the list must use ClearUsers.
	SaveUsers(users []*domain.User) error

	// ClearUsers removes the users file. Clearing an already-absent file
	// is not an error.
	ClearUsers() error
}

// Directories is implemented by stores that manage their own directory
// layout on disk.
type Directories interface {
	// EnsureDirectories idempotently creates the storage root and log
	// directories. It fails only if creation is attempted and denied,
	// never because a directory already exists.
	EnsureDirectories() error
}
