package filestore_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murermader/flashcards/internal/domain"
	"github.com/murermader/flashcards/internal/platform/filestore"
	"github.com/murermader/flashcards/internal/store"
)

func newTestStore(t *testing.T) *filestore.FileStore {
	t.Helper()
	fs := filestore.New(t.TempDir(), nil)
	require.NoError(t, fs.EnsureDirectories())
	return fs
}

func newTestDeck(t *testing.T, name, owner string, fronts ...string) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(name, owner)
	require.NoError(t, err)
	for _, front := range fronts {
		card, err := domain.NewFlashcard(front, "back of "+front)
		require.NoError(t, err)
		require.NoError(t, deck.AddCard(*card))
	}
	return deck
}

func TestSaveLoadDeckRoundTrip(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	deck := newTestDeck(t, "Spanish", "alice", "hola", "adios")
	require.NoError(t, fs.SaveDeck(deck))

	loaded, err := fs.LoadDeck("Spanish")
	require.NoError(t, err)

	assert.Equal(t, deck.Name, loaded.Name)
	assert.Equal(t, deck.Owner, loaded.Owner)
	require.Equal(t, deck.Len(), loaded.Len())
	for i := range deck.Cards {
		assert.Equal(t, deck.Cards[i], loaded.Cards[i])
	}
}

func TestSaveDeckRefusesEmptyName(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	deck := &domain.Deck{Name: "", Owner: "alice"}
	err := fs.SaveDeck(deck)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidDeck)

	// Nothing may have been written, not even a temp file.
	entries, readErr := os.ReadDir(fs.Root())
	require.NoError(t, readErr)
	for _, entry := range entries {
		assert.Equal(t, "Log", entry.Name(), "unexpected file created: %s", entry.Name())
	}
}

func TestDeckNameCannotEscapeStorageRoot(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	names := []string{
		"../escaped",
		"..",
		".",
		"nested/deck",
		`nested\deck`,
		"../../etc/passwd",
	}

	for _, name := range names {
		err := fs.SaveDeck(&domain.Deck{Name: name, Owner: "alice"})
		assert.ErrorIs(t, err, store.ErrInvalidDeck, "SaveDeck accepted name %q", name)

		_, err = fs.LoadDeck(name)
		assert.ErrorIs(t, err, store.ErrInvalidDeck, "LoadDeck accepted name %q", name)

		err = fs.DeleteDeck(name)
		assert.ErrorIs(t, err, store.ErrInvalidDeck, "DeleteDeck accepted name %q", name)
	}

	// Nothing may have landed outside the root.
	parent := filepath.Dir(fs.Root())
	_, err := os.Stat(filepath.Join(parent, "escaped.txt"))
	assert.True(t, os.IsNotExist(err), "deck file written outside the storage root")

	// Dotted names that stay plain file stems are still fine.
	require.NoError(t, fs.SaveDeck(newTestDeck(t, "v1..draft", "alice")))
	loaded, err := fs.LoadDeck("v1..draft")
	require.NoError(t, err)
	assert.Equal(t, "v1..draft", loaded.Name)
}

func TestLoadDeckNotFound(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	_, err := fs.LoadDeck("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestLoadDeckCorruptReturnsPlaceholderAndError(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	path := filepath.Join(fs.Root(), "Broken.txt")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	deck, err := fs.LoadDeck("Broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrCorrupt)
	assert.True(t, store.IsCorruptError(err))

	// The placeholder keeps a UI going: right name, no owner, no cards.
	require.NotNil(t, deck)
	assert.Equal(t, "Broken", deck.Name)
	assert.Empty(t, deck.Owner)
	assert.Zero(t, deck.Len())
}

func TestLoadDeckUnknownVersionIsCorrupt(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	path := filepath.Join(fs.Root(), "Future.txt")
	content := `{"version": 99, "deck": {"name": "Future", "owner": "alice", "cards": []}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := fs.LoadDeck("Future")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrCorrupt)
}

func TestListDeckNames(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	require.NoError(t, fs.SaveDeck(newTestDeck(t, "Spanish", "alice", "hola")))
	require.NoError(t, fs.SaveDeck(newTestDeck(t, "French", "alice", "bonjour")))
	require.NoError(t, fs.SaveUsers([]*domain.User{{Name: "alice"}}))

	names, err := fs.ListDeckNames()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Spanish", "French"}, names)
	assert.NotContains(t, names, "Users", "the users file is not a deck")
}

func TestListDeckNamesMissingRoot(t *testing.T) {
	t.Parallel()
	fs := filestore.New(filepath.Join(t.TempDir(), "never-created"), nil)

	names, err := fs.ListDeckNames()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDeleteDeck(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	require.NoError(t, fs.SaveDeck(newTestDeck(t, "Spanish", "alice", "hola")))
	require.NoError(t, fs.DeleteDeck("Spanish"))

	_, err := fs.LoadDeck("Spanish")
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
}

func TestDeleteDeckNotFoundLeavesListingUnchanged(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	require.NoError(t, fs.SaveDeck(newTestDeck(t, "Spanish", "alice", "hola")))

	before, err := fs.ListDeckNames()
	require.NoError(t, err)

	err = fs.DeleteDeck("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrDeckNotFound)

	after, err := fs.ListDeckNames()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteDeckWithoutWritePermission(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	fs := newTestStore(t)
	require.NoError(t, fs.SaveDeck(newTestDeck(t, "Spanish", "alice", "hola")))

	path := filepath.Join(fs.Root(), "Spanish.txt")
	require.NoError(t, os.Chmod(path, 0o444))
	t.Cleanup(func() { _ = os.Chmod(path, 0o644) })

	err := fs.DeleteDeck("Spanish")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrPermission)
}

func TestSaveDeckLeavesNoTempFiles(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	require.NoError(t, fs.SaveDeck(newTestDeck(t, "Spanish", "alice", "hola")))

	entries, err := os.ReadDir(fs.Root())
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.Contains(entry.Name(), ".tmp-"),
			"temp file left behind: %s", entry.Name())
	}
}

func TestSaveDeckOverwritesExisting(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	require.NoError(t, fs.SaveDeck(newTestDeck(t, "Spanish", "alice", "hola")))
	require.NoError(t, fs.SaveDeck(newTestDeck(t, "Spanish", "alice", "hola", "adios")))

	loaded, err := fs.LoadDeck("Spanish")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
}

func TestLoadUsersAbsentFile(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	users, err := fs.LoadUsers()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSaveLoadUsersRoundTrip(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	alice, err := domain.NewUser("alice")
	require.NoError(t, err)
	require.NoError(t, alice.RecordSession(4, 90*time.Second))

	bob, err := domain.NewUser("bob")
	require.NoError(t, err)

	require.NoError(t, fs.SaveUsers([]*domain.User{alice, bob}))

	loaded, err := fs.LoadUsers()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, *alice, *loaded[0])
	assert.Equal(t, *bob, *loaded[1])
}

func TestSaveUsersEmptyListIsNoOp(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	alice, err := domain.NewUser("alice")
	require.NoError(t, err)
	require.NoError(t, fs.SaveUsers([]*domain.User{alice}))

	// Saving an empty list must not clear the existing file.
	require.NoError(t, fs.SaveUsers(nil))

	loaded, err := fs.LoadUsers()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "alice", loaded[0].Name)
}

func TestClearUsers(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	alice, err := domain.NewUser("alice")
	require.NoError(t, err)
	require.NoError(t, fs.SaveUsers([]*domain.User{alice}))

	require.NoError(t, fs.ClearUsers())

	loaded, err := fs.LoadUsers()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	// Clearing twice is fine.
	require.NoError(t, fs.ClearUsers())
}

func TestLoadUsersCorrupt(t *testing.T) {
	t.Parallel()
	fs := newTestStore(t)

	require.NoError(t, os.WriteFile(
		filepath.Join(fs.Root(), "Users.txt"), []byte("{{{"), 0o644))

	_, err := fs.LoadUsers()
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrCorrupt)
}

func TestEnsureDirectoriesIdempotent(t *testing.T) {
	t.Parallel()
	fs := filestore.New(t.TempDir(), nil)

	require.NoError(t, fs.EnsureDirectories())
	require.NoError(t, fs.EnsureDirectories())

	info, err := os.Stat(fs.LogDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
