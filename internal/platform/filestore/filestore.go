package filestore

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/murermader/flashcards/internal/store"
)

const (
	// deckFileExt is the extension of every deck file in the storage root.
	deckFileExt = ".txt"

	// usersFileName is the single file holding the serialized user list.
	usersFileName = "Users.txt"

	// logDirName is the subdirectory for the application log.
	logDirName = "Log"

	// formatVersion is the current on-disk envelope version. Files carrying
	// any other version are treated as corrupt.
	formatVersion = 1
)

// FileStore persists decks and users as files under a configured root
// directory. The root is supplied by the caller; resolving a
// platform-specific location is the launcher's job, never this package's.
type FileStore struct {
	root   string
	logger *slog.Logger
}

// Compile-time interface checks.
var (
	_ store.DeckStore   = (*FileStore)(nil)
	_ store.UserStore   = (*FileStore)(nil)
	_ store.Directories = (*FileStore)(nil)
)

// New creates a FileStore rooted at dir. The directory does not need to
// exist yet; call EnsureDirectories before the first write.
func New(dir string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &FileStore{
		root:   dir,
		logger: logger.With(slog.String("component", "filestore")),
	}
}

// Root returns the storage root directory.
func (s *FileStore) Root() string {
	return s.root
}

// LogDir returns the directory for the application log.
func (s *FileStore) LogDir() string {
	return filepath.Join(s.root, logDirName)
}

// EnsureDirectories implements store.Directories. It creates the storage
// root and the log subdirectory. Existing directories are not an error.
func (s *FileStore) EnsureDirectories() error {
	if err := os.MkdirAll(s.LogDir(), 0o755); err != nil {
		return store.NewStoreError("directory", "create", s.LogDir(), mapFSError(err))
	}

	s.logger.Debug("storage directories ready", slog.String("root", s.root))
	return nil
}

// deckPath returns the backing file path for a deck name.
func (s *FileStore) deckPath(name string) string {
	return filepath.Join(s.root, name+deckFileExt)
}

// validDeckName reports whether name can serve as a file stem directly
// inside the storage root. Path separators and dot components are rejected
// so that no deck name can address a file outside the root.
func validDeckName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// usersPath returns the path of the users file.
func (s *FileStore) usersPath() string {
	return filepath.Join(s.root, usersFileName)
}

// mapFSError translates a raw filesystem error into the store taxonomy.
func mapFSError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrPermission):
		return store.ErrPermission
	case errors.Is(err, fs.ErrNotExist):
		return store.ErrNotFound
	default:
		return errors.Join(store.ErrIO, err)
	}
}

// writeFileAtomic writes data to path by creating a temporary file in the
// same directory and renaming it over the destination. The rename is atomic
// on POSIX filesystems, so readers either see the old content or the new,
// never a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return mapFSError(err)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(tmpName)
		if werr != nil {
			return mapFSError(werr)
		}
		return mapFSError(cerr)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return mapFSError(err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return mapFSError(err)
	}

	return nil
}
