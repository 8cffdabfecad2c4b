package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/flock"
	mio "github.com/kasuboski/seriez/pkg/io"
	"github.com/kasuboski/seriez/pkg/logger"
	"go.uber.org/zap"
)

const (
	dbDirName = "series_db"
	fileExt   = ".json"
	lockExt   = ".lock"
	tmpExt    = ".tmp"

	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644

	lockRetryDelay = 25 * time.Millisecond
)

var (
	ErrNotFound = errors.New("catalog not found")
	ErrCorrupt  = errors.New("catalog file is corrupt")

	unsafeCharsRegex = regexp.MustCompile(`[^\w\-_. ]`)
)

// SafeID converts a series name into the identifier its catalog is stored under.
// Distinct names can map to the same identifier and will share a catalog file.
func SafeID(seriesName string) string {
	safe := unsafeCharsRegex.ReplaceAllString(seriesName, "_")
	return strings.ReplaceAll(strings.ToLower(safe), " ", "_")
}

// Store persists one catalog file per series under <profile>/series_db.
// Saves are serialized by <profile>/series_db.lock.
type Store struct {
	fio        mio.FileIO
	profileDir string
	root       string
}

// NewStore creates a store rooted in profileDir. Directories are created lazily.
func NewStore(fio mio.FileIO, profileDir string) *Store {
	return &Store{
		fio:        fio,
		profileDir: profileDir,
		root:       filepath.Join(profileDir, dbDirName),
	}
}

// Root is the directory holding catalog files
func (s *Store) Root() string {
	return s.root
}

// Path returns the catalog file location for a series name
func (s *Store) Path(seriesName string) string {
	return filepath.Join(s.root, SafeID(seriesName)+fileExt)
}

// lockPath sits next to the store directory so the directory only holds catalogs
func (s *Store) lockPath() string {
	return s.root + lockExt
}

// EnsureReady creates the profile and store directories if they are missing.
// Failures are logged and returned.
func (s *Store) EnsureReady(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	for _, dir := range []string{s.profileDir, s.root} {
		if err := s.fio.MkdirAll(dir, dirPerm); err != nil {
			log.Error("failed to create directory", zap.String("path", dir), zap.Error(err))
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	return nil
}

// Save replaces the stored catalog for seriesName with series
func (s *Store) Save(ctx context.Context, seriesName string, series Series) error {
	log := logger.FromCtx(ctx, "series", seriesName)

	if err := s.EnsureReady(ctx); err != nil {
		return err
	}

	if series.Seasons == nil {
		series.Seasons = Seasons{}
	}

	b, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		log.Error("failed to encode catalog", zap.Error(err))
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	path := s.Path(seriesName)
	lock := flock.New(s.lockPath())
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err == nil && !locked {
		err = errors.New("lock not acquired")
	}
	if err != nil {
		log.Error("failed to lock catalog", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to lock catalog %s: %w", path, err)
	}
	defer lock.Unlock()

	tmp := path + tmpExt
	if err := s.fio.WriteFile(tmp, b, filePerm); err != nil {
		log.Error("failed to write catalog", zap.String("path", tmp), zap.Error(err))
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	if err := s.fio.Rename(tmp, path); err != nil {
		log.Error("failed to replace catalog", zap.String("path", path), zap.Error(err))
		if rmErr := s.fio.Remove(tmp); rmErr != nil {
			log.Debug("failed to remove temporary catalog", zap.Error(rmErr))
		}
		return fmt.Errorf("failed to replace catalog: %w", err)
	}

	log.Debugw("saved catalog", "path", path, "seasons", len(series.Seasons))
	return nil
}

// Load reads the stored catalog for seriesName. It returns ErrNotFound when no
// catalog exists and ErrCorrupt when the file can't be decoded.
func (s *Store) Load(ctx context.Context, seriesName string) (Series, error) {
	log := logger.FromCtx(ctx, "series", seriesName)
	path := s.Path(seriesName)

	b, err := s.fio.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Series{}, ErrNotFound
		}
		log.Error("failed to read catalog", zap.String("path", path), zap.Error(err))
		return Series{}, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var series Series
	if err := json.Unmarshal(b, &series); err != nil {
		log.Error("failed to decode catalog", zap.String("path", path), zap.Error(err))
		return Series{}, fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}

	if series.Seasons == nil {
		series.Seasons = Seasons{}
	}

	return series, nil
}

// ListAll lists every catalog in the store directory. Display names are derived
// from the file name and won't recover underscores from the series name.
func (s *Store) ListAll(ctx context.Context) []IndexEntry {
	log := logger.FromCtx(ctx)

	entries := []IndexEntry{}
	dirEntries, err := s.fio.ReadDir(s.root)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Error("failed to list catalogs", zap.String("path", s.root), zap.Error(err))
		}
		return entries
	}

	for _, d := range dirEntries {
		if d.IsDir() || !strings.HasSuffix(d.Name(), fileExt) {
			continue
		}

		stem := strings.TrimSuffix(d.Name(), fileExt)
		entries = append(entries, IndexEntry{
			DisplayName: strings.ReplaceAll(stem, "_", " "),
			SafeID:      stem,
			Filename:    d.Name(),
		})
	}

	return entries
}
