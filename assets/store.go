package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yunanda/portfolio-backend/errs"
)

// Store manages the create/replace/delete lifecycle of locally stored
// binary assets (images, PDFs) owned by an entity field. Paths that
// parse as absolute URLs are treated as weak references to externally
// hosted files and are never deleted.
type Store struct {
	baseDir string
	logger  zerolog.Logger
}

// File is one incoming upload for a batch store.
type File struct {
	Name   string
	Reader io.Reader
}

// NewStore creates a filesystem-backed asset store rooted at baseDir.
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	logger := log.With().Str("component", "assetStore").Logger()

	return &Store{baseDir: baseDir, logger: logger}, nil
}

// BaseDir returns the directory the store serves assets from.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// IsExternalURL reports whether path references an externally hosted
// asset. Anything that parses as an absolute URL with a scheme and
// host is a weak reference: the owning entity never deletes it.
// Every entity/field combination goes through this one check.
func IsExternalURL(assetPath string) bool {
	if assetPath == "" {
		return false
	}
	u, err := url.Parse(assetPath)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Save persists the upload under a logical namespace (e.g. "blogs",
// "avatars", "projects/gallery") and returns the stored path. The
// stored name is randomized; only the original extension survives.
func (s *Store) Save(ctx context.Context, namespace, filename string, reader io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	storedPath := path.Join(namespace, uuid.New().String()+ext)

	filePath, err := s.localPath(storedPath)
	if err != nil {
		return "", errs.NewStorageWriteError(namespace, err)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", errs.NewStorageWriteError(namespace, err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return "", errs.NewStorageWriteError(namespace, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		// A half-written file is useless; best-effort cleanup.
		os.Remove(filePath)
		return "", errs.NewStorageWriteError(namespace, err)
	}

	return storedPath, nil
}

// Replace stores the new upload first and only then deletes the old
// asset. Old-file delete failures are logged, never fatal: the primary
// write must not be blocked by a stale file. Callers with no new file
// must leave the existing field untouched instead of calling Replace.
func (s *Store) Replace(ctx context.Context, oldPath, namespace, filename string, reader io.Reader) (string, error) {
	newPath, err := s.Save(ctx, namespace, filename, reader)
	if err != nil {
		return "", err
	}

	s.Release(ctx, oldPath)
	return newPath, nil
}

// ReplaceAll swaps an entire gallery: the old set is released first
// (mirroring how a full re-upload replaces all slots), then each new
// file is stored. On a partial failure the already-stored new files
// are kept and the error is returned with whatever succeeded; the
// caller decides whether to abort the enclosing entity write.
func (s *Store) ReplaceAll(ctx context.Context, oldPaths []string, namespace string, files []File) ([]string, error) {
	for _, old := range oldPaths {
		s.Release(ctx, old)
	}

	stored := make([]string, 0, len(files))
	for _, f := range files {
		p, err := s.Save(ctx, namespace, f.Name, f.Reader)
		if err != nil {
			return stored, err
		}
		stored = append(stored, p)
	}
	return stored, nil
}

// Release deletes the asset if present and locally owned. External
// URLs and empty paths are no-ops. Delete failures are logged and
// swallowed; an orphaned file is preferable to a failed user-visible
// operation.
func (s *Store) Release(ctx context.Context, assetPath string) {
	if assetPath == "" || IsExternalURL(assetPath) {
		return
	}

	filePath, err := s.localPath(assetPath)
	if err != nil {
		s.logger.Warn().Str("path", assetPath).Err(err).Msg("Refusing to delete asset outside base directory")
		return
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		s.logger.Error().Err(errs.NewStorageDeleteError(assetPath, err)).Msg("Failed to delete asset, leaving orphan")
	}
}

// ReleaseAll releases every path in order.
func (s *Store) ReleaseAll(ctx context.Context, assetPaths []string) {
	for _, p := range assetPaths {
		s.Release(ctx, p)
	}
}

// Exists reports whether a locally stored asset is present on disk.
// Always false for external URLs.
func (s *Store) Exists(assetPath string) bool {
	if assetPath == "" || IsExternalURL(assetPath) {
		return false
	}
	filePath, err := s.localPath(assetPath)
	if err != nil {
		return false
	}
	_, err = os.Stat(filePath)
	return err == nil
}

// Open opens a stored asset for streaming. Returns ErrAssetNotFound
// when the file is missing on disk.
func (s *Store) Open(assetPath string) (*os.File, error) {
	filePath, err := s.localPath(assetPath)
	if err != nil {
		return nil, errs.NewAssetNotFoundError(assetPath)
	}

	file, err := os.Open(filePath)
	if os.IsNotExist(err) {
		return nil, errs.NewAssetNotFoundError(assetPath)
	} else if err != nil {
		return nil, fmt.Errorf("failed to open asset: %w", err)
	}

	return file, nil
}

// localPath resolves a stored path against the base directory and
// rejects anything that would escape it.
func (s *Store) localPath(assetPath string) (string, error) {
	cleaned := path.Clean("/" + assetPath)[1:]
	if cleaned == "" || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid asset path %q", assetPath)
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(cleaned)), nil
}
