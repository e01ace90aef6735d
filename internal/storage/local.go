package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore writes files under a base directory
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates the base directory if needed
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		baseDir = "."
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Close is a no-op for local storage
func (l *LocalStore) Close() error {
	return nil
}

func (l *LocalStore) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full := l.Location(filePath)
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(full, fileData, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", full, err)
	}
	return nil
}

func (l *LocalStore) GetFile(_ context.Context, filePath string) ([]byte, error) {
	data, err := os.ReadFile(l.Location(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

func (l *LocalStore) ListReports(ctx context.Context, limit int) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(l.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(l.baseDir, p)
		if relErr == nil {
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", l.baseDir, err)
	}
	return newestFirst(paths, limit), nil
}

func (l *LocalStore) Location(filePath string) string {
	return filepath.Join(l.baseDir, filepath.FromSlash(filePath))
}
