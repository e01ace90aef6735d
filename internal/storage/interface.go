package storage

import (
	"context"
)

// Store persists rendered documents and chart images
type Store interface {
	// Close releases the underlying client
	Close() error

	// StoreFile writes data at a slash-separated path relative to the store root
	StoreFile(ctx context.Context, filePath string, fileData []byte) error

	// GetFile reads back a stored file
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListReports lists stored PDF reports, newest first
	ListReports(ctx context.Context, limit int) ([]string, error)

	// Location describes where a path ends up, for logs and CLI output
	Location(filePath string) string
}
