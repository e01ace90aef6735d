package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"ecoreport/internal/logger"
)

// GCSStore writes files to a Google Cloud Storage bucket under a prefix
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
	logger *logger.Logger
}

// NewGCSStore creates a client using application default credentials
func NewGCSStore(ctx context.Context, bucket, prefix string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStore{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger.Component("storage"),
	}, nil
}

// Close closes the GCS client
func (g *GCSStore) Close() error {
	return g.client.Close()
}

func (g *GCSStore) object(filePath string) string {
	return path.Join(g.prefix, filePath)
}

func (g *GCSStore) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	objectPath := g.object(filePath)
	g.logger.Debug("Storing file", map[string]interface{}{"bucket": g.bucket, "object": objectPath})

	writer := g.client.Bucket(g.bucket).Object(objectPath).NewWriter(ctx)
	writer.ContentType = GetContentType(filePath)
	writer.CacheControl = "private, max-age=0"
	writer.Metadata = map[string]string{
		"generated-at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := writer.Write(fileData); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write file to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}
	return nil
}

func (g *GCSStore) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	reader, err := g.client.Bucket(g.bucket).Object(g.object(filePath)).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for file %s: %w", filePath, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

func (g *GCSStore) ListReports(ctx context.Context, limit int) ([]string, error) {
	query := &storage.Query{}
	if g.prefix != "" {
		query.Prefix = g.prefix + "/"
	}

	var paths []string
	it := g.client.Bucket(g.bucket).Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		paths = append(paths, attrs.Name[len(query.Prefix):])
	}
	return newestFirst(paths, limit), nil
}

func (g *GCSStore) Location(filePath string) string {
	return "gs://" + g.bucket + "/" + g.object(filePath)
}
