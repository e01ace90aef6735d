package storage

import (
	"context"
	"fmt"
	"strings"
)

const gcsScheme = "gs://"

// Target is a parsed output destination
type Target struct {
	// Bucket is set for gs:// destinations
	Bucket string
	// Path is the local directory or the object prefix inside Bucket
	Path string
}

// ParseTarget accepts a local directory or gs://bucket[/prefix]
func ParseTarget(dest string) (Target, error) {
	if !strings.HasPrefix(dest, gcsScheme) {
		return Target{Path: dest}, nil
	}

	rest := strings.TrimPrefix(dest, gcsScheme)
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Target{}, fmt.Errorf("missing bucket in %q", dest)
	}
	return Target{Bucket: bucket, Path: strings.Trim(prefix, "/")}, nil
}

// Open returns the store for an output destination
func Open(ctx context.Context, dest string) (Store, error) {
	target, err := ParseTarget(dest)
	if err != nil {
		return nil, err
	}

	if target.Bucket != "" {
		gcs, err := NewGCSStore(ctx, target.Bucket, target.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS store: %w", err)
		}
		return gcs, nil
	}

	local, err := NewLocalStore(target.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local store: %w", err)
	}
	return local, nil
}
