package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name    string
		dest    string
		want    Target
		wantErr bool
	}{
		{name: "local directory", dest: "out/reports", want: Target{Path: "out/reports"}},
		{name: "bucket only", dest: "gs://reports-bucket", want: Target{Bucket: "reports-bucket"}},
		{name: "bucket with prefix", dest: "gs://reports-bucket/acme/2026/", want: Target{Bucket: "reports-bucket", Path: "acme/2026"}},
		{name: "missing bucket", dest: "gs:///prefix", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTarget(tt.dest)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenLocal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	store, err := Open(context.Background(), dir)
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &LocalStore{}, store)
	assert.Equal(t, filepath.Join(dir, "a", "b.pdf"), store.Location("a/b.pdf"))
}

func TestOpenRejectsBadBucket(t *testing.T) {
	_, err := Open(context.Background(), "gs://")
	assert.Error(t, err)
}
