package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	defer store.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	name := ReportPath("executive-summary", time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, store.StoreFile(ctx, name, []byte("%PDF-1.3")))

	data, err := store.GetFile(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))

	_, err = os.Stat(store.Location(name))
	assert.NoError(t, err)
}

func TestLocalStoreGetMissingFile(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.GetFile(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalStoreListReports(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	older := ReportPath("gri-sustainability", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	newer := ReportPath("tcfd-disclosure", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.StoreFile(ctx, older, []byte("a")))
	require.NoError(t, store.StoreFile(ctx, newer, []byte("b")))
	require.NoError(t, store.StoreFile(ctx, "charts/carbon-trend.png", []byte("c")))

	reports, err := store.ListReports(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{newer, older}, reports)

	latest, err := store.ListReports(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{newer}, latest)
}

func TestLocalStoreCancelled(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.StoreFile(ctx, "a.pdf", nil), context.Canceled)
}
