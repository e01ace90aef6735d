package mocks

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ecoreport/internal/models"
)

//go:embed data/*.json
var dataFS embed.FS

// MockService loads snapshot fixtures for tests, the CLI and local runs
type MockService struct {
	fsys fs.FS
}

// NewMockService creates a mock service reading mocksDir/data, or the
// embedded fixtures when mocksDir is empty.
func NewMockService(mocksDir string) *MockService {
	if mocksDir == "" {
		sub, _ := fs.Sub(dataFS, "data")
		return &MockService{fsys: sub}
	}
	return &MockService{fsys: os.DirFS(filepath.Join(mocksDir, "data"))}
}

// LoadSnapshotJSON returns the raw fixture, e.g. LoadSnapshotJSON("sample")
func (m *MockService) LoadSnapshotJSON(name string) ([]byte, error) {
	content, err := fs.ReadFile(m.fsys, strings.TrimSuffix(name, ".json")+".json")
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot fixture %s: %w", name, err)
	}
	return content, nil
}

// LoadSnapshot decodes and normalizes a fixture
func (m *MockService) LoadSnapshot(name string) (models.MetricsSnapshot, error) {
	content, err := m.LoadSnapshotJSON(name)
	if err != nil {
		return models.MetricsSnapshot{}, err
	}
	s, err := models.DecodeSnapshot(content)
	if err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("failed to unmarshal snapshot fixture %s: %w", name, err)
	}
	return s, nil
}

// Names lists the available fixtures without extension
func (m *MockService) Names() ([]string, error) {
	matches, err := fs.Glob(m.fsys, "*.json")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, strings.TrimSuffix(match, ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// SampleSnapshot is the embedded "sample" fixture
func SampleSnapshot() models.MetricsSnapshot {
	s, err := NewMockService("").LoadSnapshot("sample")
	if err != nil {
		panic(err)
	}
	return s
}
