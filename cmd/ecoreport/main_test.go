package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--env-file", "", "--log-level", "error"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestTemplatesCommand(t *testing.T) {
	out, err := run(t, "", "templates")
	require.NoError(t, err)

	assert.Contains(t, out, "executive-summary")
	assert.Contains(t, out, "tcfd-disclosure")
	assert.Less(t, strings.Index(out, "executive-summary"), strings.Index(out, "technical-deep-dive"))
}

func TestTemplatesVerbose(t *testing.T) {
	out, err := run(t, "", "templates", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Carbon Emissions Trend")
}

func TestRenderSampleToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.pdf")

	out, err := run(t, "", "render", "--template", "sustainability-overview", "--sample", "sample", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderFromStdin(t *testing.T) {
	sample, err := run(t, "", "sample")
	require.NoError(t, err)

	dest := t.TempDir()
	_, err = run(t, sample, "render", "--template", "executive-summary", "--snapshot", "-", "--dest", dest)
	require.NoError(t, err)

	listed, err := run(t, "", "list", "--dest", dest)
	require.NoError(t, err)
	assert.Contains(t, listed, "executive-summary-")
	assert.Contains(t, listed, ".pdf")
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown template", []string{"render", "--template", "nope", "--sample", "sample"}, "template not found"},
		{"missing snapshot", []string{"render"}, "snapshot"},
		{"unknown fixture", []string{"render", "--sample", "does-not-exist"}, "does-not-exist"},
		{"conflicting inputs", []string{"render", "--sample", "sample", "--snapshot", "a.json"}, "snapshot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestChartCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.png")

	_, err := run(t, "", "chart", "--kind", "carbon-trend", "--sample", "sample", "--out", path, "--width", "320", "--height", "160")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	_, err = run(t, "", "chart", "--kind", "radar", "--sample", "sample")
	assert.ErrorContains(t, err, "unknown chart kind")
}

func TestSampleCommand(t *testing.T) {
	out, err := run(t, "", "sample", "--list")
	require.NoError(t, err)
	assert.Contains(t, strings.Fields(out), "sample")
	assert.Contains(t, strings.Fields(out), "empty")

	out, err = run(t, "", "sample", "--name", "sample")
	require.NoError(t, err)
	assert.Contains(t, out, "Green Leaf Bakery")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ecoreport "))
}
