package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutPaths(t *testing.T) {
	l := New("/data")

	assert.Equal(t, "/data", l.Root())
	assert.Equal(t, filepath.Join("/data", "packages"), l.PackagesDir())
	assert.Equal(t, filepath.Join("/data", "staging"), l.StagingDir())
	assert.Equal(t, "/data", l.IndexDir())
	assert.Equal(t, filepath.Join("/data", "package_acme_index.json"), l.IndexFile("package_acme_index.json"))
	assert.Equal(t,
		filepath.Join("/data", "packages", "acme", "hardware", "avr", "1.8.3"),
		l.PlatformDir("acme", "avr", "1.8.3"))
	assert.Equal(t,
		filepath.Join("/data", "packages", "acme", "tools", "gcc", "7.3.0"),
		l.ToolDir("acme", "gcc", "7.3.0"))
	assert.Equal(t,
		filepath.Join("/data", "packages", "acme", "tools"),
		l.ToolsDir("acme"))
}

func TestIndexFileNameForURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "plain file",
			url:  "https://example.com/package_index.json",
			want: "package_index.json",
		},
		{
			name: "nested path",
			url:  "https://example.com/boards/v2/package_acme_index.json",
			want: "package_acme_index.json",
		},
		{
			name: "query string ignored",
			url:  "https://example.com/package_acme_index.json?token=abc",
			want: "package_acme_index.json",
		},
		{
			name:    "no filename",
			url:     "https://example.com/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IndexFileNameForURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanStaging(t *testing.T) {
	l := New(t.TempDir())
	require.NoError(t, l.EnsureDirs())

	require.NoError(t, os.WriteFile(filepath.Join(l.StagingDir(), "avr-1.8.3.tar.gz"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(l.StagingDir(), "partial"), 0o755))

	require.NoError(t, l.CleanStaging())

	entries, err := os.ReadDir(l.StagingDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCleanStagingMissingDirIsNoop(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "never-created"))
	assert.NoError(t, l.CleanStaging())
}

func TestStagingUsage(t *testing.T) {
	l := New(t.TempDir())
	require.NoError(t, l.EnsureDirs())

	require.NoError(t, os.WriteFile(filepath.Join(l.StagingDir(), "avr-1.8.3.tar.gz"), []byte("12345"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(l.StagingDir(), "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(l.StagingDir(), "nested", "tool.tar.gz"), []byte("123"), 0o644))

	used, err := l.StagingUsage()
	require.NoError(t, err)
	assert.Equal(t, int64(8), used)
}

func TestStagingUsageMissingDirIsZero(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "never-created"))
	used, err := l.StagingUsage()
	require.NoError(t, err)
	assert.Zero(t, used)
}
