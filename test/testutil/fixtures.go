package testutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/boardman/pkg/archive"
	"github.com/stretchr/testify/require"
)

// BuildArchive writes a gzip-compressed tarball to outPath. The files keys
// are slash-separated entry paths relative to the archive root, the values
// are file contents. Published contribution archives wrap their payload in a
// single top-level directory, so callers normally prefix every key with one
// ("avr-1.8.0/boards.txt"). Entries ending in .sh are marked executable so
// lifecycle scripts survive extraction as runnable files.
func BuildArchive(t *testing.T, outPath string, files map[string]string) {
	t.Helper()

	stage := t.TempDir()
	for name, content := range files {
		path := filepath.Join(stage, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		mode := os.FileMode(0o644)
		if filepath.Ext(name) == ".sh" {
			mode = 0o755
		}
		require.NoError(t, os.WriteFile(path, []byte(content), mode))
	}

	require.NoError(t, archive.NewManager().Create(context.Background(), stage, outPath))
}

// Sha256Tag returns the checksum of the file at path in the notation index
// files use for archive checksums.
func Sha256Tag(t *testing.T, path string) string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	h := sha256.New()
	_, err = io.Copy(h, f)
	require.NoError(t, err)
	return fmt.Sprintf("SHA-256:%s", hex.EncodeToString(h.Sum(nil)))
}

// FileSize returns the size in bytes of the file at path.
func FileSize(t *testing.T, path string) int64 {
	t.Helper()

	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.Size()
}
