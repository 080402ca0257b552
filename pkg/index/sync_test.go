package index

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/boardman/internal/logger"
	"github.com/glorpus-work/boardman/pkg/download"
	"github.com/glorpus-work/boardman/pkg/fsutil"
	"github.com/glorpus-work/boardman/pkg/index/mocks"
	"github.com/glorpus-work/boardman/pkg/progress"
	"github.com/glorpus-work/boardman/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const defaultSourceURL = "https://downloads.example.com/package_index.json"

// fetchStub serves canned download results keyed by source URL. Successful
// fetches write their content into the requested directory the way the real
// download manager does.
func fetchStub(t *testing.T, contents map[string]string, failures map[string]error) func(context.Context, download.Item, download.Options) (string, error) {
	t.Helper()
	return func(_ context.Context, item download.Item, opts download.Options) (string, error) {
		u := item.URL.String()
		if err, ok := failures[u]; ok {
			return "", err
		}
		content, ok := contents[u]
		if !ok {
			t.Fatalf("unexpected fetch of %s", u)
		}
		path := filepath.Join(opts.Dir, item.Filename)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", err
		}
		return path, nil
	}
}

func newTestSyncer(t *testing.T, urls []string, hooks progress.Hooks) (*Syncer, store.Layout, *mocks.MockDownloader, *mocks.MockSignatureChecker) {
	t.Helper()
	ctrl := gomock.NewController(t)
	layout := store.New(t.TempDir())
	dl := mocks.NewMockDownloader(ctrl)
	checker := mocks.NewMockSignatureChecker(ctrl)
	return NewSyncer(layout, dl, checker, defaultIndexName, urls, hooks), layout, dl, checker
}

func TestUpdateIndexKeepsVerifiedPair(t *testing.T) {
	s, layout, dl, checker := newTestSyncer(t, []string{defaultSourceURL}, progress.Hooks{})

	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fetchStub(t, map[string]string{
		defaultSourceURL:          `{"packages":[]}`,
		defaultSourceURL + ".sig": "signature",
	}, nil)).Times(2)
	checker.EXPECT().
		Verify(layout.IndexFile("package_index.json"), layout.IndexFile("package_index.json.sig")).
		Return(true, nil)

	kept, err := s.UpdateIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"package_index.json", "package_index.json.sig"}, kept)

	data, err := os.ReadFile(layout.IndexFile("package_index.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"packages":[]}`, string(data))
	assert.True(t, fsutil.FileExists(layout.IndexFile("package_index.json.sig")))
}

func TestUpdateIndexReplacesExistingFile(t *testing.T) {
	s, layout, dl, checker := newTestSyncer(t, []string{defaultSourceURL}, progress.Hooks{})

	require.NoError(t, fsutil.EnsureDir(layout.IndexDir()))
	require.NoError(t, os.WriteFile(layout.IndexFile("package_index.json"), []byte("old"), 0o644))

	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fetchStub(t, map[string]string{
		defaultSourceURL:          "new",
		defaultSourceURL + ".sig": "signature",
	}, nil)).Times(2)
	checker.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(true, nil)

	_, err := s.UpdateIndex(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(layout.IndexFile("package_index.json"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestUpdateIndexDiscardsUnverifiedSource(t *testing.T) {
	var logBuf bytes.Buffer
	logger.SetTestOutput(&logBuf)
	defer logger.UnsetTestOutput()

	s, layout, dl, checker := newTestSyncer(t, []string{defaultSourceURL}, progress.Hooks{})

	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fetchStub(t, map[string]string{
		defaultSourceURL:          `{"packages":[]}`,
		defaultSourceURL + ".sig": "bad signature",
	}, nil)).Times(2)
	checker.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(false, nil)

	kept, err := s.UpdateIndex(context.Background())
	require.NoError(t, err)
	assert.Empty(t, kept)

	assert.False(t, fsutil.FileExists(layout.IndexFile("package_index.json")))
	assert.False(t, fsutil.FileExists(layout.IndexFile("package_index.json.sig")))
	assert.Contains(t, logBuf.String(), defaultSourceURL)
}

func TestUpdateIndexDiscardsOnSignatureDownloadFailure(t *testing.T) {
	s, layout, dl, _ := newTestSyncer(t, []string{defaultSourceURL}, progress.Hooks{})

	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fetchStub(t,
		map[string]string{defaultSourceURL: `{"packages":[]}`},
		map[string]error{defaultSourceURL + ".sig": errors.New("connection reset")},
	)).Times(2)

	kept, err := s.UpdateIndex(context.Background())
	require.NoError(t, err)
	assert.Empty(t, kept)

	assert.False(t, fsutil.FileExists(layout.IndexFile("package_index.json")))
	assert.False(t, fsutil.FileExists(layout.IndexFile("package_index.json.sig")))
}

func TestUpdateIndexSkipsFailingSourceAndContinues(t *testing.T) {
	var logBuf bytes.Buffer
	logger.SetTestOutput(&logBuf)
	defer logger.UnsetTestOutput()

	extraURL := "https://boards.example.com/package_extra_index.json"
	s, layout, dl, checker := newTestSyncer(t, []string{defaultSourceURL, extraURL}, progress.Hooks{})

	// A failed source loses its previously synced files to stale cleanup.
	require.NoError(t, fsutil.EnsureDir(layout.IndexDir()))
	require.NoError(t, os.WriteFile(layout.IndexFile("package_extra_index.json"), []byte("old"), 0o644))

	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fetchStub(t,
		map[string]string{
			defaultSourceURL:          `{"packages":[]}`,
			defaultSourceURL + ".sig": "signature",
		},
		map[string]error{extraURL: errors.New("503")},
	)).Times(3)
	checker.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(true, nil)

	kept, err := s.UpdateIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"package_index.json", "package_index.json.sig"}, kept)

	assert.Contains(t, logBuf.String(), extraURL)
	assert.False(t, fsutil.FileExists(layout.IndexFile("package_extra_index.json")))
	assert.True(t, fsutil.FileExists(layout.IndexFile("package_index.json")))
}

func TestUpdateIndexDefaultSurvivesFailure(t *testing.T) {
	s, layout, dl, _ := newTestSyncer(t, []string{defaultSourceURL}, progress.Hooks{})

	require.NoError(t, fsutil.EnsureDir(layout.IndexDir()))
	require.NoError(t, os.WriteFile(layout.IndexFile("package_index.json"), []byte("previous"), 0o644))

	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fetchStub(t,
		nil,
		map[string]error{defaultSourceURL: errors.New("timeout")},
	)).Times(1)

	kept, err := s.UpdateIndex(context.Background())
	require.NoError(t, err)
	assert.Empty(t, kept)

	data, err := os.ReadFile(layout.IndexFile("package_index.json"))
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestUpdateIndexStaleCleanup(t *testing.T) {
	s, layout, dl, checker := newTestSyncer(t, []string{defaultSourceURL}, progress.Hooks{})

	require.NoError(t, fsutil.EnsureDir(layout.IndexDir()))
	require.NoError(t, os.WriteFile(layout.IndexFile("package_gone_index.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(layout.IndexFile("package_gone_index.json.sig"), []byte("sig"), 0o644))

	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fetchStub(t, map[string]string{
		defaultSourceURL:          `{"packages":[]}`,
		defaultSourceURL + ".sig": "signature",
	}, nil)).Times(2)
	checker.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(true, nil)

	_, err := s.UpdateIndex(context.Background())
	require.NoError(t, err)

	assert.False(t, fsutil.FileExists(layout.IndexFile("package_gone_index.json")))
	assert.False(t, fsutil.FileExists(layout.IndexFile("package_gone_index.json.sig")))
	assert.True(t, fsutil.FileExists(layout.IndexFile("package_index.json")))
}

func TestUpdateIndexDeduplicatesSources(t *testing.T) {
	s, _, dl, checker := newTestSyncer(t,
		[]string{defaultSourceURL, defaultSourceURL, "  " + defaultSourceURL + "  ", ""},
		progress.Hooks{})

	calls := 0
	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, item download.Item, opts download.Options) (string, error) {
			calls++
			return fetchStub(t, map[string]string{
				defaultSourceURL:          `{"packages":[]}`,
				defaultSourceURL + ".sig": "signature",
			}, nil)(ctx, item, opts)
		}).Times(2)
	checker.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(true, nil)

	kept, err := s.UpdateIndex(context.Background())
	require.NoError(t, err)
	assert.Len(t, kept, 2)
	assert.Equal(t, 2, calls)
}

func TestUpdateIndexCancelledBeforeStart(t *testing.T) {
	s, _, _, _ := newTestSyncer(t, []string{defaultSourceURL}, progress.Hooks{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	kept, err := s.UpdateIndex(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, kept)
}

func TestUpdateIndexCancellationSkipsStaleCleanup(t *testing.T) {
	extraURL := "https://boards.example.com/package_extra_index.json"
	s, layout, dl, checker := newTestSyncer(t, []string{defaultSourceURL, extraURL}, progress.Hooks{})

	require.NoError(t, fsutil.EnsureDir(layout.IndexDir()))
	require.NoError(t, os.WriteFile(layout.IndexFile("package_stale_index.json"), []byte("{}"), 0o644))

	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fetchStub(t,
		map[string]string{
			defaultSourceURL:          `{"packages":[]}`,
			defaultSourceURL + ".sig": "signature",
		},
		map[string]error{extraURL: context.Canceled},
	)).Times(3)
	checker.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(true, nil)

	kept, err := s.UpdateIndex(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"package_index.json", "package_index.json.sig"}, kept)

	// No cleanup ran, the stale file survives until a full pass.
	assert.True(t, fsutil.FileExists(layout.IndexFile("package_stale_index.json")))
}

func TestUpdateIndexReportsProgress(t *testing.T) {
	extraURL := "https://boards.example.com/package_extra_index.json"

	var snapshots []progress.Snapshot
	hooks := progress.Hooks{OnProgress: func(s progress.Snapshot) {
		snapshots = append(snapshots, s)
	}}

	s, _, dl, checker := newTestSyncer(t, []string{defaultSourceURL, extraURL}, hooks)

	dl.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fetchStub(t, map[string]string{
		defaultSourceURL:          `{"packages":[]}`,
		defaultSourceURL + ".sig": "signature",
		extraURL:                  `{"packages":[]}`,
		extraURL + ".sig":         "signature",
	}, nil)).Times(4)
	checker.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)

	_, err := s.UpdateIndex(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, snapshots)
	last := snapshots[len(snapshots)-1]
	assert.Equal(t, 2, last.Completed)
	assert.Equal(t, 2, last.Total)
	assert.InDelta(t, 1.0, last.Fraction, 0.001)

	var statuses []string
	for _, snap := range snapshots {
		statuses = append(statuses, snap.Status)
	}
	assert.Contains(t, statuses, "Updating index: "+defaultSourceURL)
	assert.Contains(t, statuses, "Updating index: "+extraURL)
}
