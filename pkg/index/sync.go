package index

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/boardman/internal/logger"
	"github.com/glorpus-work/boardman/pkg/download"
	"github.com/glorpus-work/boardman/pkg/errors"
	"github.com/glorpus-work/boardman/pkg/fsutil"
	"github.com/glorpus-work/boardman/pkg/progress"
	"github.com/glorpus-work/boardman/pkg/signature"
	"github.com/glorpus-work/boardman/pkg/store"
)

// Syncer refreshes the local index files from the configured source URLs.
// Only signature-verified index/signature pairs are kept; everything else,
// including indexes of sources that are no longer configured, is removed so
// the on-disk set always mirrors the verified sources.
type Syncer struct {
	layout           store.Layout
	dl               Downloader
	checker          SignatureChecker
	defaultIndexName string
	urls             []string
	hooks            progress.Hooks
}

// NewSyncer creates a synchronizer for the given source URLs. The file named
// defaultIndexName is never subject to stale cleanup even when its source
// failed, so a transient outage of the default source cannot wipe the main
// index.
func NewSyncer(layout store.Layout, dl Downloader, checker SignatureChecker, defaultIndexName string, urls []string, hooks progress.Hooks) *Syncer {
	return &Syncer{
		layout:           layout,
		dl:               dl,
		checker:          checker,
		defaultIndexName: defaultIndexName,
		urls:             urls,
		hooks:            hooks,
	}
}

// UpdateIndex fetches every configured index source and returns the local
// file names that were kept. Each source is processed independently: a
// download or signature failure discards that source's files and emits a
// warning, then the remaining sources still proceed. After all sources the
// stale index files of no-longer-configured sources are deleted. On
// cancellation the names kept so far are returned together with the context
// error and no stale cleanup runs.
func (s *Syncer) UpdateIndex(ctx context.Context) ([]string, error) {
	urls := dedupURLs(s.urls)
	tracker := progress.New(len(urls), s.hooks)

	if err := fsutil.EnsureDir(s.layout.IndexDir()); err != nil {
		return nil, errors.Wrap(err, "index dir unusable")
	}
	if err := fsutil.EnsureDir(s.layout.StagingDir()); err != nil {
		return nil, errors.Wrap(err, "staging dir unusable")
	}

	kept := make([]string, 0, len(urls)*2)
	for _, rawURL := range urls {
		if err := ctx.Err(); err != nil {
			return kept, err
		}
		tracker.SetStatus(fmt.Sprintf("Updating index: %s", rawURL))

		names, err := s.syncSource(ctx, rawURL)
		if err != nil {
			if download.IsCancellation(err) {
				return kept, err
			}
			logger.Warnf("Index source %s discarded: %v", rawURL, err)
			tracker.StepDone()
			continue
		}
		kept = append(kept, names...)
		tracker.StepDone()
	}

	s.cleanStale(kept)
	return kept, nil
}

// syncSource downloads one index plus its detached signature and verifies
// the pair. The fresh index is staged first and replaces the previous file
// only after its own download succeeded, so a dead source leaves at most a
// brief window without an index file instead of a corrupt one.
func (s *Syncer) syncSource(ctx context.Context, rawURL string) ([]string, error) {
	name, err := store.IndexFileNameForURL(rawURL)
	if err != nil {
		return nil, err
	}
	sigName := name + signature.Suffix

	indexPath := s.layout.IndexFile(name)
	sigPath := s.layout.IndexFile(sigName)

	if err := s.fetchAndReplace(ctx, rawURL, indexPath); err != nil {
		return nil, errors.Wrap(err, "index download failed")
	}
	if err := s.fetchAndReplace(ctx, rawURL+signature.Suffix, sigPath); err != nil {
		discardFiles(indexPath, sigPath)
		return nil, errors.Wrap(err, "signature download failed")
	}

	ok, err := s.checker.Verify(indexPath, sigPath)
	if err != nil {
		discardFiles(indexPath, sigPath)
		return nil, errors.Wrap(err, "signature verification failed")
	}
	if !ok {
		discardFiles(indexPath, sigPath)
		return nil, fmt.Errorf("signature verification failed for %s", rawURL)
	}
	return []string{name, sigName}, nil
}

// fetchAndReplace downloads rawURL into the staging dir under a scratch name
// and then swaps it into finalPath, deleting the old file first. The scratch
// file is removed up front so a leftover from an earlier run is never
// mistaken for a fresh download.
func (s *Syncer) fetchAndReplace(ctx context.Context, rawURL, finalPath string) error {
	src, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid source URL %s: %w", rawURL, errors.ErrInvalidURL)
	}

	scratchName := filepath.Base(finalPath) + ".download"
	scratchPath := filepath.Join(s.layout.StagingDir(), scratchName)
	_ = os.Remove(scratchPath)

	if _, err := s.dl.Fetch(ctx, download.Item{URL: src, Filename: scratchName}, download.Options{Dir: s.layout.StagingDir()}); err != nil {
		return err
	}
	if err := os.Remove(finalPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "could not replace %s", finalPath)
	}
	return fsutil.Move(scratchPath, finalPath)
}

// cleanStale deletes every index file matching the index naming pattern that
// neither is the default index nor was kept by the current pass, together
// with its signature companion.
func (s *Syncer) cleanStale(kept []string) {
	keep := make(map[string]bool, len(kept))
	for _, name := range kept {
		keep[name] = true
	}

	matches, err := filepath.Glob(filepath.Join(s.layout.IndexDir(), IndexFilePattern))
	if err != nil {
		return
	}
	for _, match := range matches {
		name := filepath.Base(match)
		if name == s.defaultIndexName || keep[name] {
			continue
		}
		logger.Infof("Removing stale index %s", name)
		if err := os.Remove(match); err != nil {
			logger.Warnf("Could not remove stale index %s: %v", name, err)
			continue
		}
		sigCompanion := match + signature.Suffix
		if err := os.Remove(sigCompanion); err != nil && !os.IsNotExist(err) {
			logger.Warnf("Could not remove stale signature %s: %v", filepath.Base(sigCompanion), err)
		}
	}
}

func discardFiles(paths ...string) {
	for _, path := range paths {
		_ = os.Remove(path)
	}
}

// dedupURLs trims and deduplicates source URLs keeping first-occurrence
// order. Empty entries are dropped.
func dedupURLs(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" || seen[raw] {
			continue
		}
		seen[raw] = true
		out = append(out, raw)
	}
	return out
}
