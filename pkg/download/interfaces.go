package download

import (
	"context"
	"net/url"
)

// Manager defines the interface for downloading remote files (indexes and
// contribution archives). It replaces ad-hoc HTTP fetching with a testable
// API that carries integrity verification.
type Manager interface {
	// Fetch downloads a single item to a deterministic location within
	// opts.Dir and returns the absolute local file path.
	Fetch(ctx context.Context, item Item, opts Options) (string, error)
}

// Item represents one remote resource to download.
type Item struct {
	URL      *url.URL // source URL to download
	Filename string   // optional preferred filename; if empty, a name will be derived
	Checksum string   // optional "SHA-256:<hex>" checksum; if provided, will be verified
	Size     int64    // optional expected size in bytes; nonzero values gate cached-file reuse
}

// Options control the behavior of the download manager.
type Options struct {
	Dir string // destination directory. Must be absolute.
}
