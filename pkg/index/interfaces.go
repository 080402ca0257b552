//go:generate mockgen -destination=./mocks/index.go . Downloader,SignatureChecker
package index

import (
	"context"

	"github.com/glorpus-work/boardman/pkg/download"
)

// Downloader is the part of the download manager the synchronizer uses to
// fetch index and signature files.
type Downloader interface {
	// Fetch downloads a single item into opts.Dir and returns the absolute
	// local file path.
	Fetch(ctx context.Context, item download.Item, opts download.Options) (string, error)
}

// SignatureChecker validates a file against a detached signature file.
type SignatureChecker interface {
	// Verify reports whether sigPath is a valid signature over signedPath by
	// any key in the configured keyring.
	Verify(signedPath, sigPath string) (bool, error)
}
