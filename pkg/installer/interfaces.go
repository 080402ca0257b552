//go:generate mockgen -destination=./mocks/installer.go . Downloader,Extractor,ScriptRunner,ToolUsageOracle
package installer

import (
	"context"

	"github.com/glorpus-work/boardman/pkg/download"
	"github.com/glorpus-work/boardman/pkg/hook"
	"github.com/glorpus-work/boardman/pkg/model"
)

// Downloader is the part of the download manager used to fetch platform and
// tool archives into the staging dir.
type Downloader interface {
	// Fetch downloads a single item into opts.Dir and returns the absolute
	// local file path.
	Fetch(ctx context.Context, item download.Item, opts download.Options) (string, error)
}

// Extractor unpacks a downloaded archive into a destination folder.
type Extractor interface {
	// Extract unpacks archivePath into destDir, dropping the given number of
	// leading path components from every entry.
	Extract(ctx context.Context, archivePath, destDir string, stripComponents int) error
}

// ScriptRunner runs lifecycle scripts found in an installed tree, subject to
// the trust gate. The returned strings are recoverable script errors.
type ScriptRunner interface {
	RunPostInstall(dir string, sctx hook.Context, opts hook.Options) []string
	RunPreUninstall(dir string, sctx hook.Context, opts hook.Options) []string
}

// ToolUsageOracle reports whether any installed platform still references a
// shared tool record.
type ToolUsageOracle interface {
	ToolUsed(tool *model.Tool) bool
}
