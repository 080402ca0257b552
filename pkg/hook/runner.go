package hook

import (
	"path/filepath"

	"github.com/glorpus-work/boardman/internal/logger"
	"github.com/glorpus-work/boardman/pkg/fsutil"
)

// maxDescentDepth bounds the single-subdirectory descent when looking for
// scripts inside wrapper directories.
const maxDescentDepth = 8

// Options control whether a discovered script may actually run.
type Options struct {
	// Trusted marks contributions from the trusted default index source.
	Trusted bool
	// TrustAll forces execution of untrusted scripts. Every forced run is
	// announced with a warning.
	TrustAll bool
}

// Runner locates the lifecycle script of an installed tree and executes it
// behind the trust gate. A skipped script is not an error; the returned slice
// carries only script failures and is empty on success.
type Runner struct {
	Discovery Discovery
	Native    Executor
	Tengo     Executor
}

// NewRunner creates a runner with the default discovery and executors.
func NewRunner() *Runner {
	return &Runner{
		Discovery: NewDefaultDiscovery(),
		Native:    &NativeExecutor{},
		Tengo:     &TengoExecutor{},
	}
}

// RunPostInstall runs the post-install script of the tree rooted at dir.
func (r *Runner) RunPostInstall(dir string, sctx Context, opts Options) []string {
	sctx.Operation = OperationPostInstall
	return r.run(dir, sctx, opts)
}

// RunPreUninstall runs the pre-uninstall script of the tree rooted at dir.
func (r *Runner) RunPreUninstall(dir string, sctx Context, opts Options) []string {
	sctx.Operation = OperationPreUninstall
	return r.run(dir, sctx, opts)
}

// run searches dir for a runnable script. When a folder has no candidates
// but exactly one subdirectory, the search descends into it; archives often
// wrap their content in a single directory. Zero or several subdirectories
// stop the search silently.
func (r *Runner) run(dir string, sctx Context, opts Options) []string {
	for depth := 0; depth < maxDescentDepth; depth++ {
		script := r.firstRunnable(sctx.Operation, dir)
		if script != "" {
			sctx.Folder = dir
			return r.execute(script, sctx, opts)
		}

		subdirs, err := fsutil.ListSubdirs(dir)
		if err != nil || len(subdirs) != 1 {
			return nil
		}
		dir = filepath.Join(dir, subdirs[0])
	}
	return nil
}

// firstRunnable returns the first candidate that survives filtering: native
// scripts must be executable, Tengo scripts must merely exist.
func (r *Runner) firstRunnable(op Operation, dir string) string {
	var candidates []string
	switch op {
	case OperationPostInstall:
		candidates = r.Discovery.PostInstallScripts(dir)
	case OperationPreUninstall:
		candidates = r.Discovery.PreUninstallScripts(dir)
	}

	for _, candidate := range candidates {
		if IsTengo(candidate) {
			if fsutil.FileExists(candidate) {
				return candidate
			}
			continue
		}
		if fsutil.IsExecutable(candidate) {
			return candidate
		}
	}
	return ""
}

func (r *Runner) execute(script string, sctx Context, opts Options) []string {
	if !opts.Trusted && !opts.TrustAll {
		logger.Warnf("Warning: non trusted contribution, skipping script execution (%s)", script)
		return nil
	}
	if opts.TrustAll {
		logger.Warnf("Warning: forced untrusted script execution (%s)", script)
	}

	executor := r.Native
	if IsTengo(script) {
		executor = r.Tengo
	}
	if err := executor.Execute(script, sctx); err != nil {
		return []string{err.Error()}
	}
	return nil
}
