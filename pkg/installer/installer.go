// Package installer drives the installation and removal of platforms and
// their shared tools against the content store. Operations are synchronous
// and single-flow: downloads happen first and are the only cancellable
// phase, then artifacts are extracted and flagged installed one by one.
package installer

import (
	"context"
	"fmt"
	"strings"

	"github.com/glorpus-work/boardman/pkg/download"
	"github.com/glorpus-work/boardman/pkg/errors"
	"github.com/glorpus-work/boardman/pkg/fsutil"
	"github.com/glorpus-work/boardman/pkg/hook"
	"github.com/glorpus-work/boardman/pkg/model"
	"github.com/glorpus-work/boardman/pkg/platform"
	"github.com/glorpus-work/boardman/pkg/progress"
	"github.com/glorpus-work/boardman/pkg/store"
)

// Installer ties the downloader, extractor and script runner together for
// install and remove pipelines. Concurrent operations against the same store
// root are not safe; callers serialize.
type Installer struct {
	Layout    store.Layout
	Host      platform.Platform
	DL        Downloader
	Extractor Extractor
	Scripts   ScriptRunner
	Oracle    ToolUsageOracle
	Hooks     progress.Hooks
}

// Options control install and remove execution.
type Options struct {
	// TrustAll force-enables lifecycle script execution for untrusted
	// packages.
	TrustAll bool
}

// toolInstall pairs a shared tool record with the flavor selected for the
// running host.
type toolInstall struct {
	tool   *model.Tool
	flavor *model.Archive
}

// Install downloads and installs a platform together with every required tool
// that is not yet present. It returns the list of recoverable errors that
// were collected (script failures); the error return is reserved for fatal
// conditions that abort the pipeline. Cancellation during the download phase
// stops the operation and returns the errors collected so far with a nil
// error.
func (inst *Installer) Install(ctx context.Context, p *model.Platform, opts Options) ([]string, error) {
	if inst.DL == nil {
		return nil, fmt.Errorf("download manager is not configured")
	}
	if inst.Extractor == nil {
		return nil, fmt.Errorf("extractor is not configured")
	}
	if inst.Scripts == nil {
		return nil, fmt.Errorf("script runner is not configured")
	}
	if p.Package == nil {
		return nil, fmt.Errorf("platform %s has no owning package", p.String())
	}
	if p.Installed {
		return nil, errors.Wrapf(errors.ErrPlatformAlreadyInstalled, "%s", p.String())
	}
	if missing := missingDeps(p); len(missing) > 0 {
		return nil, errors.Wrapf(errors.ErrToolNotResolved, "%s requires %s", p.String(), strings.Join(missing, ", "))
	}

	// Every required tool must have a flavor for this host before anything
	// is mutated. Tools whose flavor is already installed are skipped.
	pending := make([]*toolInstall, 0, len(p.ResolvedTools))
	for _, tool := range p.ResolvedTools {
		flavor := tool.FlavorForHost(inst.Host)
		if flavor == nil {
			return nil, errors.Wrapf(errors.ErrToolUnavailable, "%s on %s", tool.String(), inst.Host.String())
		}
		if flavor.Installed {
			continue
		}
		pending = append(pending, &toolInstall{tool: tool, flavor: flavor})
	}

	tracker := progress.New((len(pending)+1)*2, inst.Hooks)

	// Download phase. The platform archive comes first so its metadata is on
	// disk before any tool is unpacked.
	var errs []string
	if err := inst.download(ctx, tracker, &p.Archive, p.String()); err != nil {
		if download.IsCancellation(err) {
			return errs, nil
		}
		return errs, err
	}
	for _, ti := range pending {
		if err := inst.download(ctx, tracker, ti.flavor, ti.tool.String()); err != nil {
			if download.IsCancellation(err) {
				return errs, nil
			}
			return errs, err
		}
	}

	// Install phase, tools strictly before the platform content. A started
	// artifact install runs to completion; cancellation no longer applies.
	ictx := context.WithoutCancel(ctx)
	for _, ti := range pending {
		destDir := inst.Layout.ToolDir(ti.tool.Package.Name, ti.tool.Name, ti.tool.Version)
		sctx := hook.Context{Name: ti.tool.Name, Version: ti.tool.Version}
		hookErrs, err := inst.installArtifact(ictx, tracker, ti.flavor, destDir, sctx, p.Package.Trusted, opts, ti.tool.String())
		errs = append(errs, hookErrs...)
		if err != nil {
			return errs, err
		}
	}

	destDir := inst.Layout.PlatformDir(p.Package.Name, p.Architecture, p.Version)
	sctx := hook.Context{Name: p.Name, Version: p.Version}
	hookErrs, err := inst.installArtifact(ictx, tracker, &p.Archive, destDir, sctx, p.Package.Trusted, opts, p.String())
	errs = append(errs, hookErrs...)
	if err != nil {
		return errs, err
	}

	tracker.SetStatus("Installation completed!")
	return errs, nil
}

// download fetches one archive into the staging dir and records the local
// path on the archive. One progress step per completed download.
func (inst *Installer) download(ctx context.Context, tracker *progress.Tracker, archive *model.Archive, label string) error {
	tracker.SetStatus(fmt.Sprintf("Downloading %s", label))

	src := archive.GetURL()
	if src == nil || archive.URL == "" {
		return fmt.Errorf("invalid archive URL %q: %w", archive.URL, errors.ErrInvalidURL)
	}
	path, err := inst.DL.Fetch(ctx, download.Item{
		URL:      src,
		Filename: archive.ArchiveFileName,
		Checksum: archive.Checksum,
		Size:     int64(archive.Size),
	}, download.Options{Dir: inst.Layout.StagingDir()})
	if err != nil {
		return err
	}
	archive.DownloadedFile = path
	tracker.StepDone()
	return nil
}

// installArtifact extracts one downloaded archive into destDir, runs the
// post-install hook and only then flips the installed flags. Hook failures
// are recoverable and returned separately from fatal errors.
func (inst *Installer) installArtifact(ctx context.Context, tracker *progress.Tracker, archive *model.Archive, destDir string, sctx hook.Context, trusted bool, opts Options, label string) ([]string, error) {
	tracker.SetStatus(fmt.Sprintf("Installing %s", label))

	if err := fsutil.EnsureDir(destDir); err != nil {
		return nil, errors.Wrapf(err, "could not create %s", destDir)
	}
	if err := inst.Extractor.Extract(ctx, archive.DownloadedFile, destDir, 1); err != nil {
		return nil, errors.Wrapf(err, "could not extract %s", label)
	}

	hookErrs := inst.Scripts.RunPostInstall(destDir, sctx, hook.Options{Trusted: trusted, TrustAll: opts.TrustAll})

	archive.Installed = true
	archive.InstalledFolder = destDir
	tracker.StepDone()
	return hookErrs, nil
}

// missingDeps returns the dependency references a platform declares but whose
// tools were not resolved against any loaded index.
func missingDeps(p *model.Platform) []string {
	if len(p.ResolvedTools) == len(p.Tools) {
		return nil
	}
	resolved := make(map[string]bool, len(p.ResolvedTools))
	for _, tool := range p.ResolvedTools {
		resolved[tool.String()] = true
	}
	var missing []string
	for _, dep := range p.Tools {
		if !resolved[dep.String()] {
			missing = append(missing, dep.String())
		}
	}
	return missing
}
