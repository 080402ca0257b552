package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glorpus-work/boardman/pkg/hook"
	"github.com/glorpus-work/boardman/pkg/model"
)

// Remove deletes an installed platform and afterwards every one of its tools
// that no other installed platform still references. Nil and read-only
// platforms are silently ignored. Failures are best-effort and collected
// into the returned list; removal always proceeds through all tools.
func (inst *Installer) Remove(ctx context.Context, p *model.Platform, opts Options) []string {
	if p == nil || p.ReadOnly {
		return nil
	}
	if inst.Scripts == nil || inst.Oracle == nil {
		return []string{"installer is not fully configured"}
	}

	trusted := p.Package != nil && p.Package.Trusted
	hookOpts := hook.Options{Trusted: trusted, TrustAll: opts.TrustAll}

	errs := inst.Scripts.RunPreUninstall(p.InstalledFolder, hook.Context{Name: p.Name, Version: p.Version}, hookOpts)

	if err := os.RemoveAll(p.InstalledFolder); err != nil {
		errs = append(errs, fmt.Sprintf("could not remove %s: %v", p.InstalledFolder, err))
	}
	// Flags clear together with the folder, even when the delete failed, so
	// the reference-count check below no longer counts this platform.
	p.Installed = false
	p.InstalledFolder = ""

	for _, tool := range p.ResolvedTools {
		if inst.Oracle.ToolUsed(tool) {
			continue
		}
		flavor := tool.FlavorForHost(inst.Host)
		if flavor == nil || !flavor.Installed {
			continue
		}
		versionDir := flavor.InstalledFolder
		if err := os.RemoveAll(versionDir); err != nil {
			errs = append(errs, fmt.Sprintf("could not remove %s: %v", versionDir, err))
		}
		flavor.Installed = false
		flavor.InstalledFolder = ""
		// Removing the tool-name folder fails while other versions remain.
		_ = os.Remove(filepath.Dir(versionDir))
	}
	return errs
}
