package hook

import (
	"path/filepath"
	"runtime"
)

// Discovery lists candidate lifecycle scripts for a folder in preference
// order. Candidates need not exist; the runner filters them.
type Discovery interface {
	PostInstallScripts(dir string) []string
	PreUninstallScripts(dir string) []string
}

// DefaultDiscovery returns the per-OS script names used by published
// contributions: shell scripts on unix-like systems, batch files on windows,
// and Tengo scripts everywhere.
type DefaultDiscovery struct {
	goos string
}

// NewDefaultDiscovery creates a discovery for the running operating system.
func NewDefaultDiscovery() *DefaultDiscovery {
	return &DefaultDiscovery{goos: runtime.GOOS}
}

// PostInstallScripts implements Discovery.
func (d *DefaultDiscovery) PostInstallScripts(dir string) []string {
	return d.candidates(dir, "post_install")
}

// PreUninstallScripts implements Discovery.
func (d *DefaultDiscovery) PreUninstallScripts(dir string) []string {
	return d.candidates(dir, "pre_uninstall")
}

func (d *DefaultDiscovery) candidates(dir, stem string) []string {
	var names []string
	if d.goos == "windows" {
		names = []string{stem + ".bat"}
	} else {
		names = []string{stem + ".sh"}
	}
	names = append(names, stem+TengoSuffix)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths
}
