package index

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glorpus-work/boardman/internal/logger"
	"github.com/glorpus-work/boardman/pkg/errors"
	"github.com/glorpus-work/boardman/pkg/fsutil"
	"github.com/glorpus-work/boardman/pkg/model"
	"github.com/glorpus-work/boardman/pkg/platform"
	"github.com/glorpus-work/boardman/pkg/store"
)

// IndexFilePattern matches the local file names of package index files.
const IndexFilePattern = "package_*_index.json"

// Manager merges every package index present in the content store into a
// single queryable view. Tools are interned into one record per
// vendor/name/version so that all platforms referencing the same tool share
// it, which makes the reference-count check a pointer comparison.
type Manager struct {
	layout           store.Layout
	defaultIndexName string
	host             platform.Platform
	packages         []*model.Package
	tools            map[string]*model.Tool
}

// NewManager creates an index manager reading from the given content store.
// Packages coming from the index named defaultIndexName are marked trusted.
// The host platform selects which tool flavors are considered installable.
func NewManager(layout store.Layout, defaultIndexName string, host platform.Platform) *Manager {
	return &Manager{
		layout:           layout,
		defaultIndexName: defaultIndexName,
		host:             host,
		tools:            make(map[string]*model.Tool),
	}
}

// Load re-reads every index file from disk and rebuilds the merged view:
// package trust flags, the shared tool records, each platform's resolved
// tool list and the installed state derived from the store directories.
// Malformed index files are skipped with a warning.
func (cm *Manager) Load() error {
	files, err := cm.indexFiles()
	if err != nil {
		return err
	}

	cm.packages = nil
	cm.tools = make(map[string]*model.Tool)

	for _, name := range files {
		idx, err := ParseIndexFromFile(cm.layout.IndexFile(name))
		if err != nil {
			logger.Warnf("Skipping index %s: %v", name, err)
			continue
		}
		cm.merge(idx, name == cm.defaultIndexName)
	}

	cm.resolveToolReferences()
	cm.syncStatusWithDisk()
	return nil
}

// indexFiles returns the local index file names to load, the default index
// first, additional indexes in lexical order.
func (cm *Manager) indexFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(cm.layout.IndexDir(), IndexFilePattern))
	if err != nil {
		return nil, errors.Wrap(err, "failed to enumerate index files")
	}

	var files []string
	if fsutil.FileExists(cm.layout.IndexFile(cm.defaultIndexName)) {
		files = append(files, cm.defaultIndexName)
	}

	var additional []string
	for _, match := range matches {
		name := filepath.Base(match)
		if name != cm.defaultIndexName {
			additional = append(additional, name)
		}
	}
	sort.Strings(additional)
	return append(files, additional...), nil
}

func (cm *Manager) merge(idx *Index, trusted bool) {
	for _, pkg := range idx.Packages {
		pkg.Trusted = trusted
		for _, p := range pkg.Platforms {
			p.Package = pkg
		}
		for _, tool := range pkg.Tools {
			tool.Package = pkg
			key := fmt.Sprintf("%s:%s@%s", pkg.Name, tool.Name, tool.Version)
			if _, ok := cm.tools[key]; !ok {
				cm.tools[key] = tool
			}
		}
		cm.packages = append(cm.packages, pkg)
	}
}

// resolveToolReferences turns each platform's flat dependency list into
// pointers to the shared tool records. Dependencies naming a tool no index
// provides are dropped with a warning; the installer refuses platforms whose
// resolved list is incomplete.
func (cm *Manager) resolveToolReferences() {
	for _, p := range cm.allPlatforms() {
		p.ResolvedTools = make([]*model.Tool, 0, len(p.Tools))
		for _, dep := range p.Tools {
			tool := cm.tools[dep.String()]
			if tool == nil {
				logger.Warnf("Index inconsistency: missing tool %s required by %s", dep.String(), p.String())
				continue
			}
			p.ResolvedTools = append(p.ResolvedTools, tool)
		}
	}
}

// syncStatusWithDisk derives installed flags from the store directories. The
// store is the source of truth; there is no separate installed database.
func (cm *Manager) syncStatusWithDisk() {
	for _, p := range cm.allPlatforms() {
		dir := cm.layout.PlatformDir(p.Package.Name, p.Architecture, p.Version)
		if fsutil.DirExists(dir) {
			p.Installed = true
			p.InstalledFolder = dir
		} else {
			p.Installed = false
			p.InstalledFolder = ""
		}
	}

	for _, tool := range cm.tools {
		flavor := tool.FlavorForHost(cm.host)
		if flavor == nil {
			continue
		}
		dir := cm.layout.ToolDir(tool.Package.Name, tool.Name, tool.Version)
		if fsutil.DirExists(dir) {
			flavor.Installed = true
			flavor.InstalledFolder = dir
		} else {
			flavor.Installed = false
			flavor.InstalledFolder = ""
		}
	}
}

// Packages returns the merged packages in load order.
func (cm *Manager) Packages() []*model.Package {
	return cm.packages
}

// Platforms returns every known platform sorted by vendor, architecture and
// ascending version.
func (cm *Manager) Platforms() []*model.Platform {
	platforms := cm.allPlatforms()
	sort.SliceStable(platforms, func(i, j int) bool {
		a, b := platforms[i], platforms[j]
		if a.Package.Name != b.Package.Name {
			return a.Package.Name < b.Package.Name
		}
		if a.Architecture != b.Architecture {
			return a.Architecture < b.Architecture
		}
		av, bv := a.GetVersion(), b.GetVersion()
		if av == nil || bv == nil {
			return a.Version < b.Version
		}
		return av.LessThan(bv)
	})
	return platforms
}

// InstalledPlatforms returns the platforms currently present in the store.
func (cm *Manager) InstalledPlatforms() []*model.Platform {
	var installed []*model.Platform
	for _, p := range cm.Platforms() {
		if p.Installed {
			installed = append(installed, p)
		}
	}
	return installed
}

// LatestAvailable returns the newest known version for a vendor/architecture
// pair or nil if the pair is unknown. Unparsable versions sort lowest.
func (cm *Manager) LatestAvailable(vendor, arch string) *model.Platform {
	var best *model.Platform
	for _, p := range cm.allPlatforms() {
		if p.Package.Name != vendor || p.Architecture != arch {
			continue
		}
		if best == nil {
			best = p
			continue
		}
		pv, bestVer := p.GetVersion(), best.GetVersion()
		if pv != nil && (bestVer == nil || pv.GreaterThan(bestVer)) {
			best = p
		}
	}
	return best
}

// FindPlatform resolves a "vendor:arch[@version]" reference. Without an
// explicit version the newest known version is returned.
func (cm *Manager) FindPlatform(ref string) (*model.Platform, error) {
	vendor, arch, version, err := ParseReference(ref)
	if err != nil {
		return nil, err
	}

	if version == "" {
		if p := cm.LatestAvailable(vendor, arch); p != nil {
			return p, nil
		}
		return nil, errors.Wrapf(errors.ErrPlatformNotFound, "%s:%s", vendor, arch)
	}

	for _, p := range cm.allPlatforms() {
		if p.Package.Name == vendor && p.Architecture == arch && p.Version == version {
			return p, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrPlatformNotFound, "%s:%s@%s", vendor, arch, version)
}

// ToolUsed reports whether any installed platform still references the given
// shared tool record.
func (cm *Manager) ToolUsed(tool *model.Tool) bool {
	for _, p := range cm.allPlatforms() {
		if !p.Installed {
			continue
		}
		for _, t := range p.ResolvedTools {
			if t == tool {
				return true
			}
		}
	}
	return false
}

func (cm *Manager) allPlatforms() []*model.Platform {
	var platforms []*model.Platform
	for _, pkg := range cm.packages {
		platforms = append(platforms, pkg.Platforms...)
	}
	return platforms
}

// ParseReference splits a "vendor:arch[@version]" platform reference. The
// version part is optional and returned empty when absent.
func ParseReference(ref string) (vendor, arch, version string, err error) {
	rest := ref
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		version = rest[at+1:]
		rest = rest[:at]
		if version == "" {
			return "", "", "", fmt.Errorf("invalid platform reference %q: empty version", ref)
		}
	}
	vendor, arch, ok := strings.Cut(rest, ":")
	if !ok || vendor == "" || arch == "" {
		return "", "", "", fmt.Errorf("invalid platform reference %q: expected vendor:arch[@version]", ref)
	}
	return vendor, arch, version, nil
}
