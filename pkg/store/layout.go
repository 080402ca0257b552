// Package store defines the on-disk layout of the boardman data directory.
// All path derivation lives here so the rest of the code never assembles
// store paths by hand.
package store

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/glorpus-work/boardman/pkg/errors"
	"github.com/glorpus-work/boardman/pkg/fsutil"
)

const (
	packagesDirName = "packages"
	stagingDirName  = "staging"
	hardwareDirName = "hardware"
	toolsDirName    = "tools"
)

// Layout derives every path boardman touches from a single data directory:
//
//	<root>/<index files>                              downloaded index files
//	<root>/staging/                                   in-flight downloads
//	<root>/packages/<vendor>/hardware/<arch>/<ver>/   installed platforms
//	<root>/packages/<vendor>/tools/<name>/<ver>/      installed tools
type Layout struct {
	root string
}

// New creates a layout rooted at the given data directory.
func New(root string) Layout {
	return Layout{root: root}
}

// Root returns the data directory.
func (l Layout) Root() string {
	return l.root
}

// PackagesDir returns the directory holding installed contributions.
func (l Layout) PackagesDir() string {
	return filepath.Join(l.root, packagesDirName)
}

// StagingDir returns the directory downloads are staged into.
func (l Layout) StagingDir() string {
	return filepath.Join(l.root, stagingDirName)
}

// IndexDir returns the directory holding downloaded index files. Index files
// live directly in the data directory root.
func (l Layout) IndexDir() string {
	return l.root
}

// IndexFile returns the path of an index file by its local name.
func (l Layout) IndexFile(name string) string {
	return filepath.Join(l.IndexDir(), name)
}

// PlatformDir returns the installation directory for a platform version.
func (l Layout) PlatformDir(vendor, architecture, version string) string {
	return filepath.Join(l.PackagesDir(), vendor, hardwareDirName, architecture, version)
}

// ToolsDir returns the directory holding all tool versions of a vendor.
func (l Layout) ToolsDir(vendor string) string {
	return filepath.Join(l.PackagesDir(), vendor, toolsDirName)
}

// ToolDir returns the installation directory for a tool version.
func (l Layout) ToolDir(vendor, name, version string) string {
	return filepath.Join(l.ToolsDir(vendor), name, version)
}

// IndexFileNameForURL derives the local index filename from the last path
// segment of the source URL.
func IndexFileNameForURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidURL, "parse %s", rawURL)
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return "", errors.Wrapf(errors.ErrInvalidURL, "no filename in %s", rawURL)
	}
	return name, nil
}

// CleanStaging removes everything inside the staging directory, keeping the
// directory itself.
func (l Layout) CleanStaging() error {
	entries, err := os.ReadDir(l.StagingDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read staging directory: %w", err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(l.StagingDir(), entry.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// StagingUsage returns the total size in bytes of everything currently held
// in the staging directory. A missing staging directory counts as zero.
func (l Layout) StagingUsage() (int64, error) {
	var total int64
	err := filepath.WalkDir(l.StagingDir(), func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// EnsureDirs creates the directories an operation relies on.
func (l Layout) EnsureDirs() error {
	for _, dir := range []string{l.PackagesDir(), l.StagingDir()} {
		if err := fsutil.EnsureDir(dir); err != nil {
			return err
		}
	}
	return nil
}
